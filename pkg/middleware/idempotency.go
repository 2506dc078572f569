package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/booking-platform/pkg/common"
	"github.com/richxcame/booking-platform/pkg/logger"
	redisClient "github.com/richxcame/booking-platform/pkg/redis"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key for a write.
	IdempotencyKeyHeader = "Idempotency-Key"

	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
	idempotencyPrefix  = "idempotency:"
)

// idempotencyEntry is the stored outcome of a completed write.
type idempotencyEntry struct {
	StatusCode  int               `json:"status_code"`
	Headers     map[string]string `json:"headers"`
	Body        json.RawMessage   `json:"body"`
	RequestHash string            `json:"request_hash"`
}

// recordingWriter tees the response body so it can be stored.
type recordingWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Idempotency makes POST, PUT and PATCH requests that carry an
// Idempotency-Key run at most once per request path and key. A repeat replays the
// stored 2xx response. A repeat while the first is still running gets 409,
// and reusing a key with a different body gets 422. Redis errors fall
// through to normal processing.
func Idempotency(store redisClient.ClientInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || !isWriteMethod(c.Request.Method) {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		ctx := c.Request.Context()
		path := c.Request.URL.Path
		hash := hashRequest(c.Request.Method, path, body)
		entryKey := idempotencyRedisKey(path, key)
		lockKey := entryKey + ":lock"
		log := logger.WithContext(ctx).With(zap.String("idempotency_key", key))

		if entry, ok := loadEntry(ctx, store, entryKey); ok {
			if entry.RequestHash != hash {
				common.ErrorResponse(c, http.StatusUnprocessableEntity,
					"Idempotency-Key has already been used with a different request")
				c.Abort()
				return
			}
			replay(c, entry)
			return
		}

		acquired, err := store.SetIfAbsent(ctx, lockKey, hash, idempotencyLockTTL)
		switch {
		case err != nil:
			log.Warn("idempotency lock unavailable, processing without it", zap.Error(err))
			c.Next()
			return
		case !acquired:
			common.ErrorResponse(c, http.StatusConflict, "a request with this Idempotency-Key is already in progress")
			c.Abort()
			return
		}
		defer func() {
			if err := store.Delete(ctx, lockKey); err != nil {
				log.Warn("failed to release idempotency lock", zap.Error(err))
			}
		}()

		rec := &recordingWriter{ResponseWriter: c.Writer, status: http.StatusOK}
		c.Writer = rec
		c.Next()

		if rec.status < 200 || rec.status >= 300 {
			return
		}
		data, err := json.Marshal(idempotencyEntry{
			StatusCode:  rec.status,
			Headers:     map[string]string{"Content-Type": rec.Header().Get("Content-Type")},
			Body:        rec.body.Bytes(),
			RequestHash: hash,
		})
		if err != nil {
			return
		}
		if err := store.SetWithExpiration(ctx, entryKey, data, idempotencyTTL); err != nil {
			log.Warn("failed to store idempotent response", zap.Error(err))
		}
	}
}

func isWriteMethod(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func loadEntry(ctx context.Context, store redisClient.ClientInterface, key string) (*idempotencyEntry, bool) {
	raw, err := store.GetString(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var entry idempotencyEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

func replay(c *gin.Context, entry *idempotencyEntry) {
	for k, v := range entry.Headers {
		c.Header(k, v)
	}
	c.Header("Idempotent-Replayed", "true")
	c.Data(entry.StatusCode, "application/json; charset=utf-8", entry.Body)
	c.Abort()
}

func idempotencyRedisKey(path, key string) string {
	return idempotencyPrefix + path + ":" + key
}

// hashRequest fingerprints method, path and body.
func hashRequest(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
