package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	redisClient "github.com/richxcame/booking-platform/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feeRoute = "/billing/fees"

func setupIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	gin.SetMode(gin.TestMode)

	db, mock := redismock.NewClientMock()
	calls := 0

	r := gin.New()
	r.Use(Idempotency(&redisClient.Client{Client: db}))
	r.POST(feeRoute, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "fee-1"})
	})
	r.GET(feeRoute, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"id": "fee-1"})
	})

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	return r, mock, &calls
}

func idempotentRequest(method, key, body string) *http.Request {
	req := httptest.NewRequest(method, feeRoute, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	r, _, calls := setupIdempotencyRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "", `{"amount":1000}`))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_IgnoresReadOnlyMethods(t *testing.T) {
	r, _, calls := setupIdempotencyRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodGet, "key-1", ""))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_FirstRequestIsStored(t *testing.T) {
	r, mock, calls := setupIdempotencyRouter(t)

	body := `{"amount":1000}`
	hash := hashRequest(http.MethodPost, feeRoute, []byte(body))
	key := idempotencyRedisKey(feeRoute, "key-1")

	stored, err := json.Marshal(idempotencyEntry{
		StatusCode:  http.StatusCreated,
		Headers:     map[string]string{"Content-Type": "application/json; charset=utf-8"},
		Body:        json.RawMessage(`{"id":"fee-1"}`),
		RequestHash: hash,
	})
	require.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key+":lock", hash, idempotencyLockTTL).SetVal(true)
	mock.ExpectSet(key, stored, idempotencyTTL).SetVal("OK")
	mock.ExpectDel(key + ":lock").SetVal(1)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "key-1", body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	r, mock, calls := setupIdempotencyRouter(t)

	body := `{"amount":1000}`
	key := idempotencyRedisKey(feeRoute, "key-1")
	cached, err := json.Marshal(idempotencyEntry{
		StatusCode:  http.StatusCreated,
		Body:        json.RawMessage(`{"id":"fee-1"}`),
		RequestHash: hashRequest(http.MethodPost, feeRoute, []byte(body)),
	})
	require.NoError(t, err)

	mock.ExpectGet(key).SetVal(string(cached))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "key-1", body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"id":"fee-1"}`, w.Body.String())
	assert.Equal(t, 0, *calls)
}

func TestIdempotency_RejectsReusedKeyWithDifferentBody(t *testing.T) {
	r, mock, calls := setupIdempotencyRouter(t)

	key := idempotencyRedisKey(feeRoute, "key-1")
	cached, err := json.Marshal(idempotencyEntry{
		StatusCode:  http.StatusCreated,
		Body:        json.RawMessage(`{"id":"fee-1"}`),
		RequestHash: hashRequest(http.MethodPost, feeRoute, []byte(`{"amount":1000}`)),
	})
	require.NoError(t, err)

	mock.ExpectGet(key).SetVal(string(cached))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "key-1", `{"amount":2000}`))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotency_ConcurrentRepeatConflicts(t *testing.T) {
	r, mock, calls := setupIdempotencyRouter(t)

	body := `{"amount":1000}`
	hash := hashRequest(http.MethodPost, feeRoute, []byte(body))
	key := idempotencyRedisKey(feeRoute, "key-1")

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSetNX(key+":lock", hash, idempotencyLockTTL).SetVal(false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "key-1", body))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
}

func TestIdempotency_RedisDownFallsThrough(t *testing.T) {
	r, mock, calls := setupIdempotencyRouter(t)

	body := `{"amount":1000}`
	hash := hashRequest(http.MethodPost, feeRoute, []byte(body))
	key := idempotencyRedisKey(feeRoute, "key-1")

	mock.ExpectGet(key).SetErr(assert.AnError)
	mock.ExpectSetNX(key+":lock", hash, idempotencyLockTTL).SetErr(assert.AnError)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, idempotentRequest(http.MethodPost, "key-1", body))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
}

func TestIdempotency_ScopesKeyToConcretePath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, mock := redismock.NewClientMock()
	var paid []string

	r := gin.New()
	r.Use(Idempotency(&redisClient.Client{Client: db}))
	r.POST("/billing/fees/:id/pay", func(c *gin.Context) {
		paid = append(paid, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	body := `{"payment_method":"mpesa"}`
	pathA, pathB := "/billing/fees/A/pay", "/billing/fees/B/pay"

	cachedA, err := json.Marshal(idempotencyEntry{
		StatusCode:  http.StatusOK,
		Body:        json.RawMessage(`{"id":"A"}`),
		RequestHash: hashRequest(http.MethodPost, pathA, []byte(body)),
	})
	require.NoError(t, err)

	hashB := hashRequest(http.MethodPost, pathB, []byte(body))
	keyB := idempotencyRedisKey(pathB, "k1")
	storedB, err := json.Marshal(idempotencyEntry{
		StatusCode:  http.StatusOK,
		Headers:     map[string]string{"Content-Type": "application/json; charset=utf-8"},
		Body:        json.RawMessage(`{"id":"B"}`),
		RequestHash: hashB,
	})
	require.NoError(t, err)

	mock.ExpectGet(idempotencyRedisKey(pathA, "k1")).SetVal(string(cachedA))
	mock.ExpectGet(keyB).RedisNil()
	mock.ExpectSetNX(keyB+":lock", hashB, idempotencyLockTTL).SetVal(true)
	mock.ExpectSet(keyB, storedB, idempotencyTTL).SetVal("OK")
	mock.ExpectDel(keyB + ":lock").SetVal(1)

	send := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(IdempotencyKeyHeader, "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	wA := send(pathA)
	assert.Equal(t, "true", wA.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"id":"A"}`, wA.Body.String())

	wB := send(pathB)
	assert.Equal(t, http.StatusOK, wB.Code)
	assert.Empty(t, wB.Header().Get("Idempotent-Replayed"))
	assert.JSONEq(t, `{"id":"B"}`, wB.Body.String())

	assert.Equal(t, []string{"B"}, paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}
