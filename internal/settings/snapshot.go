package settings

import (
	"strconv"
	"strings"
)

// Reader resolves typed configuration values. Missing or unparseable values
// yield the fallback.
type Reader interface {
	Percentage(key string, fallback float64) float64
	Amount(key string, fallback float64) float64
	Bool(key string, fallback bool) bool
}

// Snapshot is a read-only view of configuration values taken in a single
// read. The zero value answers every lookup with its fallback.
type Snapshot struct {
	values map[string]string
}

var _ Reader = Snapshot{}

// NewSnapshot wraps raw values. The map is copied.
func NewSnapshot(values map[string]string) Snapshot {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return Snapshot{values: copied}
}

// Raw returns the stored string for key.
func (s Snapshot) Raw(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Percentage implements Reader
func (s Snapshot) Percentage(key string, fallback float64) float64 {
	return s.float(key, fallback)
}

// Amount implements Reader
func (s Snapshot) Amount(key string, fallback float64) float64 {
	return s.float(key, fallback)
}

// Bool implements Reader
func (s Snapshot) Bool(key string, fallback bool) bool {
	raw, ok := s.values[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return v
}

func (s Snapshot) float(key string, fallback float64) float64 {
	raw, ok := s.values[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fallback
	}
	return v
}

// validateValue checks a value against the kind of a known key.
func validateValue(kind ValueKind, raw string) error {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindPercentage, KindFeePercentage:
		limit := 100.0
		if kind == KindFeePercentage {
			limit = MaxPlatformFeePercentage
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > limit {
			return errInvalidValue(kind)
		}
	case KindAmount:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return errInvalidValue(kind)
		}
	case KindBool:
		if _, err := strconv.ParseBool(raw); err != nil {
			return errInvalidValue(kind)
		}
	}
	return nil
}
