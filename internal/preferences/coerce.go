package preferences

import (
	"math"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/models"
)

// The helpers below turn whatever the storage backend returned into typed
// values. Anything with an unexpected shape reports ok=false and the caller
// falls back to the built-in default.

func asDecimal(raw any) (decimal.Decimal, bool) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, true
	case string:
		d, err := decimal.Parse(strings.TrimSpace(v))
		return d, err == nil
	case []byte:
		d, err := decimal.Parse(strings.TrimSpace(string(v)))
		return d, err == nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromFloat64(v)
		return d, err == nil
	case int64:
		d, err := decimal.New(v, 0)
		return d, err == nil
	case int:
		d, err := decimal.New(int64(v), 0)
		return d, err == nil
	default:
		return decimal.Decimal{}, false
	}
}

func asRuleCode(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

func asTime(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, true
	case string:
		t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v))
		return t, err == nil
	case int64:
		return time.Unix(v, 0), true
	default:
		return time.Time{}, false
	}
}

// wellFormed reports whether raw has an acceptable shape for name.
func wellFormed(name models.Name, raw any) bool {
	switch name {
	case models.NameRoundingRule:
		_, ok := asRuleCode(raw)
		return ok
	case models.NameLastUpdated:
		_, ok := asTime(raw)
		return ok
	default:
		_, ok := asDecimal(raw)
		return ok
	}
}

func encodeDecimal(d decimal.Decimal) string {
	return d.String()
}

func encodeRule(r models.RoundingRule) int64 {
	return int64(r.Code())
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
