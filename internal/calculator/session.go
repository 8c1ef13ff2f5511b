package calculator

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/mjec/tipcalc/internal/models"
)

// StalenessWindow is how long a persisted bill/tip pair stays resumable.
const StalenessWindow = 10 * time.Minute

// Start is the initial bill/tip pair of a new session.
type Start struct {
	BillTotal     decimal.Decimal
	TipPercentage decimal.Decimal
	Resumed       bool
}

// ShouldResume reports whether a session persisted at lastUpdated is still
// fresh at now. A nil lastUpdated is never fresh.
func ShouldResume(lastUpdated *time.Time, now time.Time) bool {
	if lastUpdated == nil {
		return false
	}
	return now.Sub(*lastUpdated) < StalenessWindow
}

// ResolveStart picks the starting bill/tip pair for a session.
// Fresh persisted values win; otherwise the bill is the built-in default and
// the tip is the user's default tip percentage.
func ResolveStart(prefs models.PreferenceSet, now time.Time) Start {
	if ShouldResume(prefs.LastUpdated, now) {
		return Start{
			BillTotal:     prefs.BillTotal,
			TipPercentage: prefs.TipPercentage,
			Resumed:       true,
		}
	}
	return Start{
		BillTotal:     models.Defaults.BillTotal,
		TipPercentage: prefs.DefaultTipPercentage,
	}
}
