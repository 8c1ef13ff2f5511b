package models

// RoundingRule selects how a quotient is resolved to a whole number of increments.
type RoundingRule int

const (
	// RoundUp rounds toward positive infinity.
	RoundUp RoundingRule = iota + 1

	// RoundToNearestAwayFromZero rounds to the nearest integer, ties away from zero.
	RoundToNearestAwayFromZero
)

// Persisted codes for RoundingRule. Code 0 means "whatever the default is".
const (
	RuleCodeDefault   uint8 = 0
	RuleCodeRoundUp   uint8 = 1
	RuleCodeToNearest uint8 = 2
)

// String returns a human-readable rule name for logs.
func (r RoundingRule) String() string {
	switch r {
	case RoundUp:
		return "round_up"
	case RoundToNearestAwayFromZero:
		return "to_nearest_away_from_zero"
	default:
		return "unknown"
	}
}

// Code returns the persisted integer code for the rule.
// Unknown rules serialize as the default code.
func (r RoundingRule) Code() uint8 {
	switch r {
	case RoundUp:
		return RuleCodeRoundUp
	case RoundToNearestAwayFromZero:
		return RuleCodeToNearest
	default:
		return RuleCodeDefault
	}
}

// RuleFromCode decodes a persisted rule code.
// Unrecognized codes fall back to the default rule rather than failing.
func RuleFromCode(code int64) RoundingRule {
	switch code {
	case int64(RuleCodeRoundUp):
		return RoundUp
	case int64(RuleCodeToNearest):
		return RoundToNearestAwayFromZero
	default:
		return Defaults.RoundingRule
	}
}
