package shaping

import (
	"fmt"
	"unicode/utf8"
)

// TokenWarnThreshold is the approximate token count above which a
// response carries a sizeWarning block instead of growing further.
const TokenWarnThreshold = 20000

// SizeWarning is attached to a response whose estimated token count
// exceeds TokenWarnThreshold. Attaching it never truncates the
// response further — it only advises the caller how to shrink the
// next request.
type SizeWarning struct {
	EstimatedTokens int
	Message         string
	ShrinkFlags     []string
}

// EstimateTokens approximates a token count from serialized response
// bytes as runes/4, counting runes rather than bytes so multi-byte
// UTF-8 captions (common in non-English BAL projects) are not
// over-counted relative to ASCII text.
func EstimateTokens(serialized []byte) int {
	return utf8.RuneCount(serialized) / 4
}

// MaybeSizeWarning returns a SizeWarning if serialized's estimated
// token count exceeds TokenWarnThreshold, else nil.
func MaybeSizeWarning(serialized []byte) *SizeWarning {
	tokens := EstimateTokens(serialized)
	if tokens <= TokenWarnThreshold {
		return nil
	}
	return &SizeWarning{
		EstimatedTokens: tokens,
		Message:         fmt.Sprintf("response is approximately %d tokens, above the %d warn threshold", tokens, TokenWarnThreshold),
		ShrinkFlags:     []string{"summary=true", "includeFields=false", "includeProcedures=false", "limit=<smaller value>"},
	}
}
