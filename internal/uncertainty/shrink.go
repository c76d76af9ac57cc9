package uncertainty

// DefaultShrinkStrength is the stock fragility dampener.
const DefaultShrinkStrength = 0.5

// Shrink pulls a calibrated probability toward the coin flip in proportion
// to the flip rate: p' = 0.5 + (p − 0.5)·clamp(1 − strength·flipRate, 0, 1).
// At flip rate 0 the factor is exactly 1 and the probability passes through
// unchanged; the stage itself is never skipped.
func Shrink(p, flipRate, strength float64) float64 {
	factor := 1 - strength*flipRate
	if factor < 0 {
		factor = 0
	}
	if factor >= 1 {
		// The identity applied exactly; 0.5+(p-0.5) is not bit-exact for
		// all p.
		return p
	}
	return 0.5 + (p-0.5)*factor
}
