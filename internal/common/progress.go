package common

// ProgressFunc reports advisory pipeline progress: a fractional completion in
// [0,1] and a human-readable phase label. Implementations must be cheap and
// must not fail; no component's correctness depends on it being consumed.
type ProgressFunc func(fraction float64, phase string)

// Report invokes p when non-nil.
func (p ProgressFunc) Report(fraction float64, phase string) {
	if p != nil {
		p(fraction, phase)
	}
}
