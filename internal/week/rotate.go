package week

import "errors"

// ErrNoCandidates is returned when a rotation is requested over an empty
// candidate list.
var ErrNoCandidates = errors.New("no candidate plans to rotate")

// Rotate advances a cursor over a candidate list with wraparound. The
// returned index is always in [0, candidateCount).
func Rotate(current, candidateCount int) (int, error) {
	if candidateCount <= 0 {
		return 0, ErrNoCandidates
	}
	next := (current + 1) % candidateCount
	if next < 0 {
		next += candidateCount
	}
	return next, nil
}
