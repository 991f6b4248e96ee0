// Package sm2 implements the SM-2 memory model: given a recall grade and an
// item's scheduling history, it computes the next ease factor, review interval
// and consecutive-success count. It is pure and performs no I/O.
package sm2

import (
	"math"

	"github.com/okrause/recallflow/internal/errors"
)

// MinEaseFactor is the floor below which the ease factor never drops.
const MinEaseFactor = 1.3

// SuccessThreshold is the lowest quality counted as a successful recall.
const SuccessThreshold = 3

// Result holds the scheduling fields produced by one grading step.
type Result struct {
	EaseFactor   float64
	IntervalDays int
	Repetitions  int
}

// ValidateGrade rejects quality grades outside [0,5] with an InvalidGrade error.
func ValidateGrade(quality int) error {
	if quality < 0 || quality > 5 {
		return errors.NewInvalidGradeError(quality)
	}
	return nil
}

// ComputeNext applies the SM-2 formula to one review.
//
// quality is a 0..5 recall grade; anything outside that range is rejected
// with an InvalidGrade error rather than clamped, so a buggy caller cannot
// silently skew the ease-factor trend.
//
// A failing grade (quality < 3) resets repetitions and interval but still
// applies the ease update, so repeated failures degrade ease toward the floor
// without resetting it to the default.
func ComputeNext(quality, priorRepetitions int, priorEaseFactor float64, priorIntervalDays int) (Result, error) {
	if err := ValidateGrade(quality); err != nil {
		return Result{}, err
	}

	miss := float64(5 - quality)
	ease := priorEaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if ease < MinEaseFactor {
		ease = MinEaseFactor
	}

	if quality < SuccessThreshold {
		return Result{
			EaseFactor:   ease,
			IntervalDays: 1,
			Repetitions:  0,
		}, nil
	}

	var interval int
	switch priorRepetitions {
	case 0:
		interval = 1
	case 1:
		interval = 6
	default:
		interval = int(math.Round(float64(priorIntervalDays) * ease))
	}
	if interval < 1 {
		interval = 1
	}

	return Result{
		EaseFactor:   ease,
		IntervalDays: interval,
		Repetitions:  priorRepetitions + 1,
	}, nil
}
