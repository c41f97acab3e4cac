package game

import (
	"errors"
	"fmt"
)

var (
	ErrNoCards      = errors.New("no visible cards selected")
	ErrTooManyCards = errors.New("more than 5 cards selected")
	ErrUnknownHand  = errors.New("unknown hand category")
)

// MaxSelection is the largest number of cards that can be played at once.
const MaxSelection = 5

// ClassificationError reports a selection that cannot be classified. No state
// is changed when it is returned.
type ClassificationError struct {
	Selected int // cards in the selection, including face-down ones
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify %d cards: %v", e.Selected, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// ConstraintError reports a classified hand rejected by the active boss.
// No state is changed when it is returned.
type ConstraintError struct {
	Boss     string
	Category Category
	Required Category // set when the boss requires a specific category
	Reason   string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s rejects %s: %s", e.Boss, e.Category, e.Reason)
}
