package indicator

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel wrapped by every constructor
// validation failure. Callers can match it with errors.Is without knowing
// the concrete error type.
var ErrInvalidParameter = errors.New("invalid parameter")

// RangeError reports a constructor parameter outside its allowed range.
// Min and Max are nil when the range is unbounded on that side.
type RangeError struct {
	Param string
	Value any
	Min   any
	Max   any
}

func (e *RangeError) Error() string {
	switch {
	case e.Min != nil && e.Max != nil:
		return fmt.Sprintf("expected to be %v <= %v <= %v, but actually %v.", e.Min, e.Param, e.Max, e.Value)
	case e.Min != nil:
		return fmt.Sprintf("expected to be %v <= %v, but actually %v.", e.Min, e.Param, e.Value)
	case e.Max != nil:
		return fmt.Sprintf("expected to be %v <= %v, but actually %v.", e.Param, e.Max, e.Value)
	default:
		return fmt.Sprintf("unexpected value for %v: %v.", e.Param, e.Value)
	}
}

// Is matches ErrInvalidParameter.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// RelationError reports two constructor parameters that violate a required
// ordering, such as MACD's short period not being below its long period.
type RelationError struct {
	Left       string
	Op         string
	Right      string
	LeftValue  any
	RightValue any
}

func (e *RelationError) Error() string {
	return fmt.Sprintf("expected to be %v %v %v, found %v %v %v.",
		e.Left, e.Op, e.Right, e.LeftValue, e.Op, e.RightValue)
}

// Is matches ErrInvalidParameter.
func (e *RelationError) Is(target error) bool {
	return target == ErrInvalidParameter
}
