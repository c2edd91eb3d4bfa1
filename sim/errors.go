package sim

import "fmt"

// Sentinel errors identifying the taxonomy of construction-time and
// runtime failures the simulator can surface to callers. Wrap these with
// fmt.Errorf("%w: ...") to attach context; callers can still match with
// errors.Is.
var (
	// ErrNotPositive means a value that must be strictly positive (a
	// capacity, a length, a speed) was zero or negative.
	ErrNotPositive = fmt.Errorf("value must be strictly positive")

	// ErrNotAProbability means a value outside [0, 1] was supplied where a
	// probability was required.
	ErrNotAProbability = fmt.Errorf("value must be in [0, 1]")

	// ErrNotUniqueID means a uid collided with one already registered in
	// the Model.
	ErrNotUniqueID = fmt.Errorf("uid is already in use")

	// ErrInputMismatch means routes/tours/trains reference each other in a
	// structurally inconsistent way (e.g. mismatched arg-list lengths, or
	// a tour's routes don't bridge at a shared component).
	ErrInputMismatch = fmt.Errorf("input is structurally inconsistent")
)

// InvariantError is a fatal internal-consistency violation: something the
// admission/accounting logic guarantees can't happen, happened anyway. It
// is never recoverable and callers should treat it as a programming bug.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

func panicInvariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}

func wrapInputMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputMismatch, fmt.Sprintf(format, args...))
}

func wrapNotPositive(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotPositive, fmt.Sprintf(format, args...))
}

func wrapNotAProbability(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotAProbability, fmt.Sprintf(format, args...))
}

func wrapNotUniqueID(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotUniqueID, fmt.Sprintf(format, args...))
}
