package utils

import "fmt"

// CapacityExceededError is returned when a header does not fit its element
// table or a caller buffer is too small for the serialized layout.
type CapacityExceededError struct {
	What  string
	Limit int
}

// Error returns the error message for CapacityExceededError.
func (e CapacityExceededError) Error() string {
	if e.What == "" {
		return "Capacity exceeded"
	}
	return fmt.Sprintf("Capacity exceeded: %s (limit %d)", e.What, e.Limit)
}

// PreconditionViolatedError is returned when an operation is called in a state
// or with arguments it does not accept.
type PreconditionViolatedError struct {
	Reason string
}

// Error returns the error message for PreconditionViolatedError.
func (e PreconditionViolatedError) Error() string {
	if e.Reason == "" {
		return "Precondition violated"
	}
	return "Precondition violated: " + e.Reason
}

// UnreachableVariantError reports an enumeration value outside its closed set.
type UnreachableVariantError struct {
	Type  string
	Value int
}

// Error method implementation for UnreachableVariantError.
func (e UnreachableVariantError) Error() string {
	return fmt.Sprintf("Unreachable %s variant %d", e.Type, e.Value)
}
