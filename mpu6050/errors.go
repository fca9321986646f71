package mpu6050

import "fmt"

// BusError reports a failed single-byte transaction on the I2C bus. These
// are usually transient; the caller may retry.
type BusError struct {
	Op       string // "read" or "write"
	Register byte
	cause    error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("i2c %s of register %#02x failed: %v", e.Op, e.Register, e.cause)
}

// Unwrap returns the underlying transport error.
func (e *BusError) Unwrap() error { return e.cause }

// InvalidRangeError reports a request for a full-scale range outside the
// supported set. This is a caller bug, not a retryable condition.
type InvalidRangeError struct {
	Value string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%q is not a valid full-scale range", e.Value)
}

// InitializationError reports that the device could not be identified or
// woken at construction. The sensor must not be used after getting one.
type InitializationError struct {
	cause error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("unable to initialize MPU6050: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *InitializationError) Unwrap() error { return e.cause }
