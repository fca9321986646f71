package mpu6050

import (
	"math"

	"github.com/golang/geo/r3"
)

// TiltAngle returns the angle in degrees between the sensor's Y axis and the
// measured gravity vector. It is only meaningful when the sensor is close to
// stationary, so that gravity dominates the acceleration reading.
//
// The second return value is false when no angle is defined: the vector has
// zero magnitude, or noise pushed the acos ratio outside [-1, 1].
func TiltAngle(acc r3.Vector) (float64, bool) {
	magnitude := acc.Norm()
	if magnitude == 0 {
		return 0, false
	}
	ratio := acc.Y / magnitude
	if ratio < -1 || ratio > 1 {
		return 0, false
	}
	return math.Acos(ratio) * 180 / math.Pi, true
}
