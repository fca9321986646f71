package mpu6050

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestTiltAngle(t *testing.T) {
	t.Run("gravity aligned with Y is zero degrees", func(t *testing.T) {
		theta, ok := TiltAngle(r3.Vector{X: 0, Y: 9.80665, Z: 0})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, theta, test.ShouldAlmostEqual, 0)
	})

	t.Run("gravity opposing Y is 180 degrees", func(t *testing.T) {
		theta, ok := TiltAngle(r3.Vector{X: 0, Y: -9.80665, Z: 0})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, theta, test.ShouldAlmostEqual, 180)
	})

	t.Run("gravity perpendicular to Y is 90 degrees", func(t *testing.T) {
		theta, ok := TiltAngle(r3.Vector{X: 9.80665, Y: 0, Z: 0})
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, theta, test.ShouldAlmostEqual, 90)
	})

	t.Run("zero magnitude has no angle", func(t *testing.T) {
		_, ok := TiltAngle(r3.Vector{})
		test.That(t, ok, test.ShouldBeFalse)
	})
}
