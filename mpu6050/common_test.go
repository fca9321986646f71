package mpu6050

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestConfigValidation(t *testing.T) {
	t.Run("i2c bus is required", func(t *testing.T) {
		conf := &Config{}
		_, err := conf.Validate("path")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "i2c_bus")
	})

	t.Run("range strings must be supported values", func(t *testing.T) {
		conf := &Config{I2cBus: "1", AccelRange: "5g"}
		_, err := conf.Validate("path")
		var rangeErr *InvalidRangeError
		test.That(t, errors.As(err, &rangeErr), test.ShouldBeTrue)

		conf = &Config{I2cBus: "1", GyroRange: "750deg"}
		_, err = conf.Validate("path")
		test.That(t, errors.As(err, &rangeErr), test.ShouldBeTrue)
	})

	t.Run("valid config has no dependencies", func(t *testing.T) {
		conf := &Config{I2cBus: "1", AccelRange: "8g", GyroRange: "1000deg"}
		deps, err := conf.Validate("path")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, deps, test.ShouldBeEmpty)
	})
}

func TestScaleDivisors(t *testing.T) {
	// LSB per g and LSB per deg/s, straight from the datasheet.
	test.That(t, accelRanges[AccelRange2G].divisor, test.ShouldEqual, 16384.0)
	test.That(t, accelRanges[AccelRange16G].divisor, test.ShouldEqual, 2048.0)
	test.That(t, gyroRanges[GyroRange250].divisor, test.ShouldEqual, 131.0)
	test.That(t, gyroRanges[GyroRange2000].divisor, test.ShouldEqual, 16.4)
}
