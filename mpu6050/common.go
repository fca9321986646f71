// Package mpu6050 is only implemented for Linux systems.
package mpu6050

import (
	"context"

	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/resource"
)

// A TemperatureSensor reports the temperature of the chip's onboard
// thermometer in degrees Celsius.
type TemperatureSensor interface {
	Temperature(ctx context.Context, extra map[string]interface{}) (float64, error)
}

// Model for the gyro-mpu6050 movement sensor.
var Model = resource.NewModel("dboe", "gyro-mpu6050", "mpu6050")

// Config is used to configure the attributes of the chip.
type Config struct {
	I2cBus                 string `json:"i2c_bus"`
	UseAlternateI2CAddress bool   `json:"use_alt_i2c_address,omitempty"`
	AccelRange             string `json:"accel_range,omitempty"`
	GyroRange              string `json:"gyro_range,omitempty"`
}

// Validate ensures all parts of the config are valid, and then returns the list of things we
// depend on.
func (conf *Config) Validate(path string) ([]string, error) {
	if conf.I2cBus == "" {
		return nil, resource.NewConfigValidationFieldRequiredError(path, "i2c_bus")
	}
	if conf.AccelRange != "" {
		if _, ok := accelRanges[AccelRange(conf.AccelRange)]; !ok {
			return nil, resource.NewConfigValidationError(path, &InvalidRangeError{Value: conf.AccelRange})
		}
	}
	if conf.GyroRange != "" {
		if _, ok := gyroRanges[GyroRange(conf.GyroRange)]; !ok {
			return nil, resource.NewConfigValidationError(path, &InvalidRangeError{Value: conf.GyroRange})
		}
	}

	var deps []string
	return deps, nil
}

func init() {
	resource.RegisterComponent(movementsensor.API, Model, resource.Registration[movementsensor.MovementSensor, *Config]{
		Constructor: newMpu6050,
	})
}
