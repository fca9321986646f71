//go:build !linux
// +build !linux

package mpu6050

import (
	"context"
	"errors"

	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
)

var errNotSupported = errors.New("the MPU6050 driver only works on Linux")

// NewMpu6050 constructs the sensor directly, outside of a module process.
func NewMpu6050(
	ctx context.Context,
	logger logging.Logger,
	name string,
	busName string,
	useAlternateI2CAddress bool,
) (movementsensor.MovementSensor, error) {
	return nil, errNotSupported
}

func newMpu6050(
	ctx context.Context,
	_ resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (movementsensor.MovementSensor, error) {
	return nil, errNotSupported
}
