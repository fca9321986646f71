// Package main for testing mpu6050 locally
package main

import (
	"context"
	"time"

	"go.viam.com/rdk/logging"

	"gyro-mpu6050/mpu6050"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	ctx := context.Background()
	logger := logging.NewLogger("mpu6050-local")

	ms, err := mpu6050.NewMpu6050(ctx, logger, "foo", "1", false)
	if err != nil {
		return err
	}
	defer func() {
		if err := ms.Close(ctx); err != nil {
			logger.Error(err)
		}
	}()

	for range 30 {
		av, err := ms.AngularVelocity(ctx, nil)
		if err != nil {
			return err
		}
		la, err := ms.LinearAcceleration(ctx, nil)
		if err != nil {
			return err
		}

		logger.Infof("angular velocity: %0.2f %0.2f %0.2f linear acceleration: %0.2f %0.2f %0.2f", av.X, av.Y, av.Z, la.X, la.Y, la.Z)

		if theta, ok := mpu6050.TiltAngle(la); ok {
			logger.Infof("tilt angle: %0.1f degrees", theta)
		}
		if ts, ok := ms.(mpu6050.TemperatureSensor); ok {
			celsius, err := ts.Temperature(ctx, nil)
			if err != nil {
				return err
			}
			logger.Infof("temperature: %0.2f C", celsius)
		}

		time.Sleep(time.Second)
	}
	return nil
}
