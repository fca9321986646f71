// Package main contains a command that polls an MPU6050 and appends the
// acceleration vector and tilt angle to a JSON-lines capture file until
// interrupted.
package main

import (
	"context"
	"os"
	"time"

	"go.viam.com/rdk/logging"
	"go.viam.com/utils"

	"gyro-mpu6050/gyrolog"
	"gyro-mpu6050/mpu6050"
)

var logger = logging.NewLogger("gyro-logger")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	I2cBus     string `flag:"i2c-bus,default=1,usage=I2C bus the sensor is wired to"`
	UseAltAddr bool   `flag:"alt-address,usage=use I2C address 0x69 instead of 0x68"`
	OutputDir  string `flag:"out,default=RawData,usage=directory for capture files"`
	IntervalMS int    `flag:"interval-ms,default=100,usage=milliseconds between samples"`
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	if err := os.MkdirAll(argsParsed.OutputDir, 0o755); err != nil {
		return err
	}
	path := gyrolog.OutputPath(argsParsed.OutputDir, time.Now())
	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer utils.UncheckedErrorFunc(out.Close)

	sensor, err := mpu6050.NewMpu6050(ctx, logger, "gyro", argsParsed.I2cBus, argsParsed.UseAltAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := sensor.Close(ctx); err != nil {
			logger.Error(err)
		}
	}()

	logger.Infof("recording samples to %s", path)
	interval := time.Duration(argsParsed.IntervalMS) * time.Millisecond
	err = gyrolog.Poll(ctx, sensor, out, interval, logger)
	return utils.FilterOutError(err, context.Canceled)
}
