// Package gyrolog polls a movement sensor at a fixed interval and appends one
// JSON object per sample to a writer, for long-running tilt captures.
package gyrolog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"
	goutils "go.viam.com/utils"

	"gyro-mpu6050/mpu6050"
)

// AccelSource is the part of a movement sensor the recorder polls.
type AccelSource interface {
	LinearAcceleration(ctx context.Context, extra map[string]interface{}) (r3.Vector, error)
}

// Sample is one acquisition record: the acceleration vector in m/s², the
// derived tilt angle in degrees, and the capture time in seconds since the
// epoch. The measurement fields are pointers so that a failed reading
// marshals to JSON null instead of masquerading as zero.
type Sample struct {
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Z         *float64 `json:"z"`
	Theta     *float64 `json:"theta"`
	Timestamp float64  `json:"timestamp"`
}

// Take polls one acceleration reading and derives the tilt angle from it.
// Bus faults and undefined angles degrade to null fields; they never stop
// the caller's loop.
func Take(ctx context.Context, src AccelSource, logger logging.Logger) Sample {
	sample := Sample{Timestamp: float64(time.Now().UnixNano()) / float64(time.Second)}

	acceleration, err := src.LinearAcceleration(ctx, nil)
	if err != nil {
		logger.CErrorf(ctx, "error reading acceleration: '%s'", err)
		return sample
	}
	sample.X = &acceleration.X
	sample.Y = &acceleration.Y
	sample.Z = &acceleration.Z

	if theta, ok := mpu6050.TiltAngle(acceleration); ok {
		sample.Theta = &theta
	}
	return sample
}

// Poll records one sample every interval until the context is cancelled,
// writing each as a single JSON line.
func Poll(ctx context.Context, src AccelSource, w io.Writer, interval time.Duration, logger logging.Logger) error {
	encoder := json.NewEncoder(w)
	for {
		if !goutils.SelectContextOrWait(ctx, interval) {
			return ctx.Err()
		}
		sample := Take(ctx, src, logger)
		if err := encoder.Encode(sample); err != nil {
			return err
		}
	}
}

// OutputPath names a capture file under dir, stamped to the minute it was
// started (MMDDYY_HHMM).
func OutputPath(dir string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("GyroTest_%s.json", now.Format("010206_1504")))
}
