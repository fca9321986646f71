//go:build linux

// Package mpu6050 implements the movementsensor interface for an MPU-6050 6-axis accelerometer. A
// datasheet for this chip is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Datasheet1.pdf and a
// description of the I2C registers is at
// https://invensense.tdk.com/wp-content/uploads/2015/02/MPU-6000-Register-Map1.pdf
//
// We support reading the accelerometer, gyroscope, and thermometer data off of the chip, selecting
// the full-scale range of both sub-sensors, and deriving the tilt of the Y axis relative to
// gravity. We do not support the digital interrupt pin, the FIFO, or the secondary I2C connection
// for an external magnetometer.
//
// The chip has two possible I2C addresses, which can be selected by wiring the AD0 pin to either
// hot or ground:
//   - if AD0 is wired to ground, it uses the default I2C address of 0x68
//   - if AD0 is wired to hot, it uses the alternate I2C address of 0x69
//
// If you use the alternate address, your config file for this component must set its
// "use_alt_i2c_address" boolean to true.
//
// Every operation is synchronous: it issues its bus transactions on the calling goroutine and
// returns when they finish. Nothing is cached between calls except the current range settings, and
// no locking happens here. An application sharing one physical chip between goroutines must
// serialize access itself.
package mpu6050

import (
	"context"
	"fmt"

	"github.com/golang/geo/r3"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"go.viam.com/rdk/components/board/genericlinux/buses"
	"go.viam.com/rdk/components/movementsensor"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/resource"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/rdk/utils"
)

// MPU-6050 register map, rev 4.2.
const (
	powerManagement1Register = 0x6B
	accelConfigRegister      = 0x1C
	gyroConfigRegister       = 0x1B

	accelXOutHRegister = 0x3B
	accelYOutHRegister = 0x3D
	accelZOutHRegister = 0x3F
	tempOutHRegister   = 0x41
	gyroXOutHRegister  = 0x43
	gyroYOutHRegister  = 0x45
	gyroZOutHRegister  = 0x47

	defaultAddressRegister = 117
	expectedDefaultAddress = 0x68
	alternateAddress       = 0x69

	sleepBit = byte(1 << 6)
)

// Standard gravity in m/s² per g.
const gravityMS2 = 9.80665

type mpu6050 struct {
	resource.Named
	resource.AlwaysRebuild
	bus        buses.I2C
	i2cAddress byte
	logger     logging.Logger

	// The full-scale ranges currently programmed into the device. These are
	// only updated once both configuration writes have succeeded, so they
	// always match what the hardware registers hold.
	accelRange AccelRange
	gyroRange  GyroRange

	// Rolling record of recent bus transaction faults. Readings surfaces it
	// so a polling loop can notice a flaky bus without crashing on every
	// transient glitch.
	err movementsensor.LastError
}

func addressReadError(err error, address byte, bus string) error {
	msg := fmt.Sprintf("can't read from I2C address %d on bus %s", address, bus)
	return errors.Wrap(err, msg)
}

func unexpectedDeviceError(address, defaultAddress byte) error {
	return errors.Errorf("unexpected non-MPU6050 device at address %d: response '%d'",
		address, defaultAddress)
}

// NewMpu6050 constructs the sensor directly, outside of a module process.
func NewMpu6050(
	ctx context.Context,
	logger logging.Logger,
	name string,
	busName string,
	useAlternateI2CAddress bool,
) (movementsensor.MovementSensor, error) {
	bus, err := buses.NewI2cBus(busName)
	if err != nil {
		return nil, err
	}
	conf := resource.Config{
		Name: name,
		API:  movementsensor.API,
		ConvertedAttributes: &Config{
			I2cBus:                 busName,
			UseAlternateI2CAddress: useAlternateI2CAddress,
		},
	}
	return makeMpu6050(ctx, nil, conf, logger, bus)
}

// newMpu6050 constructs a new Mpu6050 object from a resource config.
func newMpu6050(
	ctx context.Context,
	deps resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
) (movementsensor.MovementSensor, error) {
	newConf, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return nil, err
	}

	bus, err := buses.NewI2cBus(newConf.I2cBus)
	if err != nil {
		return nil, err
	}
	return makeMpu6050(ctx, deps, conf, logger, bus)
}

// This function is separated from newMpu6050 solely so you can inject a mock I2C bus in tests.
func makeMpu6050(
	ctx context.Context,
	_ resource.Dependencies,
	conf resource.Config,
	logger logging.Logger,
	bus buses.I2C,
) (movementsensor.MovementSensor, error) {
	newConf, err := resource.NativeConfig[*Config](conf)
	if err != nil {
		return nil, err
	}

	var address byte
	if newConf.UseAlternateI2CAddress {
		address = alternateAddress
	} else {
		address = expectedDefaultAddress
	}
	logger.CDebugf(ctx, "Using address %d for MPU6050 sensor", address)

	sensor := &mpu6050{
		Named:      conf.ResourceName().AsNamed(),
		bus:        bus,
		i2cAddress: address,
		logger:     logger,
		// On overloaded boards, the I2C bus can become flaky. Only report errors if at least 5 of
		// the last 10 attempts to talk to the device have failed.
		err: movementsensor.NewLastError(10, 5),
	}

	// To check that we're able to talk to the chip, we should be able to read register 117 and get
	// back the device's non-alternative address (0x68).
	whoAmI, err := sensor.readByte(ctx, defaultAddressRegister)
	if err != nil {
		return nil, &InitializationError{cause: addressReadError(err, address, newConf.I2cBus)}
	}
	if whoAmI != expectedDefaultAddress {
		return nil, &InitializationError{cause: unexpectedDeviceError(address, whoAmI)}
	}

	// The chip starts out in standby mode (the Sleep bit in the power management register defaults
	// to 1). Set it to measurement mode (by turning off the Sleep bit) so we can get data from it.
	if err := sensor.writeByte(ctx, powerManagement1Register, 0x00); err != nil {
		return nil, &InitializationError{cause: errors.Wrap(err, "unable to wake up MPU6050")}
	}

	accelRange := DefaultAccelRange
	if newConf.AccelRange != "" {
		accelRange = AccelRange(newConf.AccelRange)
	}
	gyroRange := DefaultGyroRange
	if newConf.GyroRange != "" {
		gyroRange = GyroRange(newConf.GyroRange)
	}
	if err := sensor.SetAccelRange(ctx, accelRange); err != nil {
		return nil, err
	}
	if err := sensor.SetGyroRange(ctx, gyroRange); err != nil {
		return nil, err
	}

	return sensor, nil
}

// busFault records a failed transaction and wraps it for the caller.
func (mpu *mpu6050) busFault(op string, register byte, err error) *BusError {
	busErr := &BusError{Op: op, Register: register, cause: err}
	mpu.err.Set(busErr)
	return busErr
}

func (mpu *mpu6050) readByte(ctx context.Context, register byte) (byte, error) {
	handle, err := mpu.bus.OpenHandle(mpu.i2cAddress)
	if err != nil {
		return 0, mpu.busFault("read", register, err)
	}
	defer func() {
		if err := handle.Close(); err != nil {
			mpu.logger.CError(ctx, err)
		}
	}()

	value, err := handle.ReadByteData(ctx, register)
	if err != nil {
		return 0, mpu.busFault("read", register, err)
	}
	mpu.err.Set(nil)
	return value, nil
}

func (mpu *mpu6050) writeByte(ctx context.Context, register, value byte) error {
	handle, err := mpu.bus.OpenHandle(mpu.i2cAddress)
	if err != nil {
		return mpu.busFault("write", register, err)
	}
	defer func() {
		if err := handle.Close(); err != nil {
			mpu.logger.CError(ctx, err)
		}
	}()

	if err := handle.WriteByteData(ctx, register, value); err != nil {
		return mpu.busFault("write", register, err)
	}
	mpu.err.Set(nil)
	return nil
}

// ReadWord reads the big-endian 16-bit quantity whose high byte lives at register and whose low
// byte lives at register+1, as two independent single-byte transactions. All two's-complement
// sign reconstruction happens here; every higher-level read builds on this.
func (mpu *mpu6050) ReadWord(ctx context.Context, register byte) (int16, error) {
	high, err := mpu.readByte(ctx, register)
	if err != nil {
		return 0, errors.Wrap(err, "reading high byte")
	}
	low, err := mpu.readByte(ctx, register+1)
	if err != nil {
		return 0, errors.Wrap(err, "reading low byte")
	}
	return utils.Int16FromBytesBE([]byte{high, low}), nil
}

// SetAccelRange programs the accelerometer's full-scale range. The configuration register is
// cleared before the range code is written: a single write is not guaranteed to transition
// cleanly between arbitrary bit patterns on all hardware revisions. The stored range is only
// updated after both writes succeed, so it always matches the register contents.
func (mpu *mpu6050) SetAccelRange(ctx context.Context, rng AccelRange) error {
	setting, ok := accelRanges[rng]
	if !ok {
		return &InvalidRangeError{Value: string(rng)}
	}
	if err := mpu.writeByte(ctx, accelConfigRegister, 0x00); err != nil {
		return err
	}
	if err := mpu.writeByte(ctx, accelConfigRegister, setting.code); err != nil {
		return err
	}
	mpu.accelRange = rng
	return nil
}

// SetGyroRange programs the gyroscope's full-scale range, with the same clear-then-write
// sequence and update rule as SetAccelRange.
func (mpu *mpu6050) SetGyroRange(ctx context.Context, rng GyroRange) error {
	setting, ok := gyroRanges[rng]
	if !ok {
		return &InvalidRangeError{Value: string(rng)}
	}
	if err := mpu.writeByte(ctx, gyroConfigRegister, 0x00); err != nil {
		return err
	}
	if err := mpu.writeByte(ctx, gyroConfigRegister, setting.code); err != nil {
		return err
	}
	mpu.gyroRange = rng
	return nil
}

// Temperature returns the chip temperature in degrees Celsius.
func (mpu *mpu6050) Temperature(ctx context.Context, extra map[string]interface{}) (float64, error) {
	raw, err := mpu.ReadWord(ctx, tempOutHRegister)
	if err != nil {
		return 0, err
	}
	// Taken straight from the MPU6050 register map. Yes, these are weird constants.
	return float64(raw)/340.0 + 36.53, nil
}

// LinearAcceleration returns the acceleration along each axis in m/s². If any axis read fails,
// the whole reading fails; a partial vector would let a caller compute a tilt angle from two real
// components and one garbage value without noticing.
func (mpu *mpu6050) LinearAcceleration(ctx context.Context, extra map[string]interface{}) (r3.Vector, error) {
	var raw [3]float64
	for i, register := range [3]byte{accelXOutHRegister, accelYOutHRegister, accelZOutHRegister} {
		word, err := mpu.ReadWord(ctx, register)
		if err != nil {
			mpu.logger.CErrorf(ctx, "error reading MPU6050 accelerometer: '%s'", err)
			return r3.Vector{}, err
		}
		raw[i] = float64(word)
	}

	divisor := accelRanges[mpu.accelRange].divisor
	return r3.Vector{
		X: raw[0] / divisor * gravityMS2,
		Y: raw[1] / divisor * gravityMS2,
		Z: raw[2] / divisor * gravityMS2,
	}, nil
}

// AngularVelocity returns the rotation rate around each axis in degrees per second, with the
// same all-or-nothing failure behavior as LinearAcceleration.
func (mpu *mpu6050) AngularVelocity(ctx context.Context, extra map[string]interface{}) (spatialmath.AngularVelocity, error) {
	var raw [3]float64
	for i, register := range [3]byte{gyroXOutHRegister, gyroYOutHRegister, gyroZOutHRegister} {
		word, err := mpu.ReadWord(ctx, register)
		if err != nil {
			mpu.logger.CErrorf(ctx, "error reading MPU6050 gyroscope: '%s'", err)
			return spatialmath.AngularVelocity{}, err
		}
		raw[i] = float64(word)
	}

	divisor := gyroRanges[mpu.gyroRange].divisor
	return spatialmath.AngularVelocity{
		X: raw[0] / divisor,
		Y: raw[1] / divisor,
		Z: raw[2] / divisor,
	}, nil
}

func (mpu *mpu6050) LinearVelocity(ctx context.Context, extra map[string]interface{}) (r3.Vector, error) {
	return r3.Vector{}, movementsensor.ErrMethodUnimplementedLinearVelocity
}

func (mpu *mpu6050) Orientation(ctx context.Context, extra map[string]interface{}) (spatialmath.Orientation, error) {
	return spatialmath.NewOrientationVector(), movementsensor.ErrMethodUnimplementedOrientation
}

func (mpu *mpu6050) CompassHeading(ctx context.Context, extra map[string]interface{}) (float64, error) {
	return 0, movementsensor.ErrMethodUnimplementedCompassHeading
}

func (mpu *mpu6050) Position(ctx context.Context, extra map[string]interface{}) (*geo.Point, float64, error) {
	return geo.NewPoint(0, 0), 0, movementsensor.ErrMethodUnimplementedPosition
}

func (mpu *mpu6050) Accuracy(ctx context.Context, extra map[string]interface{}) (*movementsensor.Accuracy, error) {
	return movementsensor.UnimplementedOptionalAccuracies(), nil
}

// Readings polls everything the chip can measure, plus the derived tilt angle. Each measurement
// degrades independently: a key is simply absent when its reading failed this poll, and the
// returned error only reports a bus that has been persistently flaky.
func (mpu *mpu6050) Readings(ctx context.Context, extra map[string]interface{}) (map[string]interface{}, error) {
	readings := make(map[string]interface{})

	if acceleration, err := mpu.LinearAcceleration(ctx, extra); err == nil {
		readings["linear_acceleration"] = acceleration
		if theta, ok := TiltAngle(acceleration); ok {
			readings["tilt_theta_degrees"] = theta
		}
	}
	if velocity, err := mpu.AngularVelocity(ctx, extra); err == nil {
		readings["angular_velocity"] = velocity
	}
	if celsius, err := mpu.Temperature(ctx, extra); err == nil {
		readings["temperature_celsius"] = celsius
	}

	return readings, mpu.err.Get()
}

func (mpu *mpu6050) Properties(ctx context.Context, extra map[string]interface{}) (*movementsensor.Properties, error) {
	return &movementsensor.Properties{
		AngularVelocitySupported:    true,
		LinearAccelerationSupported: true,
	}, nil
}

func (mpu *mpu6050) Close(ctx context.Context) error {
	// Set the Sleep bit (bit 6) in the power control register (register 107).
	err := mpu.writeByte(ctx, powerManagement1Register, sleepBit)
	if err != nil {
		mpu.logger.CError(ctx, err)
	}
	return err
}
