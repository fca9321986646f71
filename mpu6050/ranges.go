package mpu6050

// AccelRange is a full-scale range setting for the accelerometer.
type AccelRange string

// Supported accelerometer full-scale ranges.
const (
	AccelRange2G  AccelRange = "2g"
	AccelRange4G  AccelRange = "4g"
	AccelRange8G  AccelRange = "8g"
	AccelRange16G AccelRange = "16g"
)

// GyroRange is a full-scale range setting for the gyroscope, in degrees per second.
type GyroRange string

// Supported gyroscope full-scale ranges.
const (
	GyroRange250  GyroRange = "250deg"
	GyroRange500  GyroRange = "500deg"
	GyroRange1000 GyroRange = "1000deg"
	GyroRange2000 GyroRange = "2000deg"
)

// Ranges applied at construction when the config doesn't name any.
const (
	DefaultAccelRange = AccelRange4G
	DefaultGyroRange  = GyroRange500
)

// rangeSetting ties a full-scale range to the code written to the chip's
// configuration register and to the divisor that converts a raw count into
// physical units (LSB per g, or LSB per degree/second).
type rangeSetting struct {
	code    byte
	divisor float64
}

// Pre-defined ranges and sensitivities, register map rev 4.2 pages 14-15.
var accelRanges = map[AccelRange]rangeSetting{
	AccelRange2G:  {code: 0x00, divisor: 16384.0},
	AccelRange4G:  {code: 0x08, divisor: 8192.0},
	AccelRange8G:  {code: 0x10, divisor: 4096.0},
	AccelRange16G: {code: 0x18, divisor: 2048.0},
}

var gyroRanges = map[GyroRange]rangeSetting{
	GyroRange250:  {code: 0x00, divisor: 131.0},
	GyroRange500:  {code: 0x08, divisor: 65.5},
	GyroRange1000: {code: 0x10, divisor: 32.8},
	GyroRange2000: {code: 0x18, divisor: 16.4},
}
