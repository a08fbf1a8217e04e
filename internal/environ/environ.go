// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package environ defines the device contracts the platform daemon
// consumes. The per-device packages underneath implement them for the
// AS4630-54PE hardware.
package environ

import "errors"

// ErrNotSupported is returned by operations this platform's hardware
// cannot perform, e.g. setting a PSU fan speed.
var ErrNotSupported = errors.New("not supported on this platform")

type Direction int

const (
	DirectionExhaust Direction = iota
	DirectionIntake
)

func (d Direction) String() string {
	if d == DirectionIntake {
		return "intake"
	}
	return "exhaust"
}

type Device interface {
	Name() string
	Present() (bool, error)
	Status() (bool, error)
}

type Fan interface {
	Device
	Direction() (Direction, error)
	// SpeedPercent is the current speed as a percentage of full scale,
	// 0 (off) to 100 (full speed).
	SpeedPercent() (int, error)
	SetSpeedPercent(pct int) error
}

type Psu interface {
	Device
	PowerGood() (bool, error)
	VoltageOut() (float64, error)
	CurrentOut() (float64, error)
	PowerOut() (float64, error)
	Temperature() (float64, error)
	VoltageOutMax() (float64, error)
	VoltageOutMin() (float64, error)
}

type Thermal interface {
	Device
	Temperature() (float64, error)
	HighThreshold() (float64, error)
	SetHighThreshold(degC float64) error
}

type Component interface {
	Name() string
	Description() string
	FirmwareVersion() (string, error)
}
