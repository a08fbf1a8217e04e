// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package fan drives the AS4630-54PE fan trays through the system CPLD
// and reports the fan internal to each power supply from its pmbus hwmon
// attributes.
package fan

import (
	"fmt"

	"github.com/acctonsystems/platform-as4630/internal/environ"
	"github.com/acctonsystems/platform-as4630/internal/sysfs"
)

// Full-scale speed of the YPEB1200AM power supply fan.
const psuFanMaxRPM = 26688

const cpldDev = "3-0060"

var psuHwmonDev = map[int]string{
	1: "10-0058",
	2: "11-0059",
}

// Tray is one of the three chassis fan trays. All trays share a single
// CPLD duty cycle register; presence and airflow direction are per tray.
type Tray struct {
	tray int
	cpld string
}

func NewTray(root string, tray int) *Tray {
	return &Tray{
		tray: tray,
		cpld: fmt.Sprintf("%s/bus/i2c/devices/%s/fan_", root, cpldDev),
	}
}

func (f *Tray) Name() string { return fmt.Sprintf("FAN-%d", f.tray) }

func (f *Tray) Present() (bool, error) {
	v, err := sysfs.ReadInt(fmt.Sprint(f.cpld, "present_", f.tray))
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (f *Tray) Status() (bool, error) { return f.Present() }

// Direction reads the CPLD airflow register; 0 means exhaust
// (front-to-back), anything else intake.
func (f *Tray) Direction() (environ.Direction, error) {
	v, err := sysfs.ReadInt(fmt.Sprint(f.cpld, "direction_", f.tray))
	if err != nil {
		return environ.DirectionExhaust, err
	}
	if v == 0 {
		return environ.DirectionExhaust, nil
	}
	return environ.DirectionIntake, nil
}

// SpeedPercent reports the shared duty cycle. An absent tray reads as 0
// without error.
func (f *Tray) SpeedPercent() (int, error) {
	present, err := f.Present()
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, nil
	}
	return sysfs.ReadInt(fmt.Sprint(f.cpld, "duty_cycle_percentage"))
}

func (f *Tray) SetSpeedPercent(pct int) error {
	present, err := f.Present()
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf("%s: not present", f.Name())
	}
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	return sysfs.WriteInt(fmt.Sprint(f.cpld, "duty_cycle_percentage"), pct)
}

// PsuFan is the fan built into a power supply. It spins whenever the PSU
// does; speed is read-only and the airflow is fixed exhaust.
type PsuFan struct {
	psu   int
	hwmon string
}

func NewPsuFan(root string, psu int) *PsuFan {
	return &PsuFan{
		psu:   psu,
		hwmon: fmt.Sprintf("%s/bus/i2c/devices/%s/", root, psuHwmonDev[psu]),
	}
}

func (f *PsuFan) Name() string { return fmt.Sprintf("PSU-%d FAN", f.psu) }

func (f *PsuFan) Present() (bool, error) { return true, nil }

func (f *PsuFan) Status() (bool, error) { return true, nil }

func (f *PsuFan) Direction() (environ.Direction, error) {
	return environ.DirectionExhaust, nil
}

func (f *PsuFan) SpeedPercent() (int, error) {
	rpm, err := sysfs.ReadInt(f.hwmon + "psu_fan1_speed_rpm")
	if err != nil {
		return 0, err
	}
	pct := rpm * 100 / psuFanMaxRPM
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

func (f *PsuFan) SetSpeedPercent(pct int) error {
	return environ.ErrNotSupported
}
