// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package psu reports the AS4630-54PE power supplies. Telemetry comes
// from the pmbus hwmon attributes; presence and power-good come from the
// PSU CPLD. The status LED is hardware controlled and has no operation
// here.
package psu

import (
	"fmt"

	"github.com/acctonsystems/platform-as4630/internal/sysfs"
)

var i2cDev = map[int]struct {
	hwmon string // pmbus telemetry
	cpld  string // presence, power good
}{
	1: {"10-0058", "10-0050"},
	2: {"11-0059", "11-0051"},
}

type Psu struct {
	index int
	hwmon string
	cpld  string
}

func New(root string, index int) *Psu {
	dev := i2cDev[index]
	return &Psu{
		index: index,
		hwmon: fmt.Sprintf("%s/bus/i2c/devices/%s/", root, dev.hwmon),
		cpld:  fmt.Sprintf("%s/bus/i2c/devices/%s/", root, dev.cpld),
	}
}

func (p *Psu) Name() string { return fmt.Sprintf("PSU-%d", p.index) }

func (p *Psu) Present() (bool, error) {
	v, err := sysfs.ReadInt(p.cpld + "psu_present")
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

func (p *Psu) PowerGood() (bool, error) {
	v, err := sysfs.ReadInt(p.cpld + "psu_power_good")
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// Status mirrors PowerGood; a supply that is present but without good
// output is not operational.
func (p *Psu) Status() (bool, error) { return p.PowerGood() }

func (p *Psu) VoltageOut() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_v_out")
}

func (p *Psu) CurrentOut() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_i_out")
}

func (p *Psu) PowerOut() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_p_out")
}

func (p *Psu) Temperature() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_temp1_input")
}

func (p *Psu) VoltageOutMax() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_mfr_vout_max")
}

func (p *Psu) VoltageOutMin() (float64, error) {
	return sysfs.ReadMilli(p.hwmon + "psu_mfr_vout_min")
}
