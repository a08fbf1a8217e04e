// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package component reports firmware versions for the system CPLD and the
// BIOS.
package component

import (
	"fmt"
	"strconv"

	"github.com/platinasystems/i2c"

	"github.com/acctonsystems/platform-as4630/internal/sysfs"
)

const (
	cpldBus  = 3
	cpldAddr = 0x60
	// CPLD revision register, read over SMBus when the kernel driver
	// that exports the version attribute is not bound.
	cpldVersionReg = 0x01
)

// Cpld reports the system CPLD revision. The register holds hex text in
// sysfs and is reported as a decimal string, matching what the firmware
// utilities expect.
type Cpld struct {
	version string
}

func NewCpld(root string) *Cpld {
	return &Cpld{
		version: fmt.Sprintf("%s/bus/i2c/devices/%d-00%x/version",
			root, cpldBus, cpldAddr),
	}
}

func (c *Cpld) Name() string { return "CPLD" }

func (c *Cpld) Description() string { return "CPLD" }

func (c *Cpld) FirmwareVersion() (string, error) {
	if sysfs.Exists(c.version) {
		v, err := sysfs.ReadHex(c.version)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	}
	var d i2c.SMBusData
	err := i2c.Do(cpldBus, cpldAddr, func(bus *i2c.Bus) error {
		return bus.Read(cpldVersionReg, i2c.ByteData, &d)
	})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(int(d[0])), nil
}

// Bios reports the BIOS version string from the dmi class device.
type Bios struct {
	version string
}

func NewBios(root string) *Bios {
	return &Bios{version: root + "/class/dmi/id/bios_version"}
}

func (b *Bios) Name() string { return "BIOS" }

func (b *Bios) Description() string { return "Basic Input/Output System" }

func (b *Bios) FirmwareVersion() (string, error) {
	return sysfs.ReadString(b.version)
}
