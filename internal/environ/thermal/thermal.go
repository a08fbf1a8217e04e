// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package thermal reads the three LM75-class board sensors. The kernel
// registers them under an hwmon instance whose number is assigned at boot,
// hence the glob in the device path.
package thermal

import (
	"fmt"
	"path/filepath"

	"github.com/acctonsystems/platform-as4630/internal/environ"
	"github.com/acctonsystems/platform-as4630/internal/sysfs"
)

var hwmonDev = map[int]string{
	1: "14-0048",
	2: "24-004b",
	3: "25-004a",
}

type Sensor struct {
	index   int
	pattern string
}

func New(root string, index int) *Sensor {
	return &Sensor{
		index: index,
		pattern: fmt.Sprintf("%s/bus/i2c/devices/%s/hwmon/hwmon*",
			root, hwmonDev[index]),
	}
}

func (s *Sensor) Name() string { return fmt.Sprintf("Temp sensor %d", s.index) }

func (s *Sensor) attr(name string) (string, error) {
	dir, err := sysfs.Resolve(s.pattern)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func (s *Sensor) Temperature() (float64, error) {
	path, err := s.attr("temp1_input")
	if err != nil {
		return 0, err
	}
	return sysfs.ReadMilli(path)
}

func (s *Sensor) HighThreshold() (float64, error) {
	path, err := s.attr("temp1_max")
	if err != nil {
		return 0, err
	}
	return sysfs.ReadMilli(path)
}

func (s *Sensor) SetHighThreshold(degC float64) error {
	return environ.ErrNotSupported
}

func (s *Sensor) Present() (bool, error) {
	path, err := s.attr("temp1_input")
	if err != nil {
		return false, nil
	}
	return sysfs.Exists(path), nil
}

// Status is false for an absent sensor, true when the sensor has no fault
// attribute, and otherwise follows the fault flag.
func (s *Sensor) Status() (bool, error) {
	present, err := s.Present()
	if err != nil || !present {
		return false, err
	}
	path, err := s.attr("temp1_fault")
	if err != nil {
		return false, err
	}
	if !sysfs.Exists(path) {
		return true, nil
	}
	v, err := sysfs.ReadInt(path)
	if err != nil {
		return false, err
	}
	return v == 0, nil
}
