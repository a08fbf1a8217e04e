// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package sysfs reads and writes the textual pseudo-files exported by the
// kernel's i2c, hwmon and dmi subsystems.
package sysfs

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func ReadString(path string) (string, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func ReadInt(path string) (int, error) {
	s, err := ReadString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", path, err)
	}
	return v, nil
}

// ReadHex parses a register value printed as hex text, with or without a
// leading 0x.
func ReadHex(path string) (int64, error) {
	s, err := ReadString(path)
	if err != nil {
		return 0, err
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseInt(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", path, err)
	}
	return v, nil
}

// ReadMilli scales an integer milli-unit attribute (milli-volts,
// milli-degrees, ...) to its base unit.
func ReadMilli(path string) (float64, error) {
	s, err := ReadString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", path, err)
	}
	return v / 1000, nil
}

func WriteString(path, s string) error {
	return ioutil.WriteFile(path, []byte(s), 0644)
}

func WriteInt(path string, v int) error {
	return WriteString(path, strconv.Itoa(v))
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Resolve expands a pattern with a glob component, e.g. the hwmon/hwmon*
// indirection, to the first matching path.
func Resolve(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%s: no match", pattern)
	}
	return matches[0], nil
}
