// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is the platform daemon for the Accton AS4630-54PE switch. It
// publishes the machine's hardware inventory and environmental telemetry
// (CPLD/BIOS firmware versions, fan trays, power supplies, thermal
// sensors) to the machine redis hash and applies the few writable fields
// the hardware supports.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/platinasystems/buildid"
	"github.com/platinasystems/buildinfo"
	yaml "gopkg.in/yaml.v2"
)

const usage = `
usage:	platformd
	platformd install
	platformd [show] {version, buildid, buildinfo, license}`

var ErrUsage = errors.New(usage[1:])

func main() {
	args := os.Args[1:]
	assert := func(err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if len(args) == 0 {
		assert(platformMain())
		return
	}
	arg := strings.TrimLeft(args[0], "-")
	if arg == "install" {
		if len(args) > 1 {
			assert(fmt.Errorf("%s", usage[1:]))
		}
		assert(install())
		return
	}
	if arg == "show" {
		args = args[1:]
	}
	for _, arg := range args {
		switch strings.TrimLeft(arg, "-") {
		case "version":
			fmt.Println(buildinfo.New().Version())
		case "buildid":
			s, err := buildid.New("/proc/self/exe")
			assert(err)
			fmt.Println(s)
		case "buildinfo":
			fmt.Println(buildinfo.New())
		case "copyright", "license":
			assert(marshalOut(licenses()))
		case "h", "help", "usage":
			fmt.Println(usage[1:])
		default:
			assert(fmt.Errorf("%q unknown", arg))
		}
	}
}

func marshalOut(m map[string]string) error {
	b, err := yaml.Marshal(m)
	if err == nil {
		os.Stdout.Write(b)
	}
	return err
}

func licenses() map[string]string {
	return map[string]string{
		"platform-as4630": License,
	}
}
