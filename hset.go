// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"

	"github.com/platinasystems/elib/parse"
)

// set applies a writable platform field. The cases mirror what the
// hardware actually allows: the shared fan tray duty cycle and the poll
// interval. Everything else is read-only.
func (plat *Platform) set(key, value string) error {
	var (
		in   parse.Input
		duty float64
		itv  float64
	)
	in.Init(nil)
	in.Add(key, value)
	switch {
	case in.Parse("fan_tray.duty %f", &duty):
		if duty < 0 || duty > 100 {
			return fmt.Errorf("fan_tray.duty must be between 0 and 100")
		}
		var err error
		for _, f := range plat.fans {
			// One write reaches the shared CPLD register.
			if err = f.SetSpeedPercent(int(duty)); err == nil {
				plat.poller.publish("fan_tray.duty.units.pct",
					int(duty))
				return nil
			}
		}
		if err == nil {
			err = fmt.Errorf("no fan trays")
		}
		return err
	case in.Parse("pollInterval %f", &itv):
		if itv < 1 {
			return fmt.Errorf("pollInterval must be 1 second or longer")
		}
		plat.poller.setPollInterval(itv)
		plat.poller.publish("pollInterval", itv)
		return nil
	}
	return fmt.Errorf("can't set %s to %v", key, value)
}
