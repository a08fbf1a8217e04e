// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/platinasystems/log"
)

type telemetryPoller struct {
	plat     *Platform
	sequence uint

	mu           sync.Mutex
	pollInterval float64 // in seconds
	lastValues   map[string]string
}

func newTelemetryPoller(plat *Platform, interval float64) *telemetryPoller {
	return &telemetryPoller{
		plat:         plat,
		pollInterval: interval,
		lastValues:   make(map[string]string),
	}
}

func (p *telemetryPoller) String() string {
	return fmt.Sprintf("telemetry poller sequence %d", p.sequence)
}

func (p *telemetryPoller) setPollInterval(itv float64) {
	p.mu.Lock()
	p.pollInterval = itv
	p.mu.Unlock()
}

func (p *telemetryPoller) interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.pollInterval * float64(time.Second))
}

// update records the latest value for a key and says whether it must go
// out. Every key publishes on its first sighting so the redis hash holds a
// complete snapshot; after that only changes are published.
func (p *telemetryPoller) update(key, value string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.lastValues[key]; ok && v == value {
		return false
	}
	p.lastValues[key] = value
	return true
}

func (p *telemetryPoller) publish(key string, value interface{}) {
	s := fmt.Sprint(value)
	if p.update(key, s) {
		p.plat.pubch <- key + ": " + s
	}
}

func (p *telemetryPoller) publishFloat(key string, read func() (float64, error), prec int) {
	v, err := read()
	if err != nil {
		log.Printf("%s: %v", key, err)
		return
	}
	p.publish(key, strconv.FormatFloat(v, 'f', prec, 64))
}

func (p *telemetryPoller) run(stop <-chan struct{}) {
	p.poll()
	for {
		t := time.NewTimer(p.interval())
		select {
		case <-stop:
			t.Stop()
			return
		case <-t.C:
			p.poll()
		}
	}
}

func (p *telemetryPoller) poll() {
	start := time.Now()
	p.plat.pubch <- fmt.Sprint("poll.start.time: ",
		start.Format(time.StampMilli))

	p.pollComponents()
	p.pollFans()
	p.pollPsus()
	p.pollThermals()

	p.plat.pubch <- fmt.Sprint("poll.stop.time: ",
		time.Now().Format(time.StampMilli))
	p.sequence++
}

func (p *telemetryPoller) pollComponents() {
	for _, c := range p.plat.components {
		v, err := c.FirmwareVersion()
		if err != nil {
			log.Printf("%s: firmware version: %v", c.Name(), err)
			continue
		}
		p.publish(strings.ToLower(c.Name())+".version", v)
	}
}

func (p *telemetryPoller) pollFans() {
	for i, f := range p.plat.fans {
		key := fmt.Sprint("fan_tray.", i+1)
		present, err := f.Present()
		if err != nil {
			log.Printf("%s: presence: %v", f.Name(), err)
			continue
		}
		if !present {
			p.publish(key+".status", "not installed")
			continue
		}
		p.publish(key+".status", "ok")
		dir, err := f.Direction()
		if err != nil {
			log.Printf("%s: direction: %v", f.Name(), err)
			continue
		}
		p.publish(key+".direction", dir)
	}
	// The trays share one duty cycle register; report it from the
	// first installed tray.
	for _, f := range p.plat.fans {
		present, err := f.Present()
		if err != nil || !present {
			continue
		}
		duty, err := f.SpeedPercent()
		if err != nil {
			log.Printf("%s: speed: %v", f.Name(), err)
			break
		}
		p.publish("fan_tray.duty.units.pct", duty)
		break
	}
}

func (p *telemetryPoller) pollPsus() {
	for i, s := range p.plat.psus {
		key := fmt.Sprint("psu.", i+1)
		present, err := s.Present()
		if err != nil {
			log.Printf("%s: presence: %v", s.Name(), err)
			continue
		}
		if !present {
			p.publish(key+".status", "not installed")
			continue
		}
		p.publish(key+".status", "ok")
		if good, err := s.PowerGood(); err == nil {
			p.publish(key+".powergood", good)
		} else {
			log.Printf("%s: power good: %v", s.Name(), err)
		}
		p.publishFloat(key+".v_out.units.V", s.VoltageOut, 2)
		p.publishFloat(key+".i_out.units.A", s.CurrentOut, 2)
		p.publishFloat(key+".p_out.units.W", s.PowerOut, 2)
		p.publishFloat(key+".temp.units.C", s.Temperature, 3)
		p.publishFloat(key+".v_out.max.units.V", s.VoltageOutMax, 2)
		p.publishFloat(key+".v_out.min.units.V", s.VoltageOutMin, 2)
		fan := p.plat.psuFans[i]
		if pct, err := fan.SpeedPercent(); err == nil {
			p.publish(key+".fan.speed.units.pct", pct)
		} else {
			log.Printf("%s: speed: %v", fan.Name(), err)
		}
	}
}

func (p *telemetryPoller) pollThermals() {
	for i, t := range p.plat.thermals {
		key := fmt.Sprint("temp.", i+1)
		present, err := t.Present()
		if err != nil {
			log.Printf("%s: presence: %v", t.Name(), err)
			continue
		}
		if !present {
			p.publish(key+".status", "not installed")
			continue
		}
		if ok, err := t.Status(); err == nil {
			if ok {
				p.publish(key+".status", "ok")
			} else {
				p.publish(key+".status", "fault")
			}
		} else {
			log.Printf("%s: status: %v", t.Name(), err)
		}
		p.publishFloat(key+".units.C", t.Temperature, 3)
		p.publishFloat(key+".max.units.C", t.HighThreshold, 3)
	}
}
