// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"strings"
	"testing"

	"github.com/acctonsystems/platform-as4630/internal/environ"
)

type fakeFan struct {
	present bool
	dir     environ.Direction
	pct     int
	setErr  error
	lastSet int
}

func (f *fakeFan) Name() string                          { return "fake fan" }
func (f *fakeFan) Present() (bool, error)                { return f.present, nil }
func (f *fakeFan) Status() (bool, error)                 { return f.present, nil }
func (f *fakeFan) Direction() (environ.Direction, error) { return f.dir, nil }
func (f *fakeFan) SpeedPercent() (int, error)            { return f.pct, nil }
func (f *fakeFan) SetSpeedPercent(pct int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.lastSet = pct
	return nil
}

type fakePsu struct {
	present bool
	good    bool
	vout    float64
}

func (p *fakePsu) Name() string                    { return "fake psu" }
func (p *fakePsu) Present() (bool, error)          { return p.present, nil }
func (p *fakePsu) Status() (bool, error)           { return p.good, nil }
func (p *fakePsu) PowerGood() (bool, error)        { return p.good, nil }
func (p *fakePsu) VoltageOut() (float64, error)    { return p.vout, nil }
func (p *fakePsu) CurrentOut() (float64, error)    { return 5.5, nil }
func (p *fakePsu) PowerOut() (float64, error)      { return 66.55, nil }
func (p *fakePsu) Temperature() (float64, error)   { return 30.125, nil }
func (p *fakePsu) VoltageOutMax() (float64, error) { return 13.2, nil }
func (p *fakePsu) VoltageOutMin() (float64, error) { return 11, nil }

type fakeThermal struct {
	degC float64
}

func (s *fakeThermal) Name() string                    { return "fake thermal" }
func (s *fakeThermal) Present() (bool, error)          { return true, nil }
func (s *fakeThermal) Status() (bool, error)           { return true, nil }
func (s *fakeThermal) Temperature() (float64, error)   { return s.degC, nil }
func (s *fakeThermal) HighThreshold() (float64, error) { return 80, nil }
func (s *fakeThermal) SetHighThreshold(float64) error {
	return environ.ErrNotSupported
}

type fakeComponent struct {
	name    string
	version string
}

func (c *fakeComponent) Name() string                     { return c.name }
func (c *fakeComponent) Description() string              { return c.name }
func (c *fakeComponent) FirmwareVersion() (string, error) { return c.version, nil }

func newTestPlatform() *Platform {
	plat := &Platform{
		cfg:   &Config{SysfsRoot: "/nonexistent", PollInterval: 5},
		pubch: make(chan string, 1024),
	}
	plat.poller = newTelemetryPoller(plat, 5)
	return plat
}

func drain(plat *Platform) []string {
	var out []string
	for {
		select {
		case s := <-plat.pubch:
			out = append(out, s)
		default:
			return out
		}
	}
}

func count(msgs []string, prefix string) int {
	n := 0
	for _, s := range msgs {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

func TestPollPublishesOnlyChanges(t *testing.T) {
	plat := newTestPlatform()
	thermal := &fakeThermal{degC: 30.125}
	plat.thermals = []environ.Thermal{thermal}
	plat.components = []environ.Component{
		&fakeComponent{name: "CPLD", version: "20"},
	}

	plat.poller.poll()
	first := drain(plat)
	if count(first, "cpld.version: 20") != 1 {
		t.Errorf("first poll must publish versions, got %v", first)
	}
	if count(first, "temp.1.units.C: 30.125") != 1 {
		t.Errorf("first poll must publish temperature, got %v", first)
	}

	// Unchanged values stay quiet on the next sweep.
	plat.poller.poll()
	second := drain(plat)
	if count(second, "cpld.version") != 0 {
		t.Errorf("unchanged version republished: %v", second)
	}
	if count(second, "temp.1.units.C") != 0 {
		t.Errorf("unchanged temperature republished: %v", second)
	}
	if count(second, "poll.start.time") != 1 {
		t.Errorf("missing poll marker: %v", second)
	}

	// A changed value goes out again.
	thermal.degC = 31
	plat.poller.poll()
	third := drain(plat)
	if count(third, "temp.1.units.C: 31.000") != 1 {
		t.Errorf("changed temperature not republished: %v", third)
	}
}

func TestPollFanStatus(t *testing.T) {
	plat := newTestPlatform()
	plat.fans = []environ.Fan{
		&fakeFan{present: true, dir: environ.DirectionExhaust, pct: 38},
		&fakeFan{present: false},
	}
	plat.poller.poll()
	msgs := drain(plat)
	for _, want := range []string{
		"fan_tray.1.status: ok",
		"fan_tray.1.direction: exhaust",
		"fan_tray.2.status: not installed",
		"fan_tray.duty.units.pct: 38",
	} {
		if count(msgs, want) != 1 {
			t.Errorf("missing %q in %v", want, msgs)
		}
	}
}

func TestPollPsu(t *testing.T) {
	plat := newTestPlatform()
	plat.psus = []environ.Psu{
		&fakePsu{present: true, good: true, vout: 12.1},
		&fakePsu{present: false},
	}
	plat.psuFans = []environ.Fan{
		&fakeFan{present: true, pct: 50},
		&fakeFan{present: true, pct: 0},
	}
	plat.poller.poll()
	msgs := drain(plat)
	for _, want := range []string{
		"psu.1.status: ok",
		"psu.1.powergood: true",
		"psu.1.v_out.units.V: 12.10",
		"psu.1.temp.units.C: 30.125",
		"psu.1.fan.speed.units.pct: 50",
		"psu.2.status: not installed",
	} {
		if count(msgs, want) != 1 {
			t.Errorf("missing %q in %v", want, msgs)
		}
	}
	// Nothing else is read from an absent supply.
	if count(msgs, "psu.2.v_out") != 0 {
		t.Errorf("absent psu published telemetry: %v", msgs)
	}
}

func TestSetFanDuty(t *testing.T) {
	plat := newTestPlatform()
	broken := &fakeFan{setErr: environ.ErrNotSupported}
	good := &fakeFan{present: true}
	plat.fans = []environ.Fan{broken, good}

	if err := plat.set("fan_tray.duty", "50"); err != nil {
		t.Fatal(err)
	}
	if good.lastSet != 50 {
		t.Errorf("got %d, want 50", good.lastSet)
	}
	msgs := drain(plat)
	if count(msgs, "fan_tray.duty.units.pct: 50") != 1 {
		t.Errorf("set must publish the new duty, got %v", msgs)
	}

	for _, bad := range []string{"-1", "101", "fast"} {
		if err := plat.set("fan_tray.duty", bad); err == nil {
			t.Errorf("duty %q: expected error", bad)
		}
	}
}

func TestSetPollInterval(t *testing.T) {
	plat := newTestPlatform()
	if err := plat.set("pollInterval", "2"); err != nil {
		t.Fatal(err)
	}
	if got := plat.poller.interval().Seconds(); got != 2 {
		t.Errorf("got %v, want 2", got)
	}
	if err := plat.set("pollInterval", "0.2"); err == nil {
		t.Error("expected error for sub-second interval")
	}
}

func TestSetUnknownField(t *testing.T) {
	plat := newTestPlatform()
	if err := plat.set("temp.1.max", "75"); err == nil {
		t.Error("expected error for read-only field")
	}
}
