// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"net/rpc"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/platinasystems/atsock"
	"github.com/platinasystems/log"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"

	"github.com/acctonsystems/platform-as4630/internal/environ"
	"github.com/acctonsystems/platform-as4630/internal/environ/component"
	"github.com/acctonsystems/platform-as4630/internal/environ/fan"
	"github.com/acctonsystems/platform-as4630/internal/environ/psu"
	"github.com/acctonsystems/platform-as4630/internal/environ/thermal"
)

const chanDepth = 1 << 16

const (
	nFanTrays = 3
	nPsus     = 2
	nThermals = 3
)

type Platform struct {
	cfg    *Config
	pub    *publisher.Publisher
	poller *telemetryPoller
	pubch  chan string

	fans       []environ.Fan
	psus       []environ.Psu
	psuFans    []environ.Fan
	thermals   []environ.Thermal
	components []environ.Component
}

func platformMain() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	redis.DefaultHash = cfg.RedisHash

	if err = redis.IsReady(); err != nil {
		return err
	}

	plat := &Platform{
		cfg:   cfg,
		pubch: make(chan string, chanDepth),
	}
	plat.inventory()
	plat.poller = newTelemetryPoller(plat, cfg.PollInterval)

	if plat.pub, err = publisher.New(); err != nil {
		return err
	}
	defer plat.pub.Close()
	defer close(plat.pubch)
	go plat.gopublish()

	rpc.Register(plat)

	sock, err := atsock.NewRpcServer("platformd")
	if err != nil {
		return err
	}
	defer sock.Close()

	err = redis.Assign(redis.DefaultHash+":platform.", "platformd",
		"Platform")
	if err != nil {
		return err
	}

	plat.pubch <- fmt.Sprint("poll.max-channel-depth: ", chanDepth)
	plat.pubch <- fmt.Sprint("pollInterval: ", cfg.PollInterval)
	plat.pubch <- "ready: true"
	log.Print("platformd: ready")

	signal.Notify(make(chan os.Signal, 1), syscall.SIGPIPE)

	stop := make(chan struct{})
	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGTERM)
	defer close(sigterm)
	go func() {
		for sig := range sigterm {
			if sig == syscall.SIGTERM {
				close(stop)
				return
			}
		}
	}()

	plat.poller.run(stop)
	log.Print("platformd: stopped")
	return nil
}

// inventory builds the fixed device set of the AS4630-54PE: two firmware
// components, three fan trays, two supplies each with an internal fan,
// and three board thermals.
func (plat *Platform) inventory() {
	root := plat.cfg.SysfsRoot
	plat.components = []environ.Component{
		component.NewCpld(root),
		component.NewBios(root),
	}
	for i := 1; i <= nFanTrays; i++ {
		plat.fans = append(plat.fans, fan.NewTray(root, i))
	}
	for i := 1; i <= nPsus; i++ {
		plat.psus = append(plat.psus, psu.New(root, i))
		plat.psuFans = append(plat.psuFans, fan.NewPsuFan(root, i))
	}
	for i := 1; i <= nThermals; i++ {
		plat.thermals = append(plat.thermals, thermal.New(root, i))
	}
}

func (plat *Platform) Hset(args args.Hset, reply *reply.Hset) error {
	field := strings.TrimPrefix(args.Field, "platform.")
	err := plat.set(field, string(args.Value))
	if err == nil {
		*reply = 1
	}
	return err
}

func (plat *Platform) gopublish() {
	for s := range plat.pubch {
		plat.pub.Print("platform.", s)
	}
}
