// Copyright © 2019-2020 Accton Technology Corporation. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"
)

const configPath = "/etc/platformd/as4630.yaml"

const (
	defaultPollInterval = 5
	defaultRedisHash    = "accton-as4630"
)

type Config struct {
	// SysfsRoot replaces /sys, for bench setups with a synthetic tree.
	SysfsRoot    string  `yaml:"sysfsRoot"`
	PollInterval float64 `yaml:"pollInterval"`
	RedisHash    string  `yaml:"redisHash"`
}

// loadConfig reads the optional machine config. A missing file yields the
// defaults; a malformed one is an error.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{
		SysfsRoot:    "/sys",
		PollInterval: defaultPollInterval,
		RedisHash:    defaultRedisHash,
	}
	source, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err = yaml.Unmarshal(source, cfg); err != nil {
		return nil, err
	}
	if cfg.PollInterval < 1 {
		return nil, fmt.Errorf("pollInterval must be 1 second or longer")
	}
	if cfg.RedisHash == "" {
		return nil, fmt.Errorf("redisHash must not be empty")
	}
	return cfg, nil
}
