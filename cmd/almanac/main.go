// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
)

const cmdSpec = `name: almanac
summary: almanac computes planetary hours and related solar events for a location
commands:
  - name: hours
    summary: compute the planetary hours for a location and date
    commands:
      - name: day
        summary: print the 24 planetary hours for a date
      - name: current
        summary: print the planetary hour containing the current instant
  - name: sun
    summary: solar events for a location
    commands:
      - name: times
        summary: print sunrise, sunset and apparent solar noon for a date
      - name: seasons
        summary: print the seasons, solstices and equinoxes for a year
  - name: config
    summary: query/inspect the location configuration
    commands:
      - name: display
  - name: serve
    summary: run a web server that serves planetary hours and a log of recent queries
  - name: log
    summary: query/inspect the web server's query log
    commands:
      - name: status
        arguments:
          - "[log-file]"
`

func cli() *subcmd.CommandSetYAML {
	cmd := subcmd.MustFromYAML(cmdSpec)

	hrs := &HoursCmd{out: os.Stdout}
	cmd.Set("hours", "day").MustRunner(hrs.Day, &HoursFlags{})
	cmd.Set("hours", "current").MustRunner(hrs.Current, &LocationFlags{})

	sun := &SunCmd{out: os.Stdout}
	cmd.Set("sun", "times").MustRunner(sun.Times, &HoursFlags{})
	cmd.Set("sun", "seasons").MustRunner(sun.Seasons, &SeasonsFlags{})

	config := &ConfigCmd{out: os.Stdout}
	cmd.Set("config", "display").MustRunner(config.Display, &LocationFlags{})

	serve := &ServeCmd{}
	cmd.Set("serve").MustRunner(serve.Serve, &ServeFlags{})

	lg := &LogCmd{out: os.Stdout}
	cmd.Set("log", "status").MustRunner(lg.Status, &LogStatusFlags{})
	return cmd
}

var errInterrupt = errors.New("interrupt")

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancelCause(ctx)
	cmdutil.HandleSignals(func() { cancel(errInterrupt) }, os.Interrupt)
	err := cli().Dispatch(ctx)
	if context.Cause(ctx) == errInterrupt {
		cmdutil.Exit("%v", errInterrupt)
	}
	if err != nil {
		cmdutil.Exit("%v", err)
	}
}
