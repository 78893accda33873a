// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/datetime"
	"github.com/almagest/planetary/location"
)

// LocationFlags identify the observer location, either from a
// configuration file or directly from the command line; command line
// values override the file.
type LocationFlags struct {
	ConfigFile string  `subcmd:"config,,path/URI to a location configuration file"`
	TZ         string  `subcmd:"tz,,timezone of the location in time.Location format"`
	ZIPCode    string  `subcmd:"zip,,zip code of the location"`
	Latitude   float64 `subcmd:"lat,,latitude of the location"`
	Longitude  float64 `subcmd:"long,,longitude of the location"`
}

type HoursFlags struct {
	LocationFlags
	Date string `subcmd:"date,,date in <month>/<day>/<year> format, defaults to today"`
}

func resolveLocation(ctx context.Context, fv LocationFlags) (location.Location, error) {
	opts := []location.Option{}
	if fv.TZ != "" {
		tz, err := time.LoadLocation(fv.TZ)
		if err != nil {
			return location.Location{}, fmt.Errorf("invalid timezone: %q: %v", fv.TZ, err)
		}
		opts = append(opts, location.WithTimeLocation(tz))
	}
	if fv.Latitude != 0 || fv.Longitude != 0 {
		opts = append(opts, location.WithLatLong(fv.Latitude, fv.Longitude))
	}
	if fv.ZIPCode != "" {
		opts = append(opts, location.WithZIPCode(fv.ZIPCode))
	}
	if fv.ConfigFile != "" {
		return location.ParseConfigFile(ctx, fv.ConfigFile, opts...)
	}
	return location.New(location.Config{}, opts...)
}

// resolveDate returns today in the location's timezone unless a date
// was supplied.
func resolveDate(val string, loc location.Location) (datetime.CalendarDate, error) {
	date := datetime.CalendarDateFromTime(time.Now().In(loc.TimeLocation))
	if val == "" {
		return date, nil
	}
	if err := date.Parse(val); err != nil {
		return date, err
	}
	return date, nil
}
