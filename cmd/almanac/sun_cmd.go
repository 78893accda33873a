// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloudeng.io/datetime"
	"cloudeng.io/geospatial/astronomy"
)

type SunCmd struct {
	out io.Writer
}

type SeasonsFlags struct {
	Year int `subcmd:"year,,year to print the seasons for, defaults to the current year"`
}

// seasons are evaluated per year; the solstice/equinox entries are
// single-day ranges.
var seasons = []datetime.DynamicDateRange{
	astronomy.Spring{},
	astronomy.Summer{},
	astronomy.Autumn{},
	astronomy.Winter{},
	astronomy.SpringEquinox{},
	astronomy.SummerSolstice{},
	astronomy.AutumnEquinox{},
	astronomy.WinterSolstice{},
}

func (s *SunCmd) Times(ctx context.Context, flags any, args []string) error {
	fv := flags.(*HoursFlags)
	loc, err := resolveLocation(ctx, fv.LocationFlags)
	if err != nil {
		return err
	}
	date, err := resolveDate(fv.Date, loc)
	if err != nil {
		return err
	}
	rise, set := astronomy.SunRiseAndSet(date, loc.Place)
	noon := astronomy.ApparentSolarNoon(date, loc.Place)
	tm := tableManager{}
	fmt.Fprintln(s.out, tm.SunTimes(date, loc, rise, set, noon).Render())
	return nil
}

func (s *SunCmd) Seasons(ctx context.Context, flags any, args []string) error {
	fv := flags.(*SeasonsFlags)
	year := fv.Year
	if year == 0 {
		year = time.Now().Year()
	}
	tm := tableManager{}
	fmt.Fprintln(s.out, tm.Seasons(year, seasons).Render())
	return nil
}
