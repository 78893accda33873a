// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/almagest/planetary/hours"
)

type HoursCmd struct {
	out io.Writer
}

func (h *HoursCmd) Day(ctx context.Context, flags any, args []string) error {
	fv := flags.(*HoursFlags)
	loc, err := resolveLocation(ctx, fv.LocationFlags)
	if err != nil {
		return err
	}
	date, err := resolveDate(fv.Date, loc)
	if err != nil {
		return err
	}
	eng := hours.New(hours.WithLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil))))
	hrs, err := eng.ComputeDay(ctx, loc.Place, date, time.Now())
	if err != nil {
		return err
	}
	tm := tableManager{}
	fmt.Fprintln(h.out, tm.Hours(date, loc, hrs).Render())
	return nil
}

func (h *HoursCmd) Current(ctx context.Context, flags any, args []string) error {
	fv := flags.(*LocationFlags)
	loc, err := resolveLocation(ctx, *fv)
	if err != nil {
		return err
	}
	eng := hours.New(hours.WithLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil))))
	hr, err := eng.FindCurrent(ctx, loc.Place, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "%v\n", hr)
	return nil
}
