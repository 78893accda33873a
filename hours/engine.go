// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hours

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"cloudeng.io/datetime"
)

// Engine computes the planetary hours for a date, location and timezone.
// Every computation is independent and deterministic for identical
// inputs; the reference instant used to flag the current hour is always
// supplied by the caller, never read from a wall clock.
type Engine struct {
	options
}

type Option func(o *options)

type options struct {
	solar  SolarTimes
	logger *slog.Logger
}

// WithSolarTimes sets the sunrise/sunset provider and is primarily
// intended for testing purposes. The default is Astronomical.
func WithSolarTimes(s SolarTimes) Option {
	return func(o *options) {
		o.solar = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a new engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(&e.options)
	}
	if e.solar == nil {
		e.solar = Astronomical{}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	e.logger = e.logger.With("mod", "hours")
	return e
}

// ComputeDay returns the 24 planetary hours for the solar day that
// starts at sunrise on date at place: hours 1..12 divide sunrise to
// sunset into twelve equal parts and hours 13..24 divide sunset to the
// next day's sunrise likewise. The hour containing ref is flagged as
// current, but only when ref's calendar date in place's time location is
// date, so that browsing another day never shows a current hour.
//
// Coordinates are validated first and an InvalidCoordinateError returned
// for out of range or non-finite values. A NoSolarEventError from the
// provider (polar day/night) is returned as is, never retried or papered
// over with fabricated times.
func (e *Engine) ComputeDay(ctx context.Context, place datetime.Place, date datetime.CalendarDate, ref time.Time) ([]Hour, error) {
	if err := ValidateCoordinates(place.Latitude, place.Longitude); err != nil {
		return nil, err
	}
	rise, set, err := e.solar.RiseAndSet(ctx, date, place)
	if err != nil {
		e.logger.Warn("no solar events", "date", date.String(), "err", err)
		return nil, err
	}
	nextRise, _, err := e.solar.RiseAndSet(ctx, date.Tomorrow(), place)
	if err != nil {
		e.logger.Warn("no solar events", "date", date.Tomorrow().String(), "err", err)
		return nil, err
	}
	if !set.After(rise) || !nextRise.After(set) {
		return nil, &NoSolarEventError{Date: date, Latitude: place.Latitude, Longitude: place.Longitude}
	}

	ruler := DayRuler(weekdayOf(date, place.TimeLocation))
	gate := datetime.CalendarDateFromTime(ref.In(place.TimeLocation)) == date

	hrs := make([]Hour, 0, 24)
	hrs = append(hrs, partition(rise, set, DayPeriod, 1, ruler)...)
	hrs = append(hrs, partition(set, nextRise, NightPeriod, 13, ruler)...)
	if gate {
		for i, h := range hrs {
			hrs[i].Current = h.Contains(ref)
		}
	}
	return hrs, nil
}

// partition splits [from, to) into twelve equal half-open intervals.
// Each seam is computed independently from the anchor rather than
// accumulated hour to hour, and the final interval ends exactly at to.
func partition(from, to time.Time, period Period, first int, ruler Planet) []Hour {
	span := to.Sub(from)
	hrs := make([]Hour, 12)
	for i := range hrs {
		end := to
		if i < 11 {
			end = from.Add(span * time.Duration(i+1) / 12)
		}
		index := first + i
		hrs[i] = Hour{
			Index:  index,
			Planet: planetForHour(ruler, index),
			Period: period,
			Start:  from.Add(span * time.Duration(i) / 12),
			End:    end,
		}
	}
	return hrs
}

// weekdayOf evaluates the weekday at local noon to stay clear of any
// midnight timezone transitions.
func weekdayOf(date datetime.CalendarDate, loc *time.Location) time.Weekday {
	return time.Date(date.Year(), time.Month(date.Month()), date.Day(), 12, 0, 0, 0, loc).Weekday()
}

// FindCurrent returns the planetary hour containing ref at place. The
// solar day containing an instant need not be the instant's calendar
// day, eg. between midnight and sunrise, so when ref falls outside the
// hours computed for its own date the adjacent date is consulted, one
// day backward or forward only. A NoSolarEventError on an adjacent date
// simply ends the search in that direction; ErrNotFound is returned when
// no containing hour exists within the window.
func (e *Engine) FindCurrent(ctx context.Context, place datetime.Place, ref time.Time) (Hour, error) {
	date := datetime.CalendarDateFromTime(ref.In(place.TimeLocation))
	hrs, err := e.ComputeDay(ctx, place, date, ref)
	if err != nil {
		return Hour{}, err
	}
	if h, ok := containing(hrs, ref); ok {
		return h, nil
	}
	adjacent := date.Tomorrow()
	if ref.Before(hrs[0].Start) {
		adjacent = date.Yesterday()
	}
	hrs, err = e.ComputeDay(ctx, place, adjacent, ref)
	if err != nil {
		var nse *NoSolarEventError
		if errors.As(err, &nse) {
			return Hour{}, ErrNotFound
		}
		return Hour{}, err
	}
	if h, ok := containing(hrs, ref); ok {
		return h, nil
	}
	return Hour{}, ErrNotFound
}

// containing returns the hour whose interval contains ref with its
// Current flag set: for FindCurrent the reference instant defines
// currency regardless of which calendar date the hour was computed for.
func containing(hrs []Hour, ref time.Time) (Hour, bool) {
	for _, h := range hrs {
		if h.Contains(ref) {
			h.Current = true
			return h, true
		}
	}
	return Hour{}, false
}
