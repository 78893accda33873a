// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package hours computes planetary hours: the twelve unequal day hours
// between sunrise and sunset and the twelve unequal night hours between
// sunset and the next sunrise, each ruled by one of the seven classical
// planets in Chaldean order.
package hours

import (
	"fmt"
	"strings"
	"time"
)

// Planet identifies one of the seven classical planets. The constants
// are declared in Chaldean order so that int(p) is also p's position in
// ChaldeanOrder.
type Planet int

const (
	Saturn Planet = iota
	Jupiter
	Mars
	Sun
	Venus
	Mercury
	Moon
)

var planetNames = [...]string{"Saturn", "Jupiter", "Mars", "Sun", "Venus", "Mercury", "Moon"}

func (p Planet) String() string {
	if p < Saturn || p > Moon {
		return fmt.Sprintf("Planet(%d)", int(p))
	}
	return planetNames[p]
}

// ParsePlanet parses a planet name, ignoring case.
func ParsePlanet(val string) (Planet, error) {
	for i, name := range planetNames {
		if strings.EqualFold(val, name) {
			return Planet(i), nil
		}
	}
	return Planet(0), fmt.Errorf("unknown planet: %q", val)
}

// ChaldeanOrder is the traditional planet sequence used to assign rulers
// to successive hours, slowest to fastest.
var ChaldeanOrder = [7]Planet{Saturn, Jupiter, Mars, Sun, Venus, Mercury, Moon}

// dayRulers is indexed by time.Weekday, ie. Sunday is 0.
var dayRulers = [7]Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// DayRuler returns the planet that governs the supplied day of the week
// and hence rules that day's first planetary hour.
func DayRuler(day time.Weekday) Planet {
	return dayRulers[day]
}

// planetForHour returns the ruler of the planetary hour with the given
// 1-based index on a day governed by ruler. Hour 1 is ruled by the day
// ruler and subsequent hours cycle through ChaldeanOrder, so hours 8, 15
// and 22 land on the day ruler again.
func planetForHour(ruler Planet, index int) Planet {
	return ChaldeanOrder[(int(ruler)+index-1)%7]
}

// Period distinguishes the sunrise-to-sunset hours from the
// sunset-to-sunrise hours.
type Period int

const (
	DayPeriod Period = iota
	NightPeriod
)

func (p Period) String() string {
	if p == DayPeriod {
		return "day"
	}
	return "night"
}

// Hour is a single planetary hour. Start and End are zone-aware and the
// interval is half-open: an instant equal to End belongs to the next
// hour, never to this one.
type Hour struct {
	Index   int    // 1..24, day hours are 1..12, night hours 13..24
	Planet  Planet // the hour's ruler
	Period  Period
	Start   time.Time
	End     time.Time
	Current bool // true if the reference instant falls within [Start, End)
}

// Contains implements the half-open interval rule for t.
func (h Hour) Contains(t time.Time) bool {
	return !t.Before(h.Start) && t.Before(h.End)
}

func (h Hour) String() string {
	return fmt.Sprintf("%02d: %v %v..%v (%v)", h.Index, h.Planet,
		h.Start.Format(time.TimeOnly), h.End.Format(time.TimeOnly), h.Period)
}
