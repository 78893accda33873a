// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hours

import (
	"context"
	"time"

	"cloudeng.io/datetime"
	"github.com/nathan-osman/go-sunrise"
)

// SolarTimes provides sunrise and sunset for a calendar date at a place.
// Implementations may be local arithmetic or a remote lookup, hence the
// context. Both returned times are in the place's time location and an
// implementation must return a NoSolarEventError when the sun does not
// rise or set on the given date.
type SolarTimes interface {
	RiseAndSet(ctx context.Context, date datetime.CalendarDate, place datetime.Place) (rise, set time.Time, err error)
}

// Astronomical is the production SolarTimes implementation, backed by the
// NOAA sunrise equation as implemented by github.com/nathan-osman/go-sunrise.
type Astronomical struct{}

func (Astronomical) RiseAndSet(_ context.Context, date datetime.CalendarDate, place datetime.Place) (time.Time, time.Time, error) {
	rise, set := sunrise.SunriseSunset(
		place.Latitude, place.Longitude,
		date.Year(), time.Month(date.Month()), date.Day())
	if rise.IsZero() || set.IsZero() {
		// Polar day or polar night.
		return time.Time{}, time.Time{}, &NoSolarEventError{
			Date:      date,
			Latitude:  place.Latitude,
			Longitude: place.Longitude,
		}
	}
	return rise.In(place.TimeLocation), set.In(place.TimeLocation), nil
}
