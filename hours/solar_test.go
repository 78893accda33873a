// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hours_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/almagest/planetary/hours"
)

func TestAstronomical(t *testing.T) {
	ctx := context.Background()
	loc, _ := time.LoadLocation("America/Los_Angeles")
	place := datetime.Place{
		TimeLocation: loc,
		Latitude:     37.3229978,
		Longitude:    -122.0321823,
	}
	cd := datetime.NewCalendarDate(2024, 1, 1)
	rise, set, err := hours.Astronomical{}.RiseAndSet(ctx, cd, place)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := rise, time.Date(2024, 1, 1, 7, 22, 13, 0, loc); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := set, time.Date(2024, 1, 1, 17, 0, 33, 0, loc); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := rise.Location(), loc; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAstronomicalPolar(t *testing.T) {
	ctx := context.Background()
	loc, _ := time.LoadLocation("Arctic/Longyearbyen")
	place := datetime.Place{
		TimeLocation: loc,
		Latitude:     78.2232,
		Longitude:    15.6267,
	}
	for _, cd := range []datetime.CalendarDate{
		datetime.NewCalendarDate(2024, 6, 21),  // polar day
		datetime.NewCalendarDate(2024, 12, 21), // polar night
	} {
		_, _, err := hours.Astronomical{}.RiseAndSet(ctx, cd, place)
		var nse *hours.NoSolarEventError
		if !errors.As(err, &nse) {
			t.Errorf("%v: got %v, want a NoSolarEventError", cd, err)
			continue
		}
		if got, want := nse.Date, cd; got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
