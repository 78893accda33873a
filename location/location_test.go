// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package location_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/almagest/planetary/hours"
	"github.com/almagest/planetary/location"
)

const exampleConfig = `
time_zone: America/Denver
latitude: 37.8714
longitude: -109.3425
`

func TestParseConfig(t *testing.T) {
	loc, err := location.ParseConfig([]byte(exampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := loc.TimeLocation.String(), "America/Denver"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := loc.Latitude, 37.8714; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := loc.Longitude, -109.3425; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOptionsOverride(t *testing.T) {
	la, _ := time.LoadLocation("America/Los_Angeles")
	loc, err := location.ParseConfig([]byte(exampleConfig),
		location.WithTimeLocation(la),
		location.WithLatLong(37.3229978, -122.0321823),
	)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := loc.TimeLocation, la; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := loc.Latitude, 37.3229978; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInvalidCoordinatesRejected(t *testing.T) {
	cfg := `
time_zone: UTC
latitude: 99.0
longitude: 0.0
`
	_, err := location.ParseConfig([]byte(cfg))
	var ice *hours.InvalidCoordinateError
	if !errors.As(err, &ice) {
		t.Errorf("got %v, want an InvalidCoordinateError", err)
	}
}

type ziplookup struct{}

func (ziplookup) Lookup(zip string) (float64, float64, error) {
	if zip == "84512" {
		return 37.8714, -109.3425, nil
	}
	return 0, 0, fmt.Errorf("unknown zip code: %v", zip)
}

func TestZIPCodeLookup(t *testing.T) {
	cfg := `
time_zone: America/Denver
zip_code: "84512"
`
	loc, err := location.ParseConfig([]byte(cfg), location.WithZIPCodeLookup(ziplookup{}))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := loc.Latitude, 37.8714; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	_, err = location.ParseConfig([]byte(cfg),
		location.WithZIPCode("00000"), location.WithZIPCodeLookup(ziplookup{}))
	if err == nil {
		t.Errorf("expected an error for an unknown zip code")
	}
}
