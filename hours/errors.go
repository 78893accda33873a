// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package hours

import (
	"errors"
	"fmt"
	"math"

	"cloudeng.io/datetime"
)

// ErrNotFound is returned by FindCurrent when no planetary hour contains
// the reference instant within the one-day search window either side of
// its calendar date.
var ErrNotFound = errors.New("no planetary hour found")

// InvalidCoordinateError indicates a latitude or longitude that is
// non-finite or outside the valid range. Coordinates are rejected rather
// than substituted with a default since a silent fallback to the equator
// produces plausible but wrong hours.
type InvalidCoordinateError struct {
	Latitude  float64
	Longitude float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinates: latitude %v, longitude %v", e.Latitude, e.Longitude)
}

// NoSolarEventError indicates that no sunrise/sunset exists for the
// requested location and date, ie. polar day or polar night.
type NoSolarEventError struct {
	Date      datetime.CalendarDate
	Latitude  float64
	Longitude float64
}

func (e *NoSolarEventError) Error() string {
	return fmt.Sprintf("no sunrise/sunset for %v at latitude %v, longitude %v", e.Date, e.Latitude, e.Longitude)
}

func validCoordinate(v, bound float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -bound && v <= bound
}

// ValidateCoordinates returns an InvalidCoordinateError if the supplied
// latitude is outside [-90, 90], the longitude is outside [-180, 180] or
// either is non-finite.
func ValidateCoordinates(latitude, longitude float64) error {
	if !validCoordinate(latitude, 90) || !validCoordinate(longitude, 180) {
		return &InvalidCoordinateError{Latitude: latitude, Longitude: longitude}
	}
	return nil
}
