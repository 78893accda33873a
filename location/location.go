// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package location loads and validates the observer location (timezone,
// coordinates, optional ZIP/postal code) that planetary hour
// computations are evaluated for.
package location

import (
	"context"
	"time"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/datetime"
	"github.com/almagest/planetary/hours"
	"gopkg.in/yaml.v3"
)

func locationFromValue(value string) (*time.Location, error) {
	if len(value) == 0 {
		return time.Now().Location(), nil
	}
	location, err := time.LoadLocation(value)
	if err != nil {
		return nil, err
	}
	return location, nil
}

type TimeZone struct {
	*time.Location
}

func (tz *TimeZone) UnmarshalYAML(node *yaml.Node) error {
	l, err := locationFromValue(node.Value)
	if err != nil {
		return err
	}
	tz.Location = l
	return nil
}

// Config is the on-disk form of a location.
type Config struct {
	TZ        *TimeZone `yaml:"time_zone" cmd:"the timezone for the location in time.Location format"`
	ZIPCode   string    `yaml:"zip_code" cmd:"the zip/postal code for the location"`
	Latitude  float64   `yaml:"latitude" cmd:"the latitude for the location"`
	Longitude float64   `yaml:"longitude" cmd:"the longitude for the location"`
}

// Location is a resolved observer location.
type Location struct {
	datetime.Place
	ZIPCode string
}

// ZIPCodeLookup resolves a ZIP/postal code to a latitude and longitude.
type ZIPCodeLookup interface {
	Lookup(zip string) (float64, float64, error)
}

type Option func(o *options)

type options struct {
	tz            *time.Location
	latitude      float64
	longitude     float64
	zipCode       string
	zipCodeLookup ZIPCodeLookup
}

// WithTimeLocation overrides the timezone specified in the configuration.
func WithTimeLocation(tz *time.Location) Option {
	return func(o *options) {
		o.tz = tz
	}
}

// WithLatLong overrides the coordinates specified in the configuration.
func WithLatLong(lat, long float64) Option {
	return func(o *options) {
		o.latitude = lat
		o.longitude = long
	}
}

// WithZIPCode overrides the ZIP code specified in the configuration.
func WithZIPCode(zip string) Option {
	return func(o *options) {
		o.zipCode = zip
	}
}

// WithZIPCodeLookup enables resolving a ZIP code to coordinates when the
// configuration provides no explicit latitude/longitude.
func WithZIPCodeLookup(l ZIPCodeLookup) Option {
	return func(o *options) {
		o.zipCodeLookup = l
	}
}

// New builds a Location from the supplied configuration. Options
// override the corresponding configuration values. If no timezone is
// specified the process local timezone is used. The resulting
// coordinates are validated and rejected when out of range or
// non-finite; a location is never silently substituted.
func New(cfg Config, opts ...Option) (Location, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	loc := Location{
		Place: datetime.Place{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
		},
		ZIPCode: cfg.ZIPCode,
	}
	if cfg.TZ != nil {
		loc.TimeLocation = cfg.TZ.Location
	}
	if o.tz != nil {
		loc.TimeLocation = o.tz
	}
	if loc.TimeLocation == nil {
		tz, err := time.LoadLocation("Local")
		if err != nil {
			return Location{}, err
		}
		loc.TimeLocation = tz
	}
	if o.latitude != 0 || o.longitude != 0 {
		loc.Latitude = o.latitude
		loc.Longitude = o.longitude
	}
	if o.zipCode != "" {
		loc.ZIPCode = o.zipCode
	}
	if loc.ZIPCode != "" && loc.Latitude == 0 && loc.Longitude == 0 && o.zipCodeLookup != nil {
		lat, long, err := o.zipCodeLookup.Lookup(loc.ZIPCode)
		if err != nil {
			return Location{}, err
		}
		loc.Latitude = lat
		loc.Longitude = long
	}
	if err := hours.ValidateCoordinates(loc.Latitude, loc.Longitude); err != nil {
		return Location{}, err
	}
	return loc, nil
}

// ParseConfigFile reads a location configuration from the supplied
// file or URI and resolves it as per New.
func ParseConfigFile(ctx context.Context, cfgFile string, opts ...Option) (Location, error) {
	var cfg Config
	if err := cmdyaml.ParseConfigFile(ctx, cfgFile, &cfg); err != nil {
		return Location{}, err
	}
	return New(cfg, opts...)
}

// ParseConfig parses the supplied configuration data and resolves it as
// per New.
func ParseConfig(cfgData []byte, opts ...Option) (Location, error) {
	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return Location{}, err
	}
	return New(cfg, opts...)
}
