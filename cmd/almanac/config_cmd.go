// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type ConfigCmd struct {
	out io.Writer
}

func (c *ConfigCmd) Display(ctx context.Context, flags any, args []string) error {
	fv := flags.(*LocationFlags)
	loc, err := resolveLocation(ctx, *fv)
	if err != nil {
		return err
	}
	display := struct {
		TimeZone  string  `yaml:"time_zone"`
		ZIPCode   string  `yaml:"zip_code,omitempty"`
		Latitude  float64 `yaml:"latitude"`
		Longitude float64 `yaml:"longitude"`
	}{
		TimeZone:  loc.TimeLocation.String(),
		ZIPCode:   loc.ZIPCode,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	p, err := yaml.Marshal(display)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s", p)
	return nil
}
