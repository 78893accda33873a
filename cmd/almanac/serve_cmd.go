// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"cloudeng.io/datetime"
	"cloudeng.io/errors"
	"cloudeng.io/sync/errgroup"
	"github.com/almagest/planetary/cmd/almanac/internal/webapi"
	"github.com/almagest/planetary/hours"
	"github.com/almagest/planetary/internal/record"
)

type ServeFlags struct {
	LocationFlags
	HTTPAddr string `subcmd:"http-addr,127.0.0.1:8080,http address to listen on"`
	Recent   int    `subcmd:"recent,100,number of completed queries to retain"`
}

type ServeCmd struct{}

func (s *ServeCmd) Serve(ctx context.Context, flags any, args []string) error {
	fv := flags.(*ServeFlags)
	loc, err := resolveLocation(ctx, fv.LocationFlags)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	eng := hours.New(hours.WithLogger(logger))
	rec := record.NewRecorder(fv.Recent)

	tm := tableManager{}
	pageGen := func(ctx context.Context, place datetime.Place, date datetime.CalendarDate) (string, error) {
		hrs, err := eng.ComputeDay(ctx, place, date, time.Now())
		if err != nil {
			return "", err
		}
		ploc := loc
		ploc.Place = place
		return tm.RenderHTML(tm.Hours(date, ploc, hrs)), nil
	}

	mux := http.NewServeMux()
	srv := webapi.NewServer(logger, eng, loc, rec, pageGen)
	srv.AppendEndpoints(ctx, mux)

	server := &http.Server{
		Addr:              fv.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "addr", fv.HTTPAddr,
		"tz", loc.TimeLocation.String(), "latitude", loc.Latitude, "longitude", loc.Longitude)
	var g errgroup.T
	g.Go(func() error {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var errs errors.M
		errs.Append(server.Shutdown(sctx))
		errs.Append(ctx.Err())
		return errs.Err()
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("web server stopped: %w", err)
	}
	return nil
}
