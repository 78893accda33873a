// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package webapi serves planetary hour computations over HTTP as JSON,
// plus an HTML rendering of the day's hours and the recent query log.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"cloudeng.io/datetime"
	"github.com/almagest/planetary/hours"
	"github.com/almagest/planetary/internal/record"
	"github.com/almagest/planetary/location"
)

// PageGenerator renders the HTML page for a day's hours; supplied by the
// command line tool so that table rendering stays in one place.
type PageGenerator func(ctx context.Context, place datetime.Place, date datetime.CalendarDate) (string, error)

type Server struct {
	l       *slog.Logger
	eng     *hours.Engine
	loc     location.Location
	rec     *record.Recorder
	pageGen PageGenerator
}

func NewServer(l *slog.Logger, eng *hours.Engine, loc location.Location, rec *record.Recorder, pageGen PageGenerator) *Server {
	return &Server{
		l:       l.With("component", "webapi"),
		eng:     eng,
		loc:     loc,
		rec:     rec,
		pageGen: pageGen,
	}
}

type HourResponse struct {
	Index   int    `json:"index"`
	Planet  string `json:"planet"`
	Period  string `json:"period"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type HoursResponse struct {
	Date      string         `json:"date"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	TZ        string         `json:"tz"`
	Hours     []HourResponse `json:"hours"`
}

type QueryResponse struct {
	Op        string  `json:"op"`
	Date      string  `json:"date"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TZ        string  `json:"tz"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

func (s *Server) httpError(ctx context.Context, w http.ResponseWriter, u *url.URL, msg, err string, statusCode int) {
	s.l.Log(ctx, slog.LevelInfo, msg, "request", u.String(), "code", statusCode, "error", err)
	http.Error(w, err, statusCode)
}

// logQuery writes a single structured log line per completed query, in
// the format that record.Scanner parses.
func (s *Server) logQuery(ctx context.Context, q *record.Query) {
	s.l.Log(ctx, slog.LevelInfo, record.LogQuery,
		"op", q.Op,
		"date", q.Date.String(),
		"lat", q.Latitude,
		"long", q.Longitude,
		"tz", q.TZ,
		"status", q.Status(),
		"err", q.ErrorMessage(),
		"dur", q.Completed.Sub(q.Started))
}

// decodeParams returns the place and date for a request, falling back
// to the server's configured location and to today for anything not
// supplied as a query parameter.
func (s *Server) decodeParams(r *http.Request) (datetime.Place, datetime.CalendarDate, error) {
	pars := r.URL.Query()
	place := s.loc.Place
	if v := pars.Get("tz"); v != "" {
		tz, err := time.LoadLocation(v)
		if err != nil {
			return datetime.Place{}, datetime.CalendarDate(0), err
		}
		place.TimeLocation = tz
	}
	if v := pars.Get("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return datetime.Place{}, datetime.CalendarDate(0), err
		}
		place.Latitude = lat
	}
	if v := pars.Get("long"); v != "" {
		long, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return datetime.Place{}, datetime.CalendarDate(0), err
		}
		place.Longitude = long
	}
	date := datetime.CalendarDateFromTime(time.Now().In(place.TimeLocation))
	if v := pars.Get("date"); v != "" {
		if err := date.Parse(v); err != nil {
			return datetime.Place{}, datetime.CalendarDate(0), err
		}
	}
	if err := hours.ValidateCoordinates(place.Latitude, place.Longitude); err != nil {
		return datetime.Place{}, datetime.CalendarDate(0), err
	}
	return place, date, nil
}

func hourResponses(hrs []hours.Hour) []HourResponse {
	hr := make([]HourResponse, len(hrs))
	for i, h := range hrs {
		hr[i] = HourResponse{
			Index:   h.Index,
			Planet:  h.Planet.String(),
			Period:  h.Period.String(),
			Start:   h.Start.Format(time.RFC3339),
			End:     h.End.Format(time.RFC3339),
			Current: h.Current,
		}
	}
	return hr
}

func (s *Server) ServeHours(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	place, date, err := s.decodeParams(r)
	if err != nil {
		s.httpError(ctx, w, r.URL, "hours", err.Error(), http.StatusBadRequest)
		return
	}
	q := s.rec.NewPending(&record.Query{
		Op: "hours", Date: date,
		Latitude: place.Latitude, Longitude: place.Longitude,
		TZ: place.TimeLocation.String(),
	})
	hrs, err := s.eng.ComputeDay(ctx, place, date, time.Now())
	s.rec.PendingDone(q, err)
	s.logQuery(ctx, q)
	if err != nil {
		var nse *hours.NoSolarEventError
		if errors.As(err, &nse) {
			s.httpError(ctx, w, r.URL, "hours", err.Error(), http.StatusNotFound)
			return
		}
		s.httpError(ctx, w, r.URL, "hours", err.Error(), http.StatusInternalServerError)
		return
	}
	resp := HoursResponse{
		Date:      date.String(),
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
		TZ:        place.TimeLocation.String(),
		Hours:     hourResponses(hrs),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.httpError(ctx, w, r.URL, "hours", err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) ServeCurrent(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	place, date, err := s.decodeParams(r)
	if err != nil {
		s.httpError(ctx, w, r.URL, "current", err.Error(), http.StatusBadRequest)
		return
	}
	q := s.rec.NewPending(&record.Query{
		Op: "current", Date: date,
		Latitude: place.Latitude, Longitude: place.Longitude,
		TZ: place.TimeLocation.String(),
	})
	h, err := s.eng.FindCurrent(ctx, place, time.Now())
	s.rec.PendingDone(q, err)
	s.logQuery(ctx, q)
	if err != nil {
		if errors.Is(err, hours.ErrNotFound) {
			s.httpError(ctx, w, r.URL, "current", err.Error(), http.StatusNotFound)
			return
		}
		var nse *hours.NoSolarEventError
		if errors.As(err, &nse) {
			s.httpError(ctx, w, r.URL, "current", err.Error(), http.StatusNotFound)
			return
		}
		s.httpError(ctx, w, r.URL, "current", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(hourResponses([]hours.Hour{h})[0]); err != nil {
		s.httpError(ctx, w, r.URL, "current", err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) queries(it iter.Seq[*record.Query]) []QueryResponse {
	qr := []QueryResponse{}
	for q := range it {
		qr = append(qr, QueryResponse{
			Op:        q.Op,
			Date:      q.Date.String(),
			Latitude:  q.Latitude,
			Longitude: q.Longitude,
			TZ:        q.TZ,
			Status:    q.Status(),
			Error:     q.ErrorMessage(),
		})
	}
	return qr
}

func (s *Server) ServeRecent(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.queries(s.rec.Completed())); err != nil {
		s.httpError(ctx, w, r.URL, "recent", err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) ServeHome(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	place, date, err := s.decodeParams(r)
	if err != nil {
		s.httpError(ctx, w, r.URL, "home", err.Error(), http.StatusBadRequest)
		return
	}
	page, err := s.pageGen(ctx, place, date)
	if err != nil {
		s.httpError(ctx, w, r.URL, "home", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

// AppendEndpoints registers all of the server's handlers on mux.
func (s *Server) AppendEndpoints(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/api/hours", func(w http.ResponseWriter, r *http.Request) {
		s.ServeHours(ctx, w, r)
	})
	mux.HandleFunc("/api/current", func(w http.ResponseWriter, r *http.Request) {
		s.ServeCurrent(ctx, w, r)
	})
	mux.HandleFunc("/api/recent", func(w http.ResponseWriter, r *http.Request) {
		s.ServeRecent(ctx, w, r)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.ServeHome(ctx, w, r)
	})
}
