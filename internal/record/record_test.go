// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package record_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cloudeng.io/datetime"
	"github.com/almagest/planetary/internal/record"
)

func newQuery(t *testing.T, op string, day int) *record.Query {
	t.Helper()
	return &record.Query{
		Op:        op,
		Date:      datetime.NewCalendarDate(2024, 6, day),
		Latitude:  37.8714,
		Longitude: -109.3425,
		TZ:        "America/Denver",
	}
}

func pendingOps(r *record.Recorder) []string {
	var ops []string
	for q := range r.Pending() {
		ops = append(ops, q.Op)
	}
	return ops
}

func completedOps(r *record.Recorder) []string {
	var ops []string
	for q := range r.Completed() {
		ops = append(ops, q.Op)
	}
	return ops
}

func TestRecorder(t *testing.T) {
	r := record.NewRecorder(2)

	qa := r.NewPending(newQuery(t, "hours", 16))
	qb := r.NewPending(newQuery(t, "current", 17))
	if got, want := qa.Status(), "pending"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if qa.Started.IsZero() {
		t.Errorf("expected a start time")
	}
	if got, want := fmt.Sprint(pendingOps(r)), "[hours current]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := completedOps(r); len(got) != 0 {
		t.Errorf("got %v, want no completed queries", got)
	}

	r.PendingDone(qa, nil)
	if got, want := qa.Status(), "ok"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := qa.ErrorMessage(), ""; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := fmt.Sprint(pendingOps(r)), "[current]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	r.PendingDone(qb, errors.New("oops"))
	if got, want := qb.Status(), "failed"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := qb.ErrorMessage(), "oops"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := pendingOps(r); len(got) != 0 {
		t.Errorf("got %v, want no pending queries", got)
	}
	if got, want := fmt.Sprint(completedOps(r)), "[hours current]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRecorderLimit(t *testing.T) {
	r := record.NewRecorder(2)
	for day := 10; day < 15; day++ {
		q := r.NewPending(newQuery(t, fmt.Sprintf("hours-%v", day), day))
		r.PendingDone(q, nil)
	}
	// Only the two most recent completions are retained.
	if got, want := fmt.Sprint(completedOps(r)), "[hours-13 hours-14]"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScanner(t *testing.T) {
	log := `{"time":"2024-06-16T12:00:01.5-06:00","level":"INFO","msg":"starting web server","addr":"127.0.0.1:8080"}
{"time":"2024-06-16T12:00:02-06:00","level":"INFO","msg":"query","component":"webapi","op":"hours","date":"06/16/2024","lat":37.8714,"long":-109.3425,"tz":"America/Denver","status":"ok","err":"","dur":1500000}
{"time":"2024-06-16T12:00:03-06:00","level":"INFO","msg":"query","component":"webapi","op":"current","date":"06/16/2024","lat":78.2232,"long":15.6267,"tz":"Arctic/Longyearbyen","status":"failed","err":"no sunrise or sunset","dur":2000000}
`
	sc := record.NewScanner(strings.NewReader(log))
	var queries []record.Query
	for q := range sc.Entries() {
		queries = append(queries, q)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if got, want := len(queries), 2; got != want {
		t.Fatalf("got %v queries, want %v", got, want)
	}
	q := queries[0]
	if got, want := q.Op, "hours"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := q.Date, datetime.NewCalendarDate(2024, 6, 16); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := q.Status(), "ok"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := q.Completed.Sub(q.Started), 1500*time.Microsecond; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	q = queries[1]
	if got, want := q.Status(), "failed"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if got, want := q.ErrorMessage(), "no sunrise or sunset"; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestScannerMalformed(t *testing.T) {
	sc := record.NewScanner(strings.NewReader("not json\n"))
	for range sc.Entries() {
		t.Fatal("unexpected entry")
	}
	if sc.Err() == nil {
		t.Fatal("expected an error")
	}
}

func TestRecorderNil(t *testing.T) {
	r := record.NewRecorder(2)
	if q := r.NewPending(nil); q != nil {
		t.Errorf("got %v, want nil", q)
	}
	r.PendingDone(nil, nil)
	if got := completedOps(r); len(got) != 0 {
		t.Errorf("got %v, want no completed queries", got)
	}
}
