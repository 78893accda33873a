// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package record keeps an in-memory account of the planetary hour
// computations served by a process, for display by the status endpoints.
package record

import (
	"iter"
	"sync"
	"time"

	"cloudeng.io/algo/container/list"
	"cloudeng.io/datetime"
)

// Query records a single computation: the request, when it ran and how
// it ended.
type Query struct {
	Op        string // "hours" or "current"
	Date      datetime.CalendarDate
	Latitude  float64
	Longitude float64
	TZ        string

	// Filled in by the recorder.
	Started   time.Time
	Completed time.Time
	Err       error

	listID list.DoubleID[*Query]
}

func (q *Query) Status() string {
	if q.Completed.IsZero() {
		return "pending"
	}
	if q.Err != nil {
		return "failed"
	}
	return "ok"
}

func (q *Query) ErrorMessage() string {
	if q.Err == nil {
		return ""
	}
	return q.Err.Error()
}

// Recorder tracks in-flight and completed queries. Completed queries
// are bounded to the most recent limit entries.
type Recorder struct {
	mu      sync.Mutex
	limit   int
	done    []*Query
	waiting *list.Double[*Query]
}

func NewRecorder(limit int) *Recorder {
	return &Recorder{
		limit:   limit,
		done:    make([]*Query, 0, limit),
		waiting: list.NewDouble[*Query](),
	}
}

// NewPending registers q as in-flight and stamps its start time.
func (r *Recorder) NewPending(q *Query) *Query {
	if q == nil {
		return q
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q.listID = r.waiting.Append(q)
	q.Started = time.Now()
	return q
}

// PendingDone finalizes q with the outcome of its computation.
func (r *Recorder) PendingDone(q *Query, err error) {
	if q == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	q.Completed = time.Now()
	q.Err = err
	r.waiting.RemoveItem(q.listID)
	r.done = append(r.done, q)
	if len(r.done) > r.limit {
		r.done = r.done[len(r.done)-r.limit:]
	}
}

// Completed iterates over completed queries, most recent last.
func (r *Recorder) Completed() iter.Seq[*Query] {
	return func(yield func(*Query) bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for _, q := range r.done {
			if !yield(q) {
				return
			}
		}
	}
}

// Pending iterates over in-flight queries.
func (r *Recorder) Pending() iter.Seq[*Query] {
	return func(yield func(*Query) bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		for q := range r.waiting.Forward() {
			if !yield(q) {
				return
			}
		}
	}
}
