// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package record

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"iter"
	"time"
)

// LogQuery is the message used for the per-query log lines written by
// the web server; Scanner recognizes queries by it.
const LogQuery = "query"

type logLine struct {
	Time      time.Time `json:"time"`
	Msg       string    `json:"msg"`
	Op        string    `json:"op"`
	Date      string    `json:"date"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"long"`
	TZ        string    `json:"tz"`
	Status    string    `json:"status"`
	Err       string    `json:"err"`
	Dur       int64     `json:"dur"`
}

// ParseLogLine reconstructs a completed Query from one of the web
// server's structured log lines. Lines that are valid json but are not
// query records return ok == false.
func ParseLogLine(line string) (q Query, ok bool, err error) {
	var ll logLine
	if err := json.Unmarshal([]byte(line), &ll); err != nil {
		return Query{}, false, err
	}
	if ll.Msg != LogQuery {
		return Query{}, false, nil
	}
	q.Op = ll.Op
	if err := q.Date.Parse(ll.Date); err != nil {
		return Query{}, false, err
	}
	q.Latitude = ll.Latitude
	q.Longitude = ll.Longitude
	q.TZ = ll.TZ
	q.Completed = ll.Time
	q.Started = ll.Time.Add(-time.Duration(ll.Dur))
	if ll.Err != "" {
		q.Err = errors.New(ll.Err)
	}
	return q, true, nil
}

// Scanner reads query records back out of a log stream, skipping
// unrelated log lines.
type Scanner struct {
	sc  *bufio.Scanner
	err error
}

func NewScanner(rd io.Reader) *Scanner {
	return &Scanner{sc: bufio.NewScanner(rd)}
}

// Entries returns an iterator over the queries in the log stream. The
// iterator stops on a malformed line and the Scanner's Err method
// should be checked after it has completed.
func (ls *Scanner) Entries() iter.Seq[Query] {
	return func(yield func(Query) bool) {
		for ls.sc.Scan() {
			q, ok, err := ParseLogLine(ls.sc.Text())
			if err != nil {
				ls.err = err
				return
			}
			if !ok {
				continue
			}
			if !yield(q) {
				return
			}
		}
		ls.err = ls.sc.Err()
	}
}

func (ls *Scanner) Err() error {
	return ls.err
}
