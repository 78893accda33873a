// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"cloudeng.io/datetime"
	"github.com/almagest/planetary/hours"
	"github.com/almagest/planetary/internal/record"
	"github.com/almagest/planetary/location"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type tableManager struct{}

var titleCase = cases.Title(language.English)

func (tm tableManager) Hours(date datetime.CalendarDate, loc location.Location, hrs []hours.Hour) table.Writer {
	tw := table.NewWriter()
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	tw.SetTitle("%v at %v, %v", date, loc.Latitude, loc.Longitude)
	tw.AppendHeader(table.Row{"Period", "Hour", "Planet", "Starts", "Ends", ""})
	for _, h := range hrs {
		now := ""
		if h.Current {
			now = "now"
		}
		period := titleCase.String(h.Period.String() + " hours")
		tw.AppendRow(table.Row{
			period,
			h.Index,
			h.Planet,
			h.Start.Format(time.TimeOnly),
			h.End.Format(time.TimeOnly),
			now,
		})
		if h.Index == 12 {
			tw.AppendSeparator()
		}
	}
	return tw
}

func (tm tableManager) SunTimes(date datetime.CalendarDate, loc location.Location, rise, set, noon time.Time) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%v at %v, %v", date, loc.Latitude, loc.Longitude)
	tw.AppendHeader(table.Row{"Event", "Time"})
	tz := loc.TimeLocation
	tw.AppendRow(table.Row{"Sunrise", rise.In(tz).Format(time.TimeOnly)})
	tw.AppendRow(table.Row{"Solar Noon", noon.In(tz).Format(time.TimeOnly)})
	tw.AppendRow(table.Row{"Sunset", set.In(tz).Format(time.TimeOnly)})
	return tw
}

func (tm tableManager) Seasons(year int, dyn []datetime.DynamicDateRange) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%v", year)
	tw.AppendHeader(table.Row{"Event", "From", "To"})
	for _, d := range dyn {
		cdr := d.Evaluate(year)
		tw.AppendRow(table.Row{d.Name(), cdr.From(), cdr.To()})
	}
	return tw
}

func (tm tableManager) Queries(queries []record.Query) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("%v queries", len(queries))
	tw.AppendHeader(table.Row{"Op", "Date", "Latitude", "Longitude", "TZ", "Completed", "Took", "Status", "Error"})
	for _, q := range queries {
		tw.AppendRow(table.Row{
			q.Op,
			q.Date,
			q.Latitude,
			q.Longitude,
			q.TZ,
			q.Completed.Format(time.DateTime),
			q.Completed.Sub(q.Started),
			q.Status(),
			q.ErrorMessage(),
		})
	}
	return tw
}

func (tm tableManager) RenderHTML(tw table.Writer) string {
	tw.SetStyle(table.Style{
		HTML: table.HTMLOptions{
			CSSClass:    "table",
			EmptyColumn: "&nbsp;",
			EscapeText:  false,
			Newline:     "<br/>",
		}})
	return tw.RenderHTML()
}
