// Copyright 2025 Almagest Works. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/almagest/planetary/internal/record"
)

type LogStatusFlags struct {
	Op  string `subcmd:"op,,display log info for the specified operation only"`
	TSV bool   `subcmd:"tsv,false,print the status in tab separated values"`
}

type LogCmd struct {
	out io.Writer
}

func (l *LogCmd) Status(_ context.Context, flags any, args []string) error {
	fv := flags.(*LogStatusFlags)
	rd := os.Stdin
	if len(args) == 1 {
		fi, err := os.OpenFile(args[0], os.O_RDONLY, 0)
		if err != nil {
			return err
		}
		defer fi.Close()
		rd = fi
	}
	sc := record.NewScanner(rd)
	var queries []record.Query
	for q := range sc.Entries() {
		if len(fv.Op) > 0 && q.Op != fv.Op {
			continue
		}
		queries = append(queries, q)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	tm := tableManager{}
	tw := tm.Queries(queries)
	if fv.TSV {
		fmt.Fprintln(l.out, tw.RenderTSV())
		return nil
	}
	fmt.Fprintln(l.out, tw.Render())
	return nil
}
