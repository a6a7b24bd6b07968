package main

import (
	"io"

	"github.com/fwojciec/harvest"
	"github.com/rodaine/table"
)

// WriteFailureReport prints one line per rejected URL.
func WriteFailureReport(w io.Writer, failures []harvest.Failure) {
	tbl := table.New("URL", "Stage", "Code", "Reason").WithWriter(w)
	for _, f := range failures {
		tbl.AddRow(f.Task.URL, f.Stage, f.Code, f.Reason)
	}
	tbl.Print()
}
