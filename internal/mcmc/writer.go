package mcmc

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// SampleWriter receives the draws the transition loop decides to keep.
type SampleWriter interface {
	Write(s Sample) error
}

// Discard drops every draw, for probes and tests that only need the
// final state.
var Discard SampleWriter = discard{}

type discard struct{}

func (discard) Write(Sample) error { return nil }

// CSVWriter streams draws as CSV: one header row naming the diagnostic
// columns and parameters, then one row per draw.
type CSVWriter struct {
	w      *csv.Writer
	names  []string
	headed bool
}

// NewCSVWriter writes draws of len(names) parameters to w.
func NewCSVWriter(w io.Writer, names []string) *CSVWriter {
	return &CSVWriter{
		w:     csv.NewWriter(w),
		names: append([]string(nil), names...),
	}
}

func (c *CSVWriter) Write(s Sample) error {
	if len(s.Params) != len(c.names) {
		return fmt.Errorf("mcmc: draw has %d parameters, header has %d", len(s.Params), len(c.names))
	}
	if !c.headed {
		header := append([]string{"lp__", "accept_stat__"}, c.names...)
		if err := c.w.Write(header); err != nil {
			return err
		}
		c.headed = true
	}
	row := make([]string, 0, 2+len(s.Params))
	row = append(row, formatFloat(s.LogProb), formatFloat(s.AcceptStat))
	for _, v := range s.Params {
		row = append(row, formatFloat(v))
	}
	return c.w.Write(row)
}

// Flush forces buffered rows out and reports any deferred write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
