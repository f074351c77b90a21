package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/ambient/internal/metrics"
	"github.com/san-kum/ambient/internal/visuals"
)

// WritePath writes a descent trace: one row per visited point with its
// loss.
func WritePath(w io.Writer, path []visuals.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "x", "y", "loss"}); err != nil {
		return err
	}
	for i, p := range path {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(visuals.Loss(p.X, p.Y), 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeries writes sampled metrics side by side, keyed by time in
// seconds. Every series must share the same sample times.
func WriteSeries(w io.Writer, series []*metrics.Series) error {
	if len(series) == 0 {
		return nil
	}
	n := len(series[0].Times)
	header := []string{"time"}
	for _, s := range series {
		if len(s.Values) != n {
			return fmt.Errorf("series %s has %d samples, want %d", s.Metric.Name(), len(s.Values), n)
		}
		header = append(header, s.Metric.Name())
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		row := []string{strconv.FormatFloat(series[0].Times[i].Seconds(), 'f', 3, 64)}
		for _, s := range series {
			row = append(row, strconv.FormatFloat(s.Values[i], 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
