// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"io"
	"strconv"
	"strings"

	"github.com/jcodagnone/cfsregions/spatial"
)

const redirectPrefix = "redir:"

// RedirectLine formats the output line pointing code at target.
func RedirectLine(code, target string) string {
	return code + "," + redirectPrefix + target
}

// PointsLine formats code followed by the flattened lat,lng pairs.
func PointsLine(code string, points []spatial.Point) string {
	fields := make([]string, 0, 1+2*len(points))
	fields = append(fields, code)

	for _, p := range points {
		fields = append(fields, formatDegrees(p.Lat), formatDegrees(p.Lng))
	}

	return strings.Join(fields, ",")
}

// Shortest representation that round trips, so 39.8 stays "39.8".
func formatDegrees(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// LineWriter writes each line as soon as it is produced, so that the rows
// completed before a fatal error remain in the output.
type LineWriter struct {
	w     io.Writer
	Lines int
}

// NewLineWriter wraps w.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: w}
}

// WriteLine writes line followed by a newline.
func (lw *LineWriter) WriteLine(line string) error {
	if _, err := io.WriteString(lw.w, line+"\n"); err != nil {
		return err
	}

	lw.Lines++

	return nil
}
