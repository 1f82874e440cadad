// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/jcodagnone/cfsregions/spatial"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSpreadRadius is about 20 miles.
const DefaultSpreadRadius = 32000.0

// Options configuration for a locate run.
type Options struct {
	// InputPath is the tab separated region table
	InputPath string

	// OutputPath is where the code to coordinates table is written
	OutputPath string

	// KeyPath is the file holding the Google Maps API key
	KeyPath string

	// Look the key up through Application Default Credentials instead of KeyPath
	KeyFromADC bool

	// Warn about rows whose points are further apart than this many meters.
	// Zero disables the check.
	SpreadRadius float64

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string
}

// RunMetrics tracks what a run did.
type RunMetrics struct {
	ResolveMetrics

	Rows      int
	Redirects int
	Resolved  int
	Spread    int
}

// Summary renders the metrics for the final log line.
func (m *RunMetrics) Summary() string {
	p := message.NewPrinter(language.English)

	return p.Sprintf(
		"%d rows written: %d resolved, %d redirects, %d over the spread radius. "+
			"%d geocoding queries, %d ambiguous, %d without results, %d duplicate places",
		m.Rows, m.Resolved, m.Redirects, m.Spread,
		m.Candidates, m.Ambiguous, m.Empty, m.Duplicates,
	)
}

// Processor resolves region rows into output lines.
type Processor struct {
	geocoder Geocoder
	options  *Options
	registry Registry
	Metrics  RunMetrics
}

// NewProcessor creates a processor with an empty multistate registry.
func NewProcessor(geocoder Geocoder, options *Options) *Processor {
	if options == nil {
		options = &Options{}
	}

	return &Processor{
		geocoder: geocoder,
		options:  options,
		registry: make(Registry),
	}
}

// Run processes rows in order and writes one line per row to w. The first
// failure stops the run; lines written before it are left in place.
func (p *Processor) Run(ctx context.Context, rows []Row, w io.Writer) error {
	out := NewLineWriter(w)

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(rows),
			progressbar.OptionSetDescription("Geocoding regions"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, row := range rows {
		line, err := p.process(ctx, row)
		if err != nil {
			return err
		}

		if err := out.WriteLine(line); err != nil {
			return fmt.Errorf("writing row %s: %w", row.Code, err)
		}

		p.Metrics.Rows++

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return nil
}

func (p *Processor) process(ctx context.Context, row Row) (string, error) {
	outcome, err := Parse(row, p.registry)
	if err != nil {
		return "", err
	}

	if outcome.IsRedirect() {
		p.Metrics.Redirects++

		return RedirectLine(row.Code, outcome.Redirect), nil
	}

	points, metrics, err := Resolve(ctx, p.geocoder, outcome.Candidates)
	p.Metrics.Merge(&metrics)

	if err != nil {
		return "", fmt.Errorf("row %s: %w", row.Code, err)
	}

	p.Metrics.Resolved++
	p.checkSpread(row.Code, points)

	return PointsLine(row.Code, points), nil
}

// checkSpread only logs; the points are written as they are.
func (p *Processor) checkSpread(code string, points []spatial.Point) {
	if p.options.SpreadRadius <= 0 || len(points) < 2 {
		return
	}

	spread, a, b := spatial.MaxSpread(points)
	if spread <= p.options.SpreadRadius {
		return
	}

	p.Metrics.Spread++

	log.Printf("⚠️  %s: %s and %s are %.1f km apart", code, points[a], points[b], spread/1000)
}
