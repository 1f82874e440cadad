// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jcodagnone/cfsregions/spatial"
)

// ResolveMetrics counts what happened while resolving candidates.
type ResolveMetrics struct {
	Candidates int
	Ambiguous  int
	Empty      int
	Duplicates int
}

// Merge adds other into m.
func (m *ResolveMetrics) Merge(other *ResolveMetrics) *ResolveMetrics {
	if other == nil {
		return m
	}

	m.Candidates += other.Candidates
	m.Ambiguous += other.Ambiguous
	m.Empty += other.Empty
	m.Duplicates += other.Duplicates

	return m
}

// Resolve geocodes every candidate in order and returns one point per
// distinct place. Candidates with more than one match are discarded: they
// usually hit a same-named place in another state.
func Resolve(ctx context.Context, geocoder Geocoder, candidates []string) ([]spatial.Point, ResolveMetrics, error) {
	var (
		metrics ResolveMetrics
		points  []spatial.Point
	)

	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		metrics.Candidates++

		matches, err := geocoder.Geocode(ctx, candidate)
		if err != nil {
			return nil, metrics, fmt.Errorf("geocoding %q: %w", candidate, err)
		}

		switch {
		case len(matches) == 0:
			metrics.Empty++

			continue
		case len(matches) > 1:
			metrics.Ambiguous++

			log.Printf("Ignoring %q, it matches %s", candidate, displayNames(matches))

			continue
		}

		if _, ok := seen[matches[0].PlaceID]; ok {
			metrics.Duplicates++

			continue
		}

		seen[matches[0].PlaceID] = struct{}{}
		points = append(points, matches[0].Point)
	}

	if len(points) == 0 {
		return nil, metrics, fmt.Errorf("%w in %q", ErrUnresolvable, candidates)
	}

	return points, metrics, nil
}

func displayNames(matches []Match) string {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strconv.Quote(m.DisplayName))
	}

	return strings.Join(names, " and ")
}
