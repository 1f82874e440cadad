// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"github.com/jcodagnone/cfsregions/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		answers    map[string][]Match
		candidates []string
		expected   []spatial.Point
		metrics    ResolveMetrics
	}{
		{
			name:       "single match",
			answers:    map[string][]Match{"Springfield, IL": {match("p1", 39.8, -89.6)}},
			candidates: []string{"Springfield, IL", "Springfield"},
			expected:   []spatial.Point{{Lat: 39.8, Lng: -89.6}},
			metrics:    ResolveMetrics{Candidates: 2, Empty: 1},
		},
		{
			name: "ambiguous candidate is discarded",
			answers: map[string][]Match{
				"Springfield, IL": {match("p1", 39.8, -89.6)},
				"Springfield":     {match("p2", 37.2, -93.3), match("p1", 39.8, -89.6)},
			},
			candidates: []string{"Springfield", "Springfield, IL"},
			expected:   []spatial.Point{{Lat: 39.8, Lng: -89.6}},
			metrics:    ResolveMetrics{Candidates: 2, Ambiguous: 1},
		},
		{
			name: "same place from two candidates",
			answers: map[string][]Match{
				"Hartford, CT": {match("h", 41.76, -72.67)},
				"Hartford":     {match("h", 41.76, -72.67)},
			},
			candidates: []string{"Hartford, CT", "Hartford"},
			expected:   []spatial.Point{{Lat: 41.76, Lng: -72.67}},
			metrics:    ResolveMetrics{Candidates: 2, Duplicates: 1},
		},
		{
			name: "distinct places keep candidate order",
			answers: map[string][]Match{
				"Minneapolis, MN": {match("mpls", 44.98, -93.27)},
				"St. Paul, MN":    {match("stp", 44.95, -93.09)},
			},
			candidates: []string{"Minneapolis, WI", "Minneapolis, MN", "St. Paul, WI", "St. Paul, MN"},
			expected: []spatial.Point{
				{Lat: 44.98, Lng: -93.27},
				{Lat: 44.95, Lng: -93.09},
			},
			metrics: ResolveMetrics{Candidates: 4, Empty: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geocoder := &fakeGeocoder{answers: tt.answers}

			points, metrics, err := Resolve(context.Background(), geocoder, tt.candidates)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, points)
			assert.Equal(t, tt.metrics, metrics)
			assert.Equal(t, tt.candidates, geocoder.queries)
		})
	}
}

func TestResolveLogsAmbiguousMatches(t *testing.T) {
	var logs bytes.Buffer

	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	geocoder := &fakeGeocoder{answers: map[string][]Match{
		"Springfield": {
			named(match("p1", 39.8, -89.6), "Springfield, IL, USA"),
			named(match("p2", 37.2, -93.3), "Springfield, MO, USA"),
		},
		"Springfield, IL": {named(match("p1", 39.8, -89.6), "Springfield, IL, USA")},
	}}

	_, _, err := Resolve(context.Background(), geocoder, []string{"Springfield", "Springfield, IL"})
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `Ignoring "Springfield", it matches "Springfield, IL, USA" and "Springfield, MO, USA"`)
	assert.NotContains(t, logs.String(), `Ignoring "Springfield, IL"`)
}

func TestResolveUnresolvable(t *testing.T) {
	geocoder := &fakeGeocoder{answers: map[string][]Match{
		"Springfield": {match("p1", 39.8, -89.6), match("p2", 37.2, -93.3)},
	}}

	_, _, err := Resolve(context.Background(), geocoder, []string{"Springfield, ZZ", "Springfield"})
	require.ErrorIs(t, err, ErrUnresolvable)
	assert.Contains(t, err.Error(), `"Springfield, ZZ"`)
	assert.Contains(t, err.Error(), `"Springfield"`)
}

func TestResolveGeocoderError(t *testing.T) {
	quota := &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "google maps status: OVER_QUERY_LIMIT"}
	geocoder := &fakeGeocoder{errs: map[string]error{"Hartford, CT": quota}}

	_, _, err := Resolve(context.Background(), geocoder, []string{"Hartford, CT", "Hartford"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, quota))
	assert.True(t, IsQuotaExceededError(err))
	assert.Equal(t, []string{"Hartford, CT"}, geocoder.queries, "no query after a failure")
}

func TestResolveMetricsMerge(t *testing.T) {
	m := &ResolveMetrics{Candidates: 1, Empty: 1}
	m.Merge(&ResolveMetrics{Candidates: 2, Ambiguous: 1, Duplicates: 1}).Merge(nil)

	assert.Equal(t, ResolveMetrics{Candidates: 3, Ambiguous: 1, Empty: 1, Duplicates: 1}, *m)
}
