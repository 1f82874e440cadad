// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"context"

	"github.com/jcodagnone/cfsregions/spatial"
)

// fakeGeocoder answers from a fixed table and records every query.
type fakeGeocoder struct {
	answers map[string][]Match
	errs    map[string]error
	queries []string
}

func (f *fakeGeocoder) Geocode(_ context.Context, query string) ([]Match, error) {
	f.queries = append(f.queries, query)

	if err, ok := f.errs[query]; ok {
		return nil, err
	}

	return f.answers[query], nil
}

func match(placeID string, lat, lng float64) Match {
	return Match{PlaceID: placeID, Point: spatial.Point{Lat: lat, Lng: lng}}
}

func named(m Match, displayName string) Match {
	m.DisplayName = displayName

	return m
}
