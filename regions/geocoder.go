// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"context"

	"github.com/jcodagnone/cfsregions/spatial"
)

// Match is a single place returned by a geocoding provider.
type Match struct {
	PlaceID     string
	Point       spatial.Point
	DisplayName string
}

// Geocoder resolves a free text place name. The first match, if any, is the
// provider's best guess.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]Match, error)
}
