// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jcodagnone/cfsregions/regions"
	"github.com/stretchr/testify/assert"
)

func TestGeocodingHint(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "quota",
			err:      regions.ClassifyStatus("OVER_QUERY_LIMIT", "You have exceeded your daily request quota"),
			contains: "quota",
		},
		{
			name:     "denied key",
			err:      regions.ClassifyStatus("REQUEST_DENIED", "The provided API key is invalid."),
			contains: "billing",
		},
		{
			name:     "rate limit",
			err:      fmt.Errorf("geocoding %q: %w", "Hartford, CT", regions.ClassifyHTTPError(429)),
			contains: "rerun later",
		},
		{
			name:     "timeout",
			err:      &regions.GeocodingError{Type: regions.ErrorTypeTimeout, Message: "google maps request timed out"},
			contains: "in time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, geocodingHint(tt.err), tt.contains)
		})
	}
}

func TestGeocodingHintNone(t *testing.T) {
	assert.Empty(t, geocodingHint(regions.ErrUnresolvable))
	assert.Empty(t, geocodingHint(errors.New("opening regions: no such file")))
}
