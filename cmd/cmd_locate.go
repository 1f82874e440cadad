// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jcodagnone/cfsregions/regions"
	"github.com/jcodagnone/cfsregions/utils/httputils"
	"github.com/spf13/cobra"
)

var regionOptions = &regions.Options{}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Geocode every region and write the locations table",
	Long: `Geocodes the region names in the input table and writes one line per
region to the output file: either "code,lat,lng[,lat,lng...]" or
"code,redir:othercode". Any row that cannot be resolved stops the run; the
lines written up to that point are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var (
			key string
			err error
		)

		if regionOptions.KeyFromADC {
			key, err = regions.APIKeyFromADC(ctx)
		} else {
			key, err = regions.ReadAPIKey(regionOptions.KeyPath)
		}

		if err != nil {
			return err
		}

		rows, err := readRegions(regionOptions.InputPath)
		if err != nil {
			return err
		}

		out, err := os.Create(filepath.Clean(regionOptions.OutputPath))
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}

		geocoder := regions.NewGoogleMapsGeocoder(key, newTransport())
		p := regions.NewProcessor(geocoder, regionOptions)

		log.Printf("📍 Geocoding %d regions from %s", len(rows), regionOptions.InputPath)

		err = p.Run(ctx, rows, out)
		err = errors.Join(err, out.Close())

		if err != nil {
			log.Printf("🛑 Stopped after %s", p.Metrics.Summary())

			if hint := geocodingHint(err); hint != "" {
				log.Printf("💡 %s", hint)
			}

			return err
		}

		log.Printf("✅ %s to %s", p.Metrics.Summary(), regionOptions.OutputPath)

		return nil
	},
}

// geocodingHint suggests what to check after the geocoder gave up.
func geocodingHint(err error) string {
	switch {
	case regions.IsQuotaExceededError(err):
		return "The key was denied or ran out of quota, check that billing and the Geocoding API are enabled for it"
	case regions.IsRateLimitError(err):
		return "Google is throttling requests, rerun later: lines already written are kept"
	case regions.IsTimeoutError(err):
		return "Google did not answer in time, check the network and rerun"
	default:
		return ""
	}
}

func newTransport() http.RoundTripper {
	var traceWriter io.Writer
	if regionOptions.EnableHTTPTrace || regionOptions.EnableHTTPBodyTrace {
		traceWriter = os.Stderr
	}

	userAgent := regionOptions.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("cfsregions/%s", Version)
	}

	return &httputils.AppendRequestHeadersRoundTripper{
		Transport: &httputils.LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Writer:    traceWriter,
			DumpBody:  regionOptions.EnableHTTPBodyTrace,
		},
		Headers: map[string]string{
			"User-Agent": userAgent,
		},
	}
}

func readRegions(path string) ([]regions.Row, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening regions: %w", err)
	}
	defer f.Close()

	return regions.ReadRows(f)
}

func init() {
	rootCmd.AddCommand(locateCmd)
	rootCmd.PersistentFlags().StringVar(
		&regionOptions.InputPath,
		"input",
		"domestic_regions.csv",
		"Tab separated region table with Code, Name, State and Including States columns",
	)
	locateCmd.Flags().StringVar(
		&regionOptions.OutputPath,
		"output",
		"domestic_region_locations.csv",
		"Where to write the region locations",
	)
	locateCmd.Flags().StringVar(
		&regionOptions.KeyPath,
		"key-file",
		"google_maps_geocoding_api_key.txt",
		"File holding the Google Maps Geocoding API key",
	)
	locateCmd.Flags().BoolVar(
		&regionOptions.KeyFromADC,
		"key-from-adc",
		false,
		fmt.Sprintf("Retrieve the key named %q through Application Default Credentials instead of --key-file", regions.KeyDisplayName),
	)
	locateCmd.Flags().Float64Var(
		&regionOptions.SpreadRadius,
		"spread-radius",
		regions.DefaultSpreadRadius,
		"Warn when the points of a region are further apart than this many meters (0 disables)",
	)
	locateCmd.Flags().BoolVar(
		&regionOptions.EnableHTTPTrace,
		"trace-http",
		false,
		"Display HTTP requests-responses",
	)
	locateCmd.Flags().BoolVar(
		&regionOptions.EnableHTTPBodyTrace,
		"trace-http-body",
		false,
		"Display HTTP requests-responses bodies",
	)
}
