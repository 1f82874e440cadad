// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/jcodagnone/cfsregions/regions"
	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Print the geocoding queries for each region without calling the API",
	Long: `Parses the input table exactly like locate does and prints, for every
region, the queries that would be sent to the geocoder or the code it
redirects to. Useful to validate a new input file before spending quota.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rows, err := readRegions(regionOptions.InputPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		registry := make(regions.Registry)

		for _, row := range rows {
			outcome, err := regions.Parse(row, registry)
			if err != nil {
				return err
			}

			if outcome.IsRedirect() {
				fmt.Fprintf(out, "%s\t-> %s\n", row.Code, outcome.Redirect)

				continue
			}

			fmt.Fprintf(out, "%s\t%s\n", row.Code, strings.Join(outcome.Candidates, " | "))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
}
