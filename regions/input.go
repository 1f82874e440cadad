// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package regions turns Commodity Flow Survey region definitions into a
// code to coordinates lookup table.
//
// Region codes in the input come in a few flavours:
//
//	C   Combined Statistical Area (CSA)
//	M   Metropolitan Statistical Area (MSA)
//	R   rest of state, everything not covered by a CSA or MSA
//	S   state without any CSA or MSA
//	SM  whole state is part of an MSA
package regions

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
)

// Row is one region definition from the input table.
type Row struct {
	Code            string `csv:"Code"`
	Name            string `csv:"Name"`
	State           string `csv:"State"`
	IncludingStates string `csv:"Including States"`
}

// States returns the Including States followed by the row's own state.
func (r Row) States() []string {
	return append(strings.Fields(r.IncludingStates), r.State)
}

// ReadRows decodes a tab separated region table with a header line.
// Columns other than Code, Name, State and Including States are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("reading regions: empty input")
		}

		return nil, fmt.Errorf("reading regions header: %w", err)
	}

	dec.DisallowMissingColumns = true

	var rows []Row

	for {
		var row Row
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("reading regions line %d: %w", len(rows)+2, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
