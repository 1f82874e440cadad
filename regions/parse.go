// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package regions

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	nameSeparator   = ", "
	remainderPrefix = "Remainder of "
)

var partRe = regexp.MustCompile(`^(.*) \([A-Z]{2} Part\)$`)

// Outcome is the result of parsing a row: either candidates to geocode or a
// redirect to a code that already covers the same multistate area.
type Outcome struct {
	Candidates []string
	Redirect   string
}

// IsRedirect reports whether the row should point at another code.
func (o Outcome) IsRedirect() bool {
	return o.Redirect != ""
}

// Registry maps the canonical name of a multistate area to the first code
// that claimed it. It is owned by a single run.
type Registry map[string]string

// Claim registers area for code unless another code got there first, in
// which case it returns that code and true.
func (r Registry) Claim(area, code string) (string, bool) {
	if first, ok := r[area]; ok {
		return first, true
	}

	r[area] = code

	return "", false
}

// Parse derives the geocoding candidates for a row, or the redirect target
// when the row is another state's slice of an already seen multistate area.
func Parse(row Row, registry Registry) (Outcome, error) {
	pieces := strings.Split(row.Name, nameSeparator)

	if len(pieces) == 1 {
		nice := strings.TrimPrefix(pieces[0], remainderPrefix)

		return Outcome{Candidates: []string{nice + nameSeparator + row.State, nice}}, nil
	}

	if len(pieces) > 2 {
		return Outcome{}, &RowError{Code: row.Code, Pieces: pieces, State: row.State, Err: ErrTooManySegments}
	}

	area, suffix := pieces[0], pieces[1]

	// The suffix lists a superset of the row's states: "CT CFS Area" or
	// "NY-NJ-CT-PA CFS Area (CT Part)" for a CT row.
	if !suffixRe(row.State).MatchString(suffix) {
		return Outcome{}, &RowError{Code: row.Code, Pieces: pieces, State: row.State, Err: ErrMalformedSuffix}
	}

	if canonical, ok := multistateArea(area, suffix); ok {
		if first, seen := registry.Claim(canonical, row.Code); seen {
			return Outcome{Redirect: first}, nil
		}
	}

	// "Winston-Salem (NC Part)" is queried as Winston and Salem.
	if m := partRe.FindStringSubmatch(area); m != nil {
		area = m[1]
	}

	states := row.States()
	subRegions := strings.Split(area, "-")
	candidates := make([]string, 0, len(subRegions)*len(states))

	for _, sub := range subRegions {
		for _, state := range states {
			candidates = append(candidates, sub+nameSeparator+state)
		}
	}

	return Outcome{Candidates: candidates}, nil
}

func suffixRe(state string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`^([A-Z]{2}-)*%s(-[A-Z]{2})* CFS Area( \([A-Z]{2} Part\))?$`,
		regexp.QuoteMeta(state),
	))
}

// multistateArea returns the name shared by all state slices of a multistate
// area. The "(XX Part)" marker may trail either the area or the suffix.
func multistateArea(area, suffix string) (string, bool) {
	if m := partRe.FindStringSubmatch(area); m != nil {
		return m[1], true
	}

	if m := partRe.FindStringSubmatch(suffix); m != nil {
		return area + nameSeparator + m[1], true
	}

	return "", false
}
