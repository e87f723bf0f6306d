// Copyright (c) 2026 MangaFire. All rights reserved.
// Author: dev@mangafire.app

// Package query parses multi-valued filter parameters from URL query
// strings, as used by the catalogue listing and search endpoints.
package query

import (
	"strconv"
	"strings"
)

// IntSlice converts string values into integers, silently dropping any
// entry that does not parse. Filters degrade rather than fail on junk
// input.
func IntSlice(values []string) []int {
	var parsed []int
	for _, value := range values {
		if number, err := strconv.Atoi(value); err == nil {
			parsed = append(parsed, number)
		}
	}
	return parsed
}

// StringSlice splits a comma-separated parameter into trimmed parts,
// dropping empties. Returns nil for an absent parameter.
func StringSlice(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		clean := strings.TrimSpace(part)
		if clean != "" {
			parts = append(parts, clean)
		}
	}
	return parts
}
