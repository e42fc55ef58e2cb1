// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package registry

import "strings"

// DefaultCategory is used when a manifest declares none.
const DefaultCategory = "tools"

// knownCategories is the fixed category set of the marketplace.
var knownCategories = map[string]struct{}{
	"tools":        {},
	"development":  {},
	"productivity": {},
	"writing":      {},
	"research":     {},
	"data":         {},
	"media":        {},
	"automation":   {},
}

// IsKnownCategory reports whether cat (compared case-insensitively) is a
// registered category.
func IsKnownCategory(cat string) bool {
	_, ok := knownCategories[strings.ToLower(cat)]
	return ok
}

// Categories returns the known category keys. The slice is a copy.
func Categories() []string {
	out := make([]string, 0, len(knownCategories))
	for c := range knownCategories {
		out = append(out, c)
	}
	return out
}
