// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package semver

import (
	"regexp"
	"strconv"
	"strings"
)

// Sentinel is the literal version string that bypasses numeric ordering.
// An artifact version named "latest" is matched by exact string comparison
// only and is skipped by Latest.
const Sentinel = "latest"

var strictVersionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// IsValid reports whether v is a strict numeric triplet (X.Y.Z).
// The "latest" sentinel is not accepted here; manifests must carry a
// concrete version.
func IsValid(v string) bool {
	return strictVersionRegex.MatchString(v)
}

// IsValidVersionField reports whether v is acceptable as a stored artifact
// version: a strict numeric triplet or the "latest" sentinel. The asymmetry
// with IsValid is intentional and mirrors where each check applies.
func IsValidVersionField(v string) bool {
	return v == Sentinel || IsValid(v)
}

// Compare orders two version strings numerically, component by component.
// Missing trailing components are treated as zero. If either input is empty
// the result is 0; callers must not read that as real equality.
func Compare(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av := componentAt(as, i)
		bv := componentAt(bs, i)
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}

	return 0
}

// Latest returns the greatest version among vs under Compare. Empty strings
// and the "latest" sentinel are skipped; ties keep the earliest-encountered
// candidate. Returns "" when no candidate remains.
func Latest(vs []string) string {
	best := ""
	for _, v := range vs {
		if v == "" || v == Sentinel {
			continue
		}
		if best == "" || Compare(v, best) > 0 {
			best = v
		}
	}
	return best
}

// componentAt parses the i-th numeric component, defaulting to zero for
// missing or non-numeric parts.
func componentAt(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}
