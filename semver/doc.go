// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package semver implements the version ordering used by the skill registry.
//
// Registry versions are plain numeric triplets (X.Y.Z). The comparator here
// is deliberately more lenient than a full semantic-versioning library:
// missing trailing components compare as zero ("1.0" equals "1.0.0") and an
// empty input compares equal to anything, which callers rely on as a
// defensive default rather than a real equality signal. The literal version
// string "latest" is a display-level sentinel and never enters numeric
// comparison.
package semver
