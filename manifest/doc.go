// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package manifest parses SKILL.md documents into validated skill metadata.

A SKILL.md document is YAML front matter between "---" delimiters followed by
a Markdown body. Parse splits the two, decodes the front matter, and runs the
full set of field validations, accumulating every violation rather than
stopping at the first. The body text is returned exactly as written (trimmed
of surrounding whitespace, never reformatted).

Parse is a pure function: it performs no I/O and has no hidden state, so the
same input always yields the same result. Callers must treat any result with
a non-empty error list as a rejection and never use partial metadata from it.
*/
package manifest
