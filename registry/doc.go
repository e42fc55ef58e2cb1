// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package registry defines the artifact model of the skill marketplace and the
read-side lookup contract the ingest pipeline depends on.

An Artifact is a named, versioned unit of published content. Names are
unique case-insensitively across the whole registry; versions are unique
within one artifact. The display-level fields of an artifact (description,
tags, current version) mirror its most recently added or updated version.

Persistence is a caller concern. The ingest pipeline only reads through the
Lookup interface and returns the values to persist; the backing store must
make the name+version append atomic (a unique index or transaction) because
the pipeline's own check-then-act is not race-safe on its own.

The package also loads the optional sidecar configuration file packaged
alongside SKILL.md inside an archive, validating it against an embedded JSON
schema before use.
*/
package registry
