// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package ingest orchestrates skill uploads end to end: it detects what kind
of input it was handed (bare manifest, zip, tar.gz, or remote URL), drives
safe extraction, parses and validates the SKILL.md manifest, merges metadata
from the three sources (caller overrides beat the in-archive sidecar config,
which beats the manifest), evaluates admission policies, and resolves
ownership and version conflicts against the existing registry.

On success it returns the version record for the storage layer to persist;
on refusal it returns a reject.Rejection whose kind tells the caller exactly
which user-facing response to produce. Each invocation stages its work in a
private scratch directory that is removed on every exit path, panics
included.

The pipeline itself never writes to the registry. Its duplicate-version
check is check-then-act and therefore not race-safe; the storage layer must
enforce name+version uniqueness and callers must map a storage-level
uniqueness violation to the same version-conflict rejection.
*/
package ingest
