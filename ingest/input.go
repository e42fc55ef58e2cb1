// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"time"

	"github.com/stacklok/skillhub-core/manifest"
	"github.com/stacklok/skillhub-core/registry"
)

// Input is one upload to ingest. Exactly one source should be set; they are
// consulted in order: RawManifest, then Data, then URL.
type Input struct {
	// RawManifest is a bare SKILL.md document submitted as text.
	RawManifest string

	// Data and Filename describe an uploaded file (archive or manifest).
	Data     []byte
	Filename string

	// URL is a remote location to fetch the payload from.
	URL string
}

// Overrides are caller-supplied fields that take precedence over sidecar
// and manifest values. Empty string fields are treated as absent; a nil
// Tags slice is absent while a non-nil one replaces the merged tag list
// wholesale.
type Overrides struct {
	Version          string
	Category         string
	License          string
	RepositoryURL    string
	DocumentationURL string
	DemoURL          string
	Tags             []string

	// Overwrite confirms replacing an existing version of the same
	// artifact. Without it a duplicate version is a retryable conflict.
	Overwrite bool
}

// Authz identifies the requesting actor for the ownership check.
type Authz struct {
	ActorID         string
	IsAdministrator bool
}

// Outcome is the successful result of an ingest: the values the caller
// persists. The pipeline performs no registry writes itself.
type Outcome struct {
	// Meta is the fully merged metadata for the artifact's display fields.
	Meta *manifest.Metadata

	// Version is the version record to append or replace.
	Version registry.ArtifactVersion

	// NewArtifact is true when no artifact with this name existed; the
	// caller must create one around Version.
	NewArtifact bool

	// Replaced is true when Version overwrites an existing history entry
	// in place (same position, original CreatedAt preserved).
	Replaced bool

	// Timestamp is when the ingest completed; the caller uses it for the
	// artifact's last-updated bookkeeping.
	Timestamp time.Time
}
