// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/stacklok/skillhub-core/semver"
)

// ArtifactVersion is one entry in an artifact's version history. Entries are
// immutable once created except for an operator-confirmed overwrite of the
// same version string, which replaces content in place without touching
// CreatedAt.
type ArtifactVersion struct {
	// Version is a numeric X.Y.Z triplet or the literal "latest".
	Version string `json:"version"`
	// Description is the version's description.
	Description string `json:"description"`
	// Content is the manifest body text, preserved byte for byte.
	Content string `json:"content"`
	// Tags are display tags; order is preserved.
	Tags []string `json:"tags,omitempty"`
	// ArchiveDigest references the stored original archive, when one was
	// uploaded and a blob store is configured.
	ArchiveDigest string `json:"archiveDigest,omitempty"`
	// CreatedAt is when the version was first uploaded.
	CreatedAt time.Time `json:"createdAt"`
}

// Artifact is a named aggregate owning an append-mostly version history.
type Artifact struct {
	// Name is the normalized skill name, unique case-insensitively.
	Name string `json:"name"`
	// OwnerID identifies the publishing actor.
	OwnerID string `json:"ownerId"`
	// Description mirrors the most recent version's description.
	Description string `json:"description"`
	// Category is a key into the category registry.
	Category string `json:"category"`
	// Tags mirror the most recent version's tags.
	Tags []string `json:"tags,omitempty"`
	// License is the SPDX license identifier.
	License string `json:"license,omitempty"`
	// Compatibility describes environment requirements.
	Compatibility string `json:"compatibility,omitempty"`
	// AllowedTools is the tool allowlist from the manifest.
	AllowedTools []string `json:"allowedTools,omitempty"`
	// RepositoryURL, DocumentationURL and DemoURL are passthrough links.
	RepositoryURL    string `json:"repositoryUrl,omitempty"`
	DocumentationURL string `json:"documentationUrl,omitempty"`
	DemoURL          string `json:"demoUrl,omitempty"`
	// Author is informational metadata from the manifest.
	Author string `json:"author,omitempty"`
	// Downloads counts pulls; bookkeeping only.
	Downloads int64 `json:"downloads"`
	// Versions is the ordered version history.
	Versions []ArtifactVersion `json:"versions"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FindVersion returns the history entry with the exact version string, or
// nil. The "latest" sentinel only matches an entry literally named so; it is
// never resolved numerically here.
func (a *Artifact) FindVersion(version string) *ArtifactVersion {
	for i := range a.Versions {
		if a.Versions[i].Version == version {
			return &a.Versions[i]
		}
	}
	return nil
}

// LatestVersion returns the numerically greatest version entry, or nil for
// an empty history. Entries named "latest" are skipped.
func (a *Artifact) LatestVersion() *ArtifactVersion {
	versions := make([]string, 0, len(a.Versions))
	for i := range a.Versions {
		versions = append(versions, a.Versions[i].Version)
	}

	best := semver.Latest(versions)
	if best == "" {
		return nil
	}
	return a.FindVersion(best)
}

// Lookup is the read-side storage dependency of the ingest pipeline.
type Lookup interface {
	// FindArtifactByName returns the artifact with the given name, matched
	// case-insensitively, or nil when none exists.
	FindArtifactByName(ctx context.Context, name string) (*Artifact, error)
}

// MemoryLookup is an in-memory Lookup, used in tests and by embedding
// callers that keep the registry in process. Safe for concurrent use.
type MemoryLookup struct {
	mu        sync.RWMutex
	artifacts map[string]*Artifact
}

// NewMemoryLookup creates an empty in-memory lookup.
func NewMemoryLookup() *MemoryLookup {
	return &MemoryLookup{artifacts: make(map[string]*Artifact)}
}

// FindArtifactByName implements Lookup.
func (m *MemoryLookup) FindArtifactByName(_ context.Context, name string) (*Artifact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.artifacts[strings.ToLower(name)], nil
}

// Put stores an artifact, replacing any existing one with the same
// case-insensitive name.
func (m *MemoryLookup) Put(a *Artifact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[strings.ToLower(a.Name)] = a
}
