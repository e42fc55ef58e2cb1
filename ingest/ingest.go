// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stacklok/skillhub-core/archive"
	"github.com/stacklok/skillhub-core/logger"
	"github.com/stacklok/skillhub-core/manifest"
	"github.com/stacklok/skillhub-core/policy"
	"github.com/stacklok/skillhub-core/registry"
	"github.com/stacklok/skillhub-core/reject"
	"github.com/stacklok/skillhub-core/semver"
	"github.com/stacklok/skillhub-core/store"
)

// Ingestor drives the upload pipeline. Construct with New; the zero value
// is not usable.
type Ingestor struct {
	lookup      registry.Lookup
	archives    *store.Store
	gate        *policy.Gate
	client      *http.Client
	scratchRoot string
	now         func() time.Time
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithArchiveStore stores original uploaded archives content-addressed and
// records their digest on the version record.
func WithArchiveStore(s *store.Store) Option {
	return func(ing *Ingestor) { ing.archives = s }
}

// WithGate evaluates admission policies against merged metadata before
// conflict resolution.
func WithGate(g *policy.Gate) Option {
	return func(ing *Ingestor) { ing.gate = g }
}

// WithHTTPClient replaces the client used for URL-sourced uploads.
func WithHTTPClient(c *http.Client) Option {
	return func(ing *Ingestor) { ing.client = c }
}

// WithScratchRoot places scratch directories under root instead of the
// system temp directory.
func WithScratchRoot(root string) Option {
	return func(ing *Ingestor) { ing.scratchRoot = root }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(ing *Ingestor) { ing.now = now }
}

// New creates an Ingestor reading existing artifacts through lookup.
// Panics if lookup is nil.
func New(lookup registry.Lookup, opts ...Option) *Ingestor {
	if lookup == nil {
		panic("ingest: New called with nil lookup")
	}

	ing := &Ingestor{
		lookup: lookup,
		client: &http.Client{Timeout: 60 * time.Second},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Ingest runs one upload through the pipeline. Rejections are returned as
// *reject.Rejection errors; any other error is an internal failure. The
// scratch directory backing the attempt is removed on success, rejection,
// error and panic alike.
func (ing *Ingestor) Ingest(ctx context.Context, input Input, ov Overrides, authz Authz) (*Outcome, error) {
	scratch, err := os.MkdirTemp(ing.scratchRoot, fmt.Sprintf("skillhub-ingest-%d-", ing.now().UnixNano()))
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	cleanup := func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			logger.Errorw("failed to remove scratch directory", "dir", scratch, "error", rmErr)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			cleanup()
			panic(r)
		}
		cleanup()
	}()

	return ing.run(ctx, scratch, input, ov, authz)
}

// run is the pipeline body; Ingest owns scratch lifecycle around it.
func (ing *Ingestor) run(ctx context.Context, scratch string, input Input, ov Overrides, authz Authz) (*Outcome, error) {
	rawManifest, sidecarDir, archiveBytes, err := ing.resolveInput(ctx, scratch, input)
	if err != nil {
		return nil, err
	}

	parsed := manifest.Parse(rawManifest)
	if !parsed.Valid() {
		return nil, reject.ManifestInvalid(parsed.Errors)
	}

	var sidecar *registry.Sidecar
	if sidecarDir != "" {
		sidecar, err = registry.LoadSidecar(sidecarDir)
		if err != nil {
			// The sidecar is optional tooling config; a broken one is
			// ignored, never fatal.
			logger.Warnw("ignoring invalid sidecar config", "error", err)
			sidecar = nil
		}
	}

	merged := mergeMetadata(parsed.Data, sidecar, ov)

	if !semver.IsValidVersionField(merged.Version) {
		return nil, reject.ManifestInvalid([]string{
			fmt.Sprintf("version must be a numeric X.Y.Z triplet or \"latest\", got %q", merged.Version),
		})
	}
	if !registry.IsKnownCategory(merged.Category) {
		return nil, reject.ManifestInvalid([]string{
			fmt.Sprintf("unknown category %q", merged.Category),
		})
	}

	decision, err := ing.gate.Evaluate(policyContext(merged))
	if err != nil {
		return nil, fmt.Errorf("evaluating admission policy: %w", err)
	}
	if !decision.Admitted {
		return nil, reject.PolicyDenied(decision.DeniedBy)
	}

	outcome, err := ing.resolveConflicts(ctx, merged, parsed.Content, ov, authz)
	if err != nil {
		return nil, err
	}

	if archiveBytes != nil && ing.archives != nil {
		tag := store.VersionTag(merged.Name, merged.Version)
		d, err := ing.archives.PutArchive(ctx, archiveBytes, tag)
		if err != nil {
			return nil, fmt.Errorf("storing original archive: %w", err)
		}
		outcome.Version.ArchiveDigest = d.String()
	}

	logger.Infow("skill ingested",
		"skill", merged.Name,
		"version", merged.Version,
		"new_artifact", outcome.NewArtifact,
		"replaced", outcome.Replaced,
	)

	return outcome, nil
}

// resolveInput turns the input into manifest text, plus the directory to
// look for a sidecar config in and the original archive bytes when the
// upload was an archive.
func (ing *Ingestor) resolveInput(ctx context.Context, scratch string, input Input) (rawManifest, sidecarDir string, archiveBytes []byte, err error) {
	if input.RawManifest != "" {
		return input.RawManifest, "", nil, nil
	}

	data := input.Data
	filename := input.Filename
	if data == nil {
		if input.URL == "" {
			return "", "", nil, reject.UnsupportedFormat("")
		}
		data, filename, err = ing.fetch(ctx, input.URL)
		if err != nil {
			return "", "", nil, err
		}
	}

	format := archive.DetectFormat(filename, data)
	if format == archive.FormatUnknown {
		// Not an archive: accept a bare manifest document, reject the rest.
		if isBareManifest(filename, data) {
			return string(data), "", nil, nil
		}
		return "", "", nil, reject.UnsupportedFormat(filename)
	}

	// Stage the archive under a name matching the detected format so the
	// extractor's suffix dispatch agrees with the magic bytes.
	stagedName := "upload." + format.String()
	stagedPath := filepath.Join(scratch, stagedName)
	if err := os.WriteFile(stagedPath, data, 0o600); err != nil {
		return "", "", nil, fmt.Errorf("staging archive: %w", err)
	}

	extractDir := filepath.Join(scratch, "extract")
	if err := os.MkdirAll(extractDir, 0o750); err != nil {
		return "", "", nil, fmt.Errorf("creating extraction directory: %w", err)
	}

	result, err := archive.Extract(stagedPath, extractDir, stagedName)
	if err != nil {
		return "", "", nil, fmt.Errorf("extracting archive: %w", err)
	}
	if result == nil {
		return "", "", nil, reject.ManifestNotFound()
	}

	manifestData, err := os.ReadFile(result.ManifestPath) //#nosec G304 -- path produced by the extractor inside scratch
	if err != nil {
		return "", "", nil, fmt.Errorf("reading extracted manifest: %w", err)
	}

	return string(manifestData), filepath.Dir(result.ManifestPath), data, nil
}

// resolveConflicts applies the ownership and version-uniqueness policy
// against the existing registry and shapes the outcome.
func (ing *Ingestor) resolveConflicts(ctx context.Context, merged *manifest.Metadata, content string, ov Overrides, authz Authz) (*Outcome, error) {
	existing, err := ing.lookup.FindArtifactByName(ctx, merged.Name)
	if err != nil {
		return nil, fmt.Errorf("looking up artifact %q: %w", merged.Name, err)
	}

	now := ing.now()
	version := registry.ArtifactVersion{
		Version:     merged.Version,
		Description: merged.Description,
		Content:     content,
		Tags:        merged.Tags,
		CreatedAt:   now,
	}

	if existing == nil {
		return &Outcome{
			Meta:        merged,
			Version:     version,
			NewArtifact: true,
			Timestamp:   now,
		}, nil
	}

	if authz.ActorID == "" {
		return nil, reject.NotAuthorized(existing.Name)
	}
	if existing.OwnerID != authz.ActorID && !authz.IsAdministrator {
		return nil, reject.NameCollision(existing.Name)
	}

	if prior := existing.FindVersion(merged.Version); prior != nil {
		if !ov.Overwrite {
			return nil, reject.VersionConflict(merged.Version)
		}
		// In-place overwrite keeps the original creation time.
		version.CreatedAt = prior.CreatedAt
		return &Outcome{
			Meta:      merged,
			Version:   version,
			Replaced:  true,
			Timestamp: now,
		}, nil
	}

	return &Outcome{
		Meta:      merged,
		Version:   version,
		Timestamp: now,
	}, nil
}

// isBareManifest reports whether an unrecognized upload is plausibly a raw
// SKILL.md document: named like one, or starting with a front-matter
// delimiter.
func isBareManifest(filename string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(filename), ".md") {
		return true
	}
	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("---"))
}
