// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/errdef"
)

// archiveMediaType is the media type recorded for stored skill archives.
const archiveMediaType = "application/octet-stream"

// Store provides local content-addressed archive storage backed by an OCI
// image layout.
type Store struct {
	root  string
	inner *oci.Store
}

// New creates a store at the given root directory, initializing it as an
// OCI image layout on first use.
func New(root string) (*Store, error) {
	inner, err := oci.New(root)
	if err != nil {
		return nil, fmt.Errorf("creating archive store at %s: %w", root, err)
	}
	return &Store{root: root, inner: inner}, nil
}

// Root returns the archive store root within the given data home directory.
// This is the injectable, testable form; for the standard XDG location use
// DefaultRoot.
func Root(dataHome string) string {
	return filepath.Join(dataHome, "skillhub", "archives")
}

// DefaultRoot returns the default store root using XDG base directory
// conventions.
func DefaultRoot() string {
	return Root(xdg.DataHome)
}

// PutArchive stores archive bytes and returns their digest. Storing the
// same bytes twice is a no-op. When tag is non-empty the digest is also
// tagged with it.
func (s *Store) PutArchive(ctx context.Context, content []byte, tag string) (digest.Digest, error) {
	d := digest.FromBytes(content)
	desc := ocispec.Descriptor{
		MediaType: archiveMediaType,
		Digest:    d,
		Size:      int64(len(content)),
	}

	if err := s.inner.Push(ctx, desc, bytes.NewReader(content)); err != nil && !errors.Is(err, errdef.ErrAlreadyExists) {
		return "", fmt.Errorf("writing archive blob: %w", err)
	}

	if tag != "" {
		if err := s.inner.Tag(ctx, desc, tag); err != nil {
			return "", fmt.Errorf("tagging archive: %w", err)
		}
	}

	return d, nil
}

// GetArchive retrieves archive bytes by digest.
func (s *Store) GetArchive(ctx context.Context, d digest.Digest) ([]byte, error) {
	rc, err := s.inner.Fetch(ctx, ocispec.Descriptor{Digest: d})
	if err != nil {
		return nil, fmt.Errorf("archive not found: %s: %w", d, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", d, err)
	}
	return data, nil
}

// Resolve resolves a tag to an archive digest.
func (s *Store) Resolve(ctx context.Context, tag string) (digest.Digest, error) {
	desc, err := s.inner.Resolve(ctx, tag)
	if err != nil {
		return "", fmt.Errorf("tag not found: %s: %w", tag, err)
	}
	return desc.Digest, nil
}

// ListTags returns all tags in the store.
func (s *Store) ListTags(ctx context.Context) ([]string, error) {
	var tags []string
	if err := s.inner.Tags(ctx, "", func(t []string) error {
		tags = append(tags, t...)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// RootDir returns the store root directory.
func (s *Store) RootDir() string {
	return s.root
}

// VersionTag builds the tag associating a skill name and version with its
// archive digest. Skill name separators that are invalid in OCI tags ('@'
// and '/') are folded to '-'.
func VersionTag(name, version string) string {
	name = strings.TrimPrefix(name, "@")
	name = strings.ReplaceAll(name, "@", "-")
	name = strings.ReplaceAll(name, "/", "-")
	return name + "-" + version
}
