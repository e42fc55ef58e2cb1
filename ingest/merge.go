// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"strings"

	"github.com/stacklok/skillhub-core/manifest"
	"github.com/stacklok/skillhub-core/registry"
)

// mergeMetadata layers the three metadata sources: the manifest is the
// base, the sidecar config overlays it, caller overrides overlay both.
// Later layers only touch fields they actually set, except tags, which are
// replaced wholesale by the highest layer that declares any.
func mergeMetadata(m *manifest.Metadata, sc *registry.Sidecar, ov Overrides) *manifest.Metadata {
	merged := *m

	if sc != nil {
		overlay(&merged.Version, sc.Version)
		overlay(&merged.Category, sc.Category)
		overlay(&merged.License, sc.License)
		overlay(&merged.RepositoryURL, sc.RepositoryURL)
		overlay(&merged.DocumentationURL, sc.Documentation)
		overlay(&merged.DemoURL, sc.DemoURL)
		if sc.Tags != nil {
			merged.Tags = sc.Tags
		}
	}

	overlay(&merged.Version, ov.Version)
	overlay(&merged.Category, strings.ToLower(ov.Category))
	overlay(&merged.License, ov.License)
	overlay(&merged.RepositoryURL, ov.RepositoryURL)
	overlay(&merged.DocumentationURL, ov.DocumentationURL)
	overlay(&merged.DemoURL, ov.DemoURL)
	if ov.Tags != nil {
		merged.Tags = ov.Tags
	}

	return &merged
}

// overlay replaces *dst with value when value is non-empty.
func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

// policyContext flattens merged metadata into the map the admission gate
// evaluates.
func policyContext(m *manifest.Metadata) map[string]any {
	return map[string]any{
		"name":          m.Name,
		"description":   m.Description,
		"version":       m.Version,
		"license":       m.License,
		"compatibility": m.Compatibility,
		"category":      m.Category,
		"tags":          m.Tags,
		"allowedTools":  m.AllowedTools,
		"author":        m.Author,
	}
}
