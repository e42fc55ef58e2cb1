// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stacklok/skillhub-core/manifest"
	"github.com/stacklok/skillhub-core/registry"
)

func baseMetadata() *manifest.Metadata {
	return &manifest.Metadata{
		Name:        "my-skill",
		Description: "does things",
		Version:     "1.0.0",
		License:     "MIT",
		Category:    "tools",
		Tags:        []string{"a", "b", "c"},
	}
}

func TestMergeMetadata_ManifestOnly(t *testing.T) {
	t.Parallel()

	merged := mergeMetadata(baseMetadata(), nil, Overrides{})
	assert.Equal(t, baseMetadata(), merged)
}

func TestMergeMetadata_SidecarOverlaysManifest(t *testing.T) {
	t.Parallel()

	sc := &registry.Sidecar{
		Version:  "2.0.0",
		Category: "development",
		Tags:     []string{"cli"},
	}

	merged := mergeMetadata(baseMetadata(), sc, Overrides{})
	assert.Equal(t, "2.0.0", merged.Version)
	assert.Equal(t, "development", merged.Category)
	assert.Equal(t, []string{"cli"}, merged.Tags)
	// Untouched fields fall through to the manifest.
	assert.Equal(t, "MIT", merged.License)
	assert.Equal(t, "does things", merged.Description)
}

func TestMergeMetadata_OverridesBeatSidecar(t *testing.T) {
	t.Parallel()

	sc := &registry.Sidecar{Version: "2.0.0", License: "Apache-2.0"}
	ov := Overrides{Version: "3.0.0", Category: "Research"}

	merged := mergeMetadata(baseMetadata(), sc, ov)
	assert.Equal(t, "3.0.0", merged.Version)
	assert.Equal(t, "research", merged.Category)
	// Sidecar still wins where the override is silent.
	assert.Equal(t, "Apache-2.0", merged.License)
}

func TestMergeMetadata_TagsReplaceWholesale(t *testing.T) {
	t.Parallel()

	sc := &registry.Sidecar{Tags: []string{"sidecar"}}

	// Override tags fully replace, no union.
	merged := mergeMetadata(baseMetadata(), sc, Overrides{Tags: []string{"x", "y"}})
	assert.Equal(t, []string{"x", "y"}, merged.Tags)

	// Absent override: sidecar tags win.
	merged = mergeMetadata(baseMetadata(), sc, Overrides{})
	assert.Equal(t, []string{"sidecar"}, merged.Tags)

	// Neither: manifest tags survive.
	merged = mergeMetadata(baseMetadata(), nil, Overrides{})
	assert.Equal(t, []string{"a", "b", "c"}, merged.Tags)
}

func TestMergeMetadata_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := baseMetadata()
	_ = mergeMetadata(m, &registry.Sidecar{Version: "9.9.9"}, Overrides{License: "BSD"})
	assert.Equal(t, "1.0.0", m.Version)
	assert.Equal(t, "MIT", m.License)
}

func TestPolicyContext(t *testing.T) {
	t.Parallel()

	ctx := policyContext(baseMetadata())
	assert.Equal(t, "my-skill", ctx["name"])
	assert.Equal(t, "MIT", ctx["license"])
	assert.Equal(t, []string{"a", "b", "c"}, ctx["tags"])
}
