// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest() map[string]any {
	return map[string]any{
		"name":     "acme-search",
		"license":  "MIT",
		"category": "tools",
		"tags":     []string{"web", "search"},
		"version":  "1.2.0",
	}
}

func TestGate_Admits(t *testing.T) {
	t.Parallel()

	gate, err := NewGate([]string{
		"manifest.license == 'MIT'",
		"manifest.name.startsWith('acme-')",
	})
	require.NoError(t, err)

	decision, err := gate.Evaluate(testManifest())
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
	assert.Empty(t, decision.DeniedBy)
}

func TestGate_DeniesWithSource(t *testing.T) {
	t.Parallel()

	gate, err := NewGate([]string{
		"manifest.license == 'MIT'",
		"manifest.category == 'development'",
	})
	require.NoError(t, err)

	decision, err := gate.Evaluate(testManifest())
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
	assert.Equal(t, "manifest.category == 'development'", decision.DeniedBy)
}

func TestGate_NilAdmitsEverything(t *testing.T) {
	t.Parallel()

	var gate *Gate
	decision, err := gate.Evaluate(testManifest())
	require.NoError(t, err)
	assert.True(t, decision.Admitted)
}

func TestNewGate_CompileErrors(t *testing.T) {
	t.Parallel()

	_, err := NewGate([]string{"manifest.license =="})
	require.ErrorIs(t, err, ErrCompile)

	_, err = NewGate([]string{strings.Repeat("x", maxExpressionLength+1)})
	require.ErrorIs(t, err, ErrCompile)
}

func TestGate_NonBooleanResult(t *testing.T) {
	t.Parallel()

	gate, err := NewGate([]string{"manifest.name"})
	require.NoError(t, err)

	_, err = gate.Evaluate(testManifest())
	require.ErrorIs(t, err, ErrNotBool)
}

func TestGate_TagMembership(t *testing.T) {
	t.Parallel()

	gate, err := NewGate([]string{"!('experimental' in manifest.tags)"})
	require.NoError(t, err)

	decision, err := gate.Evaluate(testManifest())
	require.NoError(t, err)
	assert.True(t, decision.Admitted)

	m := testManifest()
	m["tags"] = []string{"experimental"}
	decision, err = gate.Evaluate(m)
	require.NoError(t, err)
	assert.False(t, decision.Admitted)
}
