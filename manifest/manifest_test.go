// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `---
name: my-skill
description: Does useful things
version: 1.2.0
tags:
  - search
  - web
allowed-tools: Bash Read WebFetch
---
# My Skill

Use this skill for useful things.
`

func TestParse_ValidDocument(t *testing.T) {
	t.Parallel()

	result := Parse(validDoc)
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	require.NotNil(t, result.Data)

	assert.Equal(t, "my-skill", result.Data.Name)
	assert.Equal(t, "Does useful things", result.Data.Description)
	assert.Equal(t, "1.2.0", result.Data.Version)
	assert.Equal(t, "MIT", result.Data.License)
	assert.Equal(t, "tools", result.Data.Category)
	assert.Equal(t, []string{"search", "web"}, result.Data.Tags)
	assert.Equal(t, []string{"Bash", "Read", "WebFetch"}, result.Data.AllowedTools)
	assert.True(t, strings.HasPrefix(result.Content, "# My Skill"))
	assert.False(t, strings.HasSuffix(result.Content, "\n"), "body should be trimmed")
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	first := Parse(validDoc)
	second := Parse(validDoc)
	assert.Equal(t, first, second)
}

func TestParse_MalformedFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{name: "no front matter", raw: "# Just markdown\n"},
		{name: "missing closing delimiter", raw: "---\nname: my-skill\n"},
		{name: "empty document", raw: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Parse(tt.raw)
			assert.Nil(t, result.Data)
			assert.Empty(t, result.Content)
			assert.Len(t, result.Errors, 1)
		})
	}
}

func TestParse_NameValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		skill   string
		wantErr bool
	}{
		{name: "simple", skill: "my-skill", wantErr: false},
		{name: "namespaced", skill: "acme/web-search", wantErr: false},
		{name: "at separator", skill: "skill@2", wantErr: false},
		{name: "single char", skill: "a", wantErr: false},
		{name: "digits", skill: "skill2", wantErr: false},
		{name: "uppercase rejected", skill: "My-Skill", wantErr: true},
		{name: "spaces rejected", skill: "my skill", wantErr: true},
		{name: "leading hyphen", skill: "-my-skill", wantErr: true},
		{name: "leading at sign", skill: "@acme/web-search", wantErr: true},
		{name: "trailing hyphen", skill: "my-skill-", wantErr: true},
		{name: "trailing slash", skill: "acme/", wantErr: true},
		{name: "too long", skill: strings.Repeat("a", 65), wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Parse("---\nname: \"" + tt.skill + "\"\ndescription: d\n---\nbody")
			if tt.wantErr {
				require.Len(t, result.Errors, 1)
				assert.Contains(t, result.Errors[0], "name")
			} else {
				assert.True(t, result.Valid(), "errors: %v", result.Errors)
			}
		})
	}
}

func TestParse_VersionValidation(t *testing.T) {
	t.Parallel()

	accepted := []string{"1.0.0", "0.0.1", "12.34.56"}
	for _, v := range accepted {
		result := Parse("---\nname: s\ndescription: d\nversion: \"" + v + "\"\n---\n")
		assert.True(t, result.Valid(), "version %q should be accepted: %v", v, result.Errors)
	}

	rejected := []string{"1.0", "v1.0.0", "latest", "1.0.0-beta"}
	for _, v := range rejected {
		result := Parse("---\nname: s\ndescription: d\nversion: \"" + v + "\"\n---\n")
		require.Len(t, result.Errors, 1, "version %q should be rejected", v)
		assert.Contains(t, result.Errors[0], "version")
	}
}

func TestParse_VersionPrecedence(t *testing.T) {
	t.Parallel()

	// metadata.version wins over the top-level field.
	result := Parse("---\nname: s\ndescription: d\nversion: 1.0.0\nmetadata:\n  version: 2.0.0\n---\n")
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, "2.0.0", result.Data.Version)

	// Absent entirely: the default applies.
	result = Parse("---\nname: s\ndescription: d\n---\n")
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, "1.0.0", result.Data.Version)
}

func TestParse_ErrorAccumulation(t *testing.T) {
	t.Parallel()

	// Missing name and description, bad version: every violation reported.
	result := Parse("---\nversion: nope\n---\nbody")
	assert.Nil(t, result.Data)
	assert.GreaterOrEqual(t, len(result.Errors), 3)
}

func TestParse_DescriptionLimits(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxDescriptionLength+1)
	result := Parse("---\nname: s\ndescription: " + long + "\n---\n")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "description")
}

func TestParse_CompatibilityLimit(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", MaxCompatibilityLength+1)
	result := Parse("---\nname: s\ndescription: d\ncompatibility: " + long + "\n---\n")
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "compatibility")
}

func TestParse_TagsCommaString(t *testing.T) {
	t.Parallel()

	result := Parse("---\nname: s\ndescription: d\ntags: \"a, b , ,c\"\n---\n")
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, []string{"a", "b", "c"}, result.Data.Tags)
}

func TestParse_CategoryNormalized(t *testing.T) {
	t.Parallel()

	result := Parse("---\nname: s\ndescription: d\ncategory: Productivity\n---\n")
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, "productivity", result.Data.Category)
}

func TestParse_PassthroughFields(t *testing.T) {
	t.Parallel()

	result := Parse(`---
name: s
description: d
license: Apache-2.0
repository-url: https://example.com/repo
documentation-url: https://example.com/docs
demo-url: https://example.com/demo
metadata:
  author: someone
---
`)
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, "Apache-2.0", result.Data.License)
	assert.Equal(t, "https://example.com/repo", result.Data.RepositoryURL)
	assert.Equal(t, "https://example.com/docs", result.Data.DocumentationURL)
	assert.Equal(t, "https://example.com/demo", result.Data.DemoURL)
	assert.Equal(t, "someone", result.Data.Author)
}

func TestParse_BodyPreserved(t *testing.T) {
	t.Parallel()

	body := "# Title\n\nSome *markdown* with `code`.\n\n- a\n- b"
	result := Parse("---\nname: s\ndescription: d\n---\n" + body + "\n")
	require.True(t, result.Valid(), "errors: %v", result.Errors)
	assert.Equal(t, body, result.Content)
}

func TestParse_FrontmatterSizeLimit(t *testing.T) {
	t.Parallel()

	huge := "---\nname: s\ndescription: " + strings.Repeat("y", 70*1024) + "\n---\n"
	result := Parse(huge)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "front matter")
}
