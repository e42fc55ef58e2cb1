// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/skillhub-core/semver"
)

// Field limits for SKILL.md front matter.
const (
	MaxNameLength          = 64
	MaxDescriptionLength   = 1024
	MaxCompatibilityLength = 500

	// maxFrontmatterSize limits front matter to prevent YAML parsing attacks.
	maxFrontmatterSize = 64 * 1024
)

// Defaults applied when the corresponding field is absent.
const (
	DefaultVersion  = "1.0.0"
	DefaultLicense  = "MIT"
	DefaultCategory = "tools"
)

// Skill names are lowercase alphanumeric with -, @ and / as internal
// separators; a separator may not start or end the name.
var nameRegex = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9@/-]*[a-z0-9])?$`)

// Metadata is the validated, normalized front matter of a SKILL.md document.
// Every field is populated, with defaults applied where the document was
// silent.
type Metadata struct {
	Name          string
	Description   string
	Version       string
	License       string
	Compatibility string
	AllowedTools  []string
	Category      string
	Tags          []string

	// Optional passthrough fields, not validated beyond trimming.
	RepositoryURL    string
	DocumentationURL string
	DemoURL          string
	Author           string
}

// Result is the outcome of parsing one SKILL.md document. Data is nil
// whenever Errors is non-empty; a rejected parse carries no usable metadata.
type Result struct {
	Data    *Metadata
	Content string
	Errors  []string
}

// Valid reports whether the parse succeeded.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// document mirrors the raw front matter shape before validation.
type document struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	Version       string            `yaml:"version"`
	License       string            `yaml:"license"`
	Compatibility string            `yaml:"compatibility"`
	AllowedTools  toolList          `yaml:"allowed-tools"`
	Category      string            `yaml:"category"`
	Tags          tagList           `yaml:"tags"`
	Repository    string            `yaml:"repository-url"`
	Documentation string            `yaml:"documentation-url"`
	Demo          string            `yaml:"demo-url"`
	Metadata      map[string]string `yaml:"metadata"`
}

// Parse splits raw into front matter and body, decodes the front matter, and
// validates every field. All validation errors are accumulated; only a
// document whose front matter cannot be separated at all short-circuits with
// a single error and empty content.
func Parse(raw string) *Result {
	fm, body, err := splitFrontmatter(raw)
	if err != nil {
		return &Result{Errors: []string{err.Error()}}
	}

	var doc document
	if err := yaml.Unmarshal([]byte(fm), &doc); err != nil {
		return &Result{Errors: []string{fmt.Sprintf("invalid front matter YAML: %v", err)}}
	}

	var errs []string

	name := strings.TrimSpace(doc.Name)
	switch {
	case name == "":
		errs = append(errs, "name is required in SKILL.md front matter")
	case len(name) > MaxNameLength:
		errs = append(errs, fmt.Sprintf("name must be %d characters or fewer", MaxNameLength))
	case !nameRegex.MatchString(name):
		errs = append(errs, "name must be lowercase alphanumeric with '-', '@' or '/' separators and must not start or end with a separator")
	}

	description := strings.TrimSpace(doc.Description)
	switch {
	case description == "":
		errs = append(errs, "description is required in SKILL.md front matter")
	case len(description) > MaxDescriptionLength:
		errs = append(errs, fmt.Sprintf("description must be %d characters or fewer", MaxDescriptionLength))
	}

	compatibility := strings.TrimSpace(doc.Compatibility)
	if len(compatibility) > MaxCompatibilityLength {
		errs = append(errs, fmt.Sprintf("compatibility must be %d characters or fewer", MaxCompatibilityLength))
	}

	version := resolveVersion(&doc)
	if !semver.IsValid(version) {
		errs = append(errs, fmt.Sprintf("version must be a numeric X.Y.Z triplet, got %q", version))
	}

	license := strings.TrimSpace(doc.License)
	if license == "" {
		license = DefaultLicense
	}

	category := strings.ToLower(strings.TrimSpace(doc.Category))
	if category == "" {
		category = DefaultCategory
	}

	if len(errs) > 0 {
		return &Result{Errors: errs}
	}

	return &Result{
		Data: &Metadata{
			Name:             name,
			Description:      description,
			Version:          version,
			License:          license,
			Compatibility:    compatibility,
			AllowedTools:     doc.AllowedTools,
			Category:         category,
			Tags:             doc.Tags,
			RepositoryURL:    strings.TrimSpace(doc.Repository),
			DocumentationURL: strings.TrimSpace(doc.Documentation),
			DemoURL:          strings.TrimSpace(doc.Demo),
			Author:           strings.TrimSpace(doc.Metadata["author"]),
		},
		Content: strings.TrimSpace(body),
	}
}

// resolveVersion applies the version precedence: metadata.version, then the
// top-level version field, then the default.
func resolveVersion(doc *document) string {
	if v := strings.TrimSpace(doc.Metadata["version"]); v != "" {
		return v
	}
	if v := strings.TrimSpace(doc.Version); v != "" {
		return v
	}
	return DefaultVersion
}

// splitFrontmatter separates the YAML front matter block from the body.
func splitFrontmatter(raw string) (frontmatter, body string, err error) {
	const delimiter = "---"

	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, delimiter) {
		return "", "", fmt.Errorf("SKILL.md must start with YAML front matter (---)")
	}

	rest := strings.TrimPrefix(trimmed[len(delimiter):], "\n")
	endIdx := strings.Index(rest, delimiter)
	if endIdx == -1 {
		return "", "", fmt.Errorf("SKILL.md front matter missing closing delimiter (---)")
	}

	frontmatter = rest[:endIdx]
	if len(frontmatter) > maxFrontmatterSize {
		return "", "", fmt.Errorf("front matter exceeds maximum size of %d bytes", maxFrontmatterSize)
	}

	body = rest[endIdx+len(delimiter):]
	return frontmatter, body, nil
}
