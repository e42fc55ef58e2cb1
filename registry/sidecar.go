// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed data/sidecar.schema.json
var embeddedSchemaFS embed.FS

// SidecarFileNames are the recognized sidecar configuration file names, in
// lookup order.
var SidecarFileNames = []string{"skillhub.yaml", "skillhub.yml"}

// Sidecar is the optional packaging-tool configuration found next to
// SKILL.md inside an archive. Its values sit between caller overrides and
// the manifest in the merge precedence.
type Sidecar struct {
	Version       string   `yaml:"version" json:"version,omitempty"`
	Category      string   `yaml:"category" json:"category,omitempty"`
	License       string   `yaml:"license" json:"license,omitempty"`
	RepositoryURL string   `yaml:"repository-url" json:"repository-url,omitempty"`
	Documentation string   `yaml:"documentation-url" json:"documentation-url,omitempty"`
	DemoURL       string   `yaml:"demo-url" json:"demo-url,omitempty"`
	Tags          []string `yaml:"tags" json:"tags,omitempty"`
}

// LoadSidecar reads the sidecar configuration from the directory containing
// the manifest. A missing file is a normal outcome and returns (nil, nil);
// an unreadable or schema-invalid file returns an error the caller is
// expected to log and ignore, never to fail the upload on.
func LoadSidecar(dir string) (*Sidecar, error) {
	var data []byte
	found := false

	for _, name := range SidecarFileNames {
		b, err := os.ReadFile(filepath.Join(dir, name)) //#nosec G304 -- dir is a scratch extraction directory
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading sidecar config: %w", err)
		}
		data = b
		found = true
		break
	}

	if !found {
		return nil, nil
	}

	var sc Sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing sidecar config: %w", err)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}

	sc.normalize()
	return &sc, nil
}

// Validate checks the sidecar against the embedded JSON schema.
func (s *Sidecar) Validate() error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize sidecar config: %w", err)
	}

	schemaData, err := embeddedSchemaFS.ReadFile("data/sidecar.schema.json")
	if err != nil {
		return fmt.Errorf("failed to read embedded sidecar schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("sidecar schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("sidecar schema validation failed: %s", strings.Join(msgs, "; "))
}

// normalize trims fields and drops empty tags.
func (s *Sidecar) normalize() {
	s.Version = strings.TrimSpace(s.Version)
	s.Category = strings.ToLower(strings.TrimSpace(s.Category))
	s.License = strings.TrimSpace(s.License)
	s.RepositoryURL = strings.TrimSpace(s.RepositoryURL)
	s.Documentation = strings.TrimSpace(s.Documentation)
	s.DemoURL = strings.TrimSpace(s.DemoURL)

	tags := make([]string, 0, len(s.Tags))
	for _, tag := range s.Tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if len(tags) == 0 {
		s.Tags = nil
	} else {
		s.Tags = tags
	}
}
