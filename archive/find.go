// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestFileName is the canonical manifest file name. Matching is
// case-insensitive.
const ManifestFileName = "SKILL.md"

// DefaultMaxDepth is the default directory depth FindManifest descends to.
// The root directory is depth 0. A pathological archive nesting the manifest
// deeper than this is treated as having no manifest at all.
const DefaultMaxDepth = 2

// FindManifest searches root for a SKILL.md file, breadth first: every
// directory on the current level is checked for the file before any
// subdirectory is entered, so a root-level manifest always wins over a
// nested one. Returns "" when nothing is found within maxDepth levels.
func FindManifest(root string, maxDepth int) (string, error) {
	level := []string{root}

	for depth := 0; depth <= maxDepth && len(level) > 0; depth++ {
		var next []string

		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return "", fmt.Errorf("reading directory %s: %w", dir, err)
			}

			for _, entry := range entries {
				if entry.Type().IsRegular() && strings.EqualFold(entry.Name(), ManifestFileName) {
					return filepath.Join(dir, entry.Name()), nil
				}
				if entry.IsDir() {
					next = append(next, filepath.Join(dir, entry.Name()))
				}
			}
		}

		level = next
	}

	return "", nil
}
