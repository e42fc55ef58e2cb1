// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Extraction ceilings. These bound the cost of hostile archives; a
// decompression bomb fails fast instead of filling the scratch volume.
const (
	// MaxEntryFileSize is the maximum size of a single extracted file (100MB).
	MaxEntryFileSize = 100 * 1024 * 1024

	// MaxTotalSize is the maximum total extracted size (500MB).
	MaxTotalSize = 500 * 1024 * 1024

	// MaxEntries is the maximum number of entries in one archive.
	MaxEntries = 10000
)

// Result locates the manifest within an extracted archive. It is scratch
// scoped: the paths live under the destination directory the caller supplied
// and vanish when the caller removes it.
type Result struct {
	// ManifestPath is the absolute path of the located SKILL.md.
	ManifestPath string

	// RootDir is the directory the archive was extracted into.
	RootDir string
}

// Extract unpacks the archive at archivePath into destDir and locates the
// SKILL.md manifest within it. The format is chosen from originalName's
// suffix. Returns (nil, nil) when the format is unsupported or no manifest
// is present anywhere in the extracted tree; both are expected outcomes the
// caller classifies, not errors.
func Extract(archivePath, destDir, originalName string) (*Result, error) {
	switch FormatFromName(originalName) {
	case FormatZip:
		if err := extractZip(archivePath, destDir); err != nil {
			return nil, err
		}
	case FormatTarGz:
		if err := extractTarGz(archivePath, destDir); err != nil {
			return nil, err
		}
	default:
		return nil, nil
	}

	manifestPath, err := FindManifest(destDir, DefaultMaxDepth)
	if err != nil {
		return nil, err
	}
	if manifestPath == "" {
		return nil, nil
	}

	return &Result{ManifestPath: manifestPath, RootDir: destDir}, nil
}

// extractZip extracts a zip archive into destDir.
func extractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer func() { _ = reader.Close() }()

	if len(reader.File) > MaxEntries {
		return fmt.Errorf("archive has %d entries, maximum is %d", len(reader.File), MaxEntries)
	}

	var total int64
	for _, entry := range reader.File {
		target, err := resolveEntryPath(destDir, entry.Name)
		if err != nil {
			return err
		}

		mode := entry.Mode()
		if mode&os.ModeSymlink != 0 {
			return fmt.Errorf("archive contains disallowed link type: %s", entry.Name)
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("creating directory %s: %w", entry.Name, err)
			}
			continue
		}

		if !mode.IsRegular() {
			return fmt.Errorf("archive contains disallowed entry type: %s", entry.Name)
		}

		rc, err := entry.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", entry.Name, err)
		}

		written, err := writeEntry(target, rc, entry.Name)
		_ = rc.Close()
		if err != nil {
			return err
		}

		total += written
		if total > MaxTotalSize {
			return fmt.Errorf("archive exceeds maximum extracted size of %d bytes", MaxTotalSize)
		}
	}

	return nil
}

// extractTarGz extracts a gzip-compressed tar archive into destDir.
func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath) //#nosec G304 -- path is a staged scratch file
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer func() { _ = gr.Close() }()

	tr := tar.NewReader(gr)
	var total int64
	entries := 0

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		entries++
		if entries > MaxEntries {
			return fmt.Errorf("archive has more than %d entries", MaxEntries)
		}

		target, err := resolveEntryPath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("creating directory %s: %w", hdr.Name, err)
			}
			continue
		case tar.TypeSymlink, tar.TypeLink:
			return fmt.Errorf("archive contains disallowed link type: %s", hdr.Name)
		case tar.TypeReg:
			// fallthrough to extraction below
		default:
			return fmt.Errorf("archive contains disallowed entry type %d: %s", hdr.Typeflag, hdr.Name)
		}

		if hdr.Size > MaxEntryFileSize {
			return fmt.Errorf("file %s exceeds maximum size of %d bytes", hdr.Name, MaxEntryFileSize)
		}

		written, err := writeEntry(target, tr, hdr.Name)
		if err != nil {
			return err
		}

		total += written
		if total > MaxTotalSize {
			return fmt.Errorf("archive exceeds maximum extracted size of %d bytes", MaxTotalSize)
		}
	}

	return nil
}

// resolveEntryPath validates an archive entry name and maps it to a path
// under destDir. Traversal sequences and absolute paths are rejected before
// anything touches the filesystem.
func resolveEntryPath(destDir, name string) (string, error) {
	cleaned := path.Clean(filepath.ToSlash(name))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path traversal detected in archive: %s", name)
	}
	if path.IsAbs(cleaned) {
		return "", fmt.Errorf("absolute path not allowed in archive: %s", name)
	}

	target := filepath.Join(destDir, filepath.FromSlash(cleaned))

	// Join cleans again; keep a belt-and-braces containment check.
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal detected in archive: %s", name)
	}

	return target, nil
}

// writeEntry streams one archive entry to disk, enforcing the per-file size
// ceiling while reading.
func writeEntry(target string, r io.Reader, name string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return 0, fmt.Errorf("creating parent directory for %s: %w", name, err)
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //#nosec G304 -- target validated by resolveEntryPath
	if err != nil {
		return 0, fmt.Errorf("creating file %s: %w", name, err)
	}

	written, err := io.Copy(out, io.LimitReader(r, MaxEntryFileSize+1))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("writing %s: %w", name, err)
	}
	if written > MaxEntryFileSize {
		return 0, fmt.Errorf("file %s exceeds maximum size of %d bytes", name, MaxEntryFileSize)
	}

	return written, nil
}
