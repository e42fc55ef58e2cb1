// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"bytes"
	"strings"
)

// Format identifies a supported archive encoding.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatZip
	FormatTarGz
)

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// Archive signatures.
var (
	zipMagic  = []byte{0x50, 0x4b, 0x03, 0x04} // "PK\x03\x04"
	gzipMagic = []byte{0x1f, 0x8b}
)

// DetectFormat determines the archive format from the file name and the
// leading bytes of the payload. Magic bytes take precedence over the name:
// names and HTTP headers are attacker controlled, the payload is what we
// actually extract.
func DetectFormat(filename string, head []byte) Format {
	if bytes.HasPrefix(head, zipMagic) {
		return FormatZip
	}
	if bytes.HasPrefix(head, gzipMagic) {
		return FormatTarGz
	}
	return FormatFromName(filename)
}

// FormatFromName determines the archive format from the file name alone.
// A bare ".gz" counts as tar.gz only when the remaining base name ends in
// ".tar".
func FormatFromName(filename string) Format {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".gz") && strings.HasSuffix(strings.TrimSuffix(lower, ".gz"), ".tar"):
		return FormatTarGz
	default:
		return FormatUnknown
	}
}
