// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package archive safely extracts untrusted skill archives and locates the
SKILL.md manifest inside them.

Supported formats are zip and gzip-compressed tar, detected from the original
file name (Extract) or from leading magic bytes (DetectFormat, which the
upload path prefers because file names and HTTP headers are caller
controlled). Extraction enforces the same hardening for both formats: no path
traversal outside the destination directory, no symlinks, hardlinks or device
entries, and per-file, total-size and entry-count ceilings to bound
decompression bombs.

Manifest discovery is breadth-first with a depth ceiling, so a root-level
SKILL.md is always preferred over a nested one.
*/
package archive
