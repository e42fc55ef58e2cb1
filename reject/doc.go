// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package reject defines the rejection taxonomy for skill ingestion.
//
// Every way an upload can be turned away is a distinct Kind, so the HTTP
// layer can map each to its own status code and user-facing message without
// string matching. Rejections travel as ordinary errors and are recovered
// with errors.As; anything that is not a Rejection is an internal failure
// (disk I/O, corrupt state) and maps to a 500.
package reject
