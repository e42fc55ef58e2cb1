// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package store keeps the original uploaded skill archives in a local
content-addressed store backed by an OCI image layout.

Archives are stored by digest, so re-uploading identical bytes is a no-op
and a version record only ever references its archive through the digest it
got back from PutArchive. Tags associate a human-readable name/version pair
with a digest for operator tooling; the ingest pipeline itself only works
with digests.
*/
package store
