// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package reject

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind discriminates rejection reasons.
type Kind int

// Rejection kinds. Each maps to a distinct user-facing response.
const (
	// KindUnsupportedFormat: the input is neither a recognized archive nor a
	// bare manifest.
	KindUnsupportedFormat Kind = iota

	// KindManifestNotFound: the archive extracted cleanly but contains no
	// SKILL.md.
	KindManifestNotFound

	// KindManifestInvalid: the manifest failed one or more field
	// validations; Details carries every violation.
	KindManifestInvalid

	// KindNameCollision: the artifact name belongs to a different owner.
	KindNameCollision

	// KindVersionConflict: the version already exists and no overwrite was
	// confirmed. The only retryable kind.
	KindVersionConflict

	// KindNotAuthorized: the actor may not modify the existing artifact.
	KindNotAuthorized

	// KindPolicyDenied: an admission policy evaluated to false.
	KindPolicyDenied
)

// String returns the kind's wire-stable name.
func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindManifestNotFound:
		return "manifest_not_found"
	case KindManifestInvalid:
		return "manifest_invalid"
	case KindNameCollision:
		return "name_collision"
	case KindVersionConflict:
		return "version_conflict"
	case KindNotAuthorized:
		return "not_authorized"
	case KindPolicyDenied:
		return "policy_denied"
	default:
		return "unknown"
	}
}

// Rejection is a classified, terminal refusal of an ingest request.
type Rejection struct {
	kind    Kind
	message string
	details []string
	version string
}

// Error implements the error interface.
func (r *Rejection) Error() string {
	if len(r.details) == 0 {
		return r.message
	}
	return r.message + ": " + strings.Join(r.details, "; ")
}

// Kind returns the rejection kind.
func (r *Rejection) Kind() Kind {
	return r.kind
}

// Details returns the ordered detail list (validation errors), if any.
func (r *Rejection) Details() []string {
	return r.details
}

// Version returns the conflicting version string for KindVersionConflict.
func (r *Rejection) Version() string {
	return r.version
}

// Retryable reports whether the caller may retry the same request after
// user confirmation. Only version conflicts are; everything else is terminal.
func (r *Rejection) Retryable() bool {
	return r.kind == KindVersionConflict
}

// UnsupportedFormat rejects an input that is neither archive nor manifest.
func UnsupportedFormat(filename string) *Rejection {
	return &Rejection{
		kind:    KindUnsupportedFormat,
		message: fmt.Sprintf("unsupported upload format: %q", filename),
	}
}

// ManifestNotFound rejects an archive with no SKILL.md inside.
func ManifestNotFound() *Rejection {
	return &Rejection{
		kind:    KindManifestNotFound,
		message: "no SKILL.md manifest found in archive",
	}
}

// ManifestInvalid rejects a manifest that failed validation, carrying the
// full error list so the caller can surface every violation at once.
func ManifestInvalid(errs []string) *Rejection {
	return &Rejection{
		kind:    KindManifestInvalid,
		message: "invalid SKILL.md manifest",
		details: errs,
	}
}

// NameCollision rejects an upload whose name belongs to another owner.
func NameCollision(name string) *Rejection {
	return &Rejection{
		kind:    KindNameCollision,
		message: fmt.Sprintf("skill name %q is already taken", name),
	}
}

// VersionConflict rejects a duplicate version without overwrite
// confirmation. The conflicting version is carried so the UI can offer a
// confirmable retry.
func VersionConflict(version string) *Rejection {
	return &Rejection{
		kind:    KindVersionConflict,
		message: fmt.Sprintf("version %s already exists; confirm overwrite to replace it", version),
		version: version,
	}
}

// NotAuthorized rejects an actor who may not modify the artifact.
func NotAuthorized(name string) *Rejection {
	return &Rejection{
		kind:    KindNotAuthorized,
		message: fmt.Sprintf("not authorized to modify skill %q", name),
	}
}

// PolicyDenied rejects an upload that failed an admission policy.
func PolicyDenied(expr string) *Rejection {
	return &Rejection{
		kind:    KindPolicyDenied,
		message: "upload denied by admission policy",
		details: []string{expr},
	}
}

// As extracts a Rejection from an error chain.
func As(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}

// IsKind reports whether err is a Rejection of the given kind.
func IsKind(err error, k Kind) bool {
	r, ok := As(err)
	return ok && r.kind == k
}

// HTTPCode maps an error to the HTTP status code the API layer should
// return. Non-rejection errors are internal failures.
func HTTPCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	r, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch r.kind {
	case KindUnsupportedFormat, KindManifestNotFound, KindManifestInvalid:
		return http.StatusBadRequest
	case KindNameCollision, KindVersionConflict:
		return http.StatusConflict
	case KindNotAuthorized, KindPolicyDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
