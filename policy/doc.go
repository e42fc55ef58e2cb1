// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package policy evaluates operator-configured admission policies against
skill metadata before it is persisted.

A policy is a CEL expression over the single variable "manifest", a map of
the merged metadata fields, and must evaluate to a boolean:

	manifest.license == 'MIT'
	manifest.name.startsWith('acme-')
	'experimental' in manifest.tags

A Gate compiles its expressions once at construction and evaluates them per
upload. Expression length and evaluation cost are bounded to keep hostile or
runaway policies from stalling the upload path. A nil Gate admits everything.
*/
package policy
