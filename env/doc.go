// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package env abstracts environment variable access behind an interface so
// configuration reads can be injected in tests.
package env
