// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package ingest

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// MaxDownloadSize is the maximum payload size fetched from a remote URL
// (100MB).
const MaxDownloadSize = 100 * 1024 * 1024

// fetch downloads the payload at rawURL and returns the bytes plus the best
// available filename hint. The hint is corroborating only; format detection
// trusts the payload's magic bytes over anything the server claims.
func (ing *Ingestor) fetch(ctx context.Context, rawURL string) (data []byte, filename string, err error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}

	resp, err := ing.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, MaxDownloadSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(data)) > MaxDownloadSize {
		return nil, "", fmt.Errorf("payload exceeds maximum download size of %d bytes", MaxDownloadSize)
	}

	return data, filenameHint(parsed, resp.Header), nil
}

// filenameHint derives a filename from the response, preferring a validated
// Content-Disposition over the URL path, with Content-Type as the last
// resort. Headers are server controlled, so the result is only ever a hint.
func filenameHint(parsed *url.URL, headers http.Header) string {
	if cd := headers.Get("Content-Disposition"); cd != "" && httpguts.ValidHeaderFieldValue(cd) {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := sanitizeFilename(params["filename"]); name != "" {
				return name
			}
		}
	}

	if name := sanitizeFilename(path.Base(parsed.Path)); name != "" && strings.Contains(name, ".") {
		return name
	}

	switch mediaTypeOf(headers.Get("Content-Type")) {
	case "application/zip":
		return "download.zip"
	case "application/gzip", "application/x-gzip", "application/x-tar":
		return "download.tar.gz"
	case "text/markdown":
		return "SKILL.md"
	}

	return ""
}

// sanitizeFilename strips any path components from a hinted filename.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return ""
	}
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return ""
	}
	return base
}

// mediaTypeOf parses the media type out of a Content-Type header value.
func mediaTypeOf(contentType string) string {
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}
