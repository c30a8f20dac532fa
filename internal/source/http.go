// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Doer issues HTTP requests. *http.Client satisfies it; tests inject
// their own.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPSource fetches page definitions as JSON from the backend API.
type HTTPSource struct {
	baseURL string
	doer    Doer
}

// NewHTTPSource creates a source reading from baseURL, e.g.
// "https://backend.example.org/api". A nil doer falls back to
// http.DefaultClient.
func NewHTTPSource(baseURL string, doer Doer) *HTTPSource {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		doer:    doer,
	}
}

// Page fetches GET {base}/pages/{slug}. A 404 maps to ErrNotFound; any
// other non-200 status is an error.
func (s *HTTPSource) Page(ctx context.Context, slug string) (*PageDefinition, error) {
	endpoint := s.baseURL + "/pages/" + url.PathEscape(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %q: %w", slug, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("fetch page %q: status %d", slug, resp.StatusCode)
	}

	var def PageDefinition
	if err := json.NewDecoder(resp.Body).Decode(&def); err != nil {
		return nil, fmt.Errorf("decode page %q: %w", slug, err)
	}
	if def.Slug == "" {
		def.Slug = slug
	}
	return &def, nil
}
