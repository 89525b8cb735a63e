// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package config

import (
	"fmt"
	"net/url"
)

// validateOriginURL checks a CORS origin: http or https, host required,
// no path or query. "*" is accepted as the wildcard origin.
func validateOriginURL(rawURL string) error {
	if rawURL == "*" {
		return nil
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("CORS_ORIGINS entry %q failed to parse: %w", rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("CORS_ORIGINS entry %q scheme must be http or https", rawURL)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("CORS_ORIGINS entry %q host is required", rawURL)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("CORS_ORIGINS entry %q should be an origin only, remove path: %s", rawURL, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("CORS_ORIGINS entry %q should not contain query parameters", rawURL)
	}

	return nil
}

// validateNATSURL validates that the NATS URL is properly formatted.
// Supports nats://, tls://, ws:// and wss:// with optional ports.
func validateNATSURL(rawURL string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("NATS_URL failed to parse: %w", err)
	}

	validSchemes := map[string]bool{"nats": true, "tls": true, "ws": true, "wss": true}
	if !validSchemes[parsedURL.Scheme] {
		return fmt.Errorf("NATS_URL scheme must be nats, tls, ws, or wss, got: %s", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("NATS_URL host is required (e.g., localhost:4222)")
	}

	return nil
}
