// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package validation

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/murmur/internal/models"
)

func registerCustomValidators(v *validator.Validate) {
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("posttype", func(fl validator.FieldLevel) bool {
		return models.PostType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("commenttype", func(fl validator.FieldLevel) bool {
		return models.CommentType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("sorttype", func(fl validator.FieldLevel) bool {
		return models.SortType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("publicurl", func(fl validator.FieldLevel) bool {
		return IsPublicURL(fl.Field().String())
	})
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IsPublicURL reports whether raw is an absolute http or https URL whose
// host is not a loopback name or address. Reachability is not checked.
func IsPublicURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsUnspecified()) {
		return false
	}
	return true
}
