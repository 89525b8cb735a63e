// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package config loads Murmur's runtime configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/murmur/config.yaml)
 3. Environment variables, mapped explicitly in envTransformFunc

A .env file in the working directory is read first with godotenv so local
development can keep secrets out of the shell profile. Variables that are
already set in the process environment are never overwritten by it.

Example:

	DUCKDB_PATH=/var/lib/murmur/murmur.duckdb
	HTTP_PORT=8080
	JWT_SECRET=change-me-to-at-least-32-characters!!
	EVENTS_ENABLED=true
*/
package config
