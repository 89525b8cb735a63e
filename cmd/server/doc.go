// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

/*
Package main is the entry point for the Murmur server.

Murmur is a social feed and threaded discussion service: users publish
posts, like and comment on them, follow one another, and read a
personalized feed with a global fallback when their follow graph runs dry.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("murmur")
	├── DataSupervisor ("data-layer")
	│   └── Outbox relay (EVENTS_ENABLED=true)
	├── MessagingSupervisor ("messaging-layer")
	│   └── Activity consumer (EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with .env, config file and environment variables
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB through sqlx, schema created on startup
 4. Authorization: Casbin ownership policy
 5. Authentication: bearer token validation (HS256)
 6. Activity events: embedded or external NATS JetStream, badger outbox
 7. Services: feed, comment trees, posts, comments, profiles
 8. HTTP Server: Chi router with the middleware stack

# Configuration

Priority: Environment variables > Config file > Defaults

	# Server
	HTTP_PORT=5000
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Authentication
	JWT_SECRET=<32+ chars>
	TOKEN_MAX_AGE=1h

	# Storage
	DUCKDB_PATH=/data/murmur.duckdb
	SEED_DEMO_DATA=false

	# Feed
	FEED_PAGE_SIZE=10
	RECOMMEND_LIMIT=5

	# Activity events
	EVENTS_ENABLED=false
	NATS_EMBEDDED=true
	OUTBOX_PATH=/data/outbox

# Signal Handling

SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
server (draining in-flight requests up to SHUTDOWN_TIMEOUT), then the
consumer and relay. The outbox, publisher and embedded NATS server close
last, followed by the database.
*/
package main
