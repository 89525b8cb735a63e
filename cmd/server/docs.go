// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

// Murmur API provides a social feed, posts, likes, follows and threaded
// comment discussions.
//
// @title Murmur API
// @version 1.0
// @description Social feed and threaded discussion service.
// @description
// @description ## Authentication
// @description
// @description Write endpoints require an `Authorization: Bearer <token>` header.
// @description Read endpoints accept an optional token that personalizes the
// @description feed and like flags. Mutations additionally require an activated
// @description profile (`POST /users/me`).
// @description
// @description ## Rate Limiting
// @description
// @description Reads (GET, HEAD) and writes have separate budgets per client IP,
// @description 100 and 25 requests per 5 minutes by default.
// @description
// @description ## Responses
// @description
// @description Every response carries an `actionResult` field. Field validation
// @description failures also carry `invalidProperties`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/murmur/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:5000
// @BasePath /api
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued for the viewer.
//
// @tag.name Feed
// @tag.description Personalized feed, fallback posts and recommendations
//
// @tag.name Posts
// @tag.description Post lifecycle, likes and search
//
// @tag.name Comments
// @tag.description Threaded comments
//
// @tag.name Users
// @tag.description Profiles and follows
package main
