// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tomtom215/murmur/internal/api/docs" // registers the swagger document
	"github.com/tomtom215/murmur/internal/auth"
	"github.com/tomtom215/murmur/internal/middleware"
	"github.com/tomtom215/murmur/internal/models"
)

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. Authentication failures are rendered through
// respondError so they carry the usual actionResult body.
func NewRouter(handler *Handler, jwtManager *auth.JWTManager, mwConfig *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		auth:          auth.NewMiddleware(jwtManager, respondError),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup builds the HTTP handler tree.
func (router *Router) Setup() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflights are answered
	r.Use(middleware.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.NoCache)
		r.Use(middleware.Compression)

		r.NotFound(h.NotFound)
		r.MethodNotAllowed(h.NotFound)

		r.Get("/heartbeat", h.Heartbeat)
		r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))

		// Reads: a token, when valid, personalizes the response.
		r.Group(func(r chi.Router) {
			r.Use(router.auth.Optional)

			r.Get("/feed", h.Feed)

			r.Get("/posts/search", h.SearchPosts)
			r.Get("/posts/{postId}", h.GetPost)
			r.Get("/posts/{postId}/likes", h.PostLikes)
			r.Get("/posts/{postId}/likes/{userName}", h.PostLikeStatus)
			r.Get("/posts/{postId}/comments", h.PostComments)
			r.Get("/posts/{postId}/comments/{commentId}", h.PostCommentTree)

			r.Get("/comments/{commentId}", h.CommentTree)
			r.Get("/comments/{commentId}/tree", h.CommentTree)

			r.Get("/users/{userName}/profile", h.Profile)
			r.Get("/users/{userName}/avatar", h.Avatar)
			r.Get("/users/{userName}/posts", h.UserPosts)
			r.Get("/users/{userName}/comments", h.UserComments)
			r.Get("/users/{userName}/followers", h.Followers)
			r.Get("/users/{userName}/following", h.Following)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.auth.Required)

			// Open to accounts that are not activated yet.
			r.Get("/users/me", h.Me)
			r.Post("/users/me", h.UpdateMe)

			r.Group(func(r chi.Router) {
				r.Use(router.requireActivated)

				r.Post("/posts", h.CreatePost)
				r.Put("/posts/{postId}", h.UpdatePost)
				r.Delete("/posts/{postId}", h.DeletePost)
				r.Post("/posts/{postId}/likes", h.LikePost)
				r.Delete("/posts/{postId}/likes", h.UnlikePost)
				r.Post("/posts/{postId}/comments", h.CreatePostComment)

				r.Post("/comments", h.CreateComment)
				r.Put("/comments/{commentId}", h.UpdateComment)
				r.Delete("/comments/{commentId}", h.DeleteComment)
				r.Post("/comments/{commentId}/likes", h.LikeComment)
				r.Delete("/comments/{commentId}/likes", h.UnlikeComment)

				r.Post("/users/{userName}/follows", h.Follow)
				r.Delete("/users/{userName}/follows", h.Unfollow)
			})
		})
	})

	return r
}

// requireActivated rejects viewers whose account is not activated. It runs
// after auth.Required, so a viewer is always present.
func (router *Router) requireActivated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer := auth.ViewerFromContext(r.Context()).Name()
		active, err := router.handler.accounts.IsAccountActive(r.Context(), viewer)
		if err != nil {
			respondError(w, r, err)
			return
		}
		if !active {
			respondError(w, r, models.ErrInactiveUser)
			return
		}
		next.ServeHTTP(w, r)
	})
}
