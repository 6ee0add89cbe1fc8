// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed serves the list pages: the home feed shown at the root to
signed-in members, the public landing page, and search.

Cards carry a plain-text excerpt of each post body. The full rendering
pipeline only runs on the post page.
*/
package feed

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/pkg/pagination"
)

// ExcerptLength is the number of runes shown on a feed card.
const ExcerptLength = 160

// Backend is the part of the gateway this package consumes.
type Backend interface {
	List(ctx context.Context, params pagination.Params) (*gateway.PostPage, error)
	Search(ctx context.Context, keyword string, params pagination.Params) (*gateway.PostPage, error)
}

// Excerpter produces card previews from markdown.
type Excerpter interface {
	Excerpt(markdown string, limit int) string
}

// Card is one entry of a feed.
type Card struct {
	ID           string
	Title        string
	Author       string
	Excerpt      string
	LikeCount    int
	CommentCount int
	CreatedAt    time.Time
}

// Page is the payload of the feed template.
type Page struct {
	Cards     []Card
	Meta      pagination.Meta
	Query     string
	Searching bool
}

// PageURL links to another page of the same listing.
func (page Page) PageURL(number int) string {
	values := url.Values{"page": {strconv.Itoa(number)}}
	if page.Meta.Limit > 0 && page.Meta.Limit != pagination.DefaultLimit {
		values.Set("limit", strconv.Itoa(page.Meta.Limit))
	}

	if page.Searching {
		values.Set("q", page.Query)
		return "/search?" + values.Encode()
	}
	return "/?" + values.Encode()
}

// Handler implements the list pages.
type Handler struct {
	backend  Backend
	excerpts Excerpter
	pages    *view.Engine
}

// NewHandler constructs a new feed [Handler].
func NewHandler(backend Backend, excerpts Excerpter, pages *view.Engine) *Handler {
	return &Handler{backend: backend, excerpts: excerpts, pages: pages}
}

// RegisterRoutes mounts the guarded list pages. Home and Landing are mounted
// by the server behind the root guard.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/search", handler.search)
}

// Home renders the member feed.
func (handler *Handler) Home(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.backend.List(request.Context(), pagination.FromRequest(request))
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageFeed, view.Data{
		Title: "Home",
		Page:  handler.page(result, "", false),
	})
}

// Landing renders the public front page.
func (handler *Handler) Landing(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageLanding, view.Data{})
}

/*
GET /search?q=keyword

Description: An empty keyword shows the search box without calling the backend.
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	keyword := strings.TrimSpace(request.URL.Query().Get("q"))

	page := Page{Query: keyword, Searching: true}
	if keyword != "" {
		result, err := handler.backend.Search(request.Context(), keyword, pagination.FromRequest(request))
		if err != nil {
			handler.pages.Error(writer, request, err)
			return
		}
		page = handler.page(result, keyword, true)
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageFeed, view.Data{
		Title: "Search",
		Page:  page,
	})
}

func (handler *Handler) page(result *gateway.PostPage, keyword string, searching bool) Page {
	cards := make([]Card, 0, len(result.Items))
	for _, post := range result.Items {
		cards = append(cards, Card{
			ID:           post.ID,
			Title:        post.Title,
			Author:       post.Author.Name,
			Excerpt:      handler.excerpts.Excerpt(post.Content, ExcerptLength),
			LikeCount:    post.LikeCount,
			CommentCount: post.CommentCount,
			CreatedAt:    post.CreatedAt,
		})
	}

	return Page{Cards: cards, Meta: result.Meta, Query: keyword, Searching: searching}
}
