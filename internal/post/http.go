// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package post serves a single post and everything done to it: reading,
commenting, liking, bookmarking (scrap), reporting, writing and editing.

# Rendering

Post bodies are author-supplied markdown. They reach the page only through
the content rendering pipeline, which sanitizes before styling; the result
is then trusted by the template.

# Actions

Like, scrap and comment are plain form posts answered with a 303 back to
the post page. A failed action is shown there through a flash message.
*/
package post

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/validate"
	"github.com/taibuivan/node/internal/platform/view"
)

// # Definitions & Constructors

// Backend is the part of the gateway this package consumes.
type Backend interface {
	Get(ctx context.Context, id string) (*gateway.Post, error)
	Create(ctx context.Context, input gateway.PostInput) (*gateway.Post, error)
	Update(ctx context.Context, id string, input gateway.PostInput) (*gateway.Post, error)
	Like(ctx context.Context, id string) error
	Scrap(ctx context.Context, id string) error
	Report(ctx context.Context, id, reason string) error
	Comments(ctx context.Context, postID string) ([]gateway.Comment, error)
	AddComment(ctx context.Context, postID, content string) (*gateway.Comment, error)
	LikeComment(ctx context.Context, commentID string) error
	ReportComment(ctx context.Context, commentID, reason string) error
	UploadImage(ctx context.Context, filename string, content io.Reader) (*gateway.Image, error)
}

// Renderer turns markdown into a sanitized HTML fragment.
type Renderer interface {
	Render(ctx context.Context, markdown string) (string, error)
}

// Handler implements the post pages.
type Handler struct {
	backend  Backend
	renderer Renderer
	pages    *view.Engine
}

// NewHandler constructs a new post [Handler].
func NewHandler(backend Backend, renderer Renderer, pages *view.Engine) *Handler {
	return &Handler{backend: backend, renderer: renderer, pages: pages}
}

// RegisterRoutes mounts the post pages. All of them are guarded.
//
// # Endpoints
//   - GET  /post/{id}
//   - POST /post/{id}/like, /post/{id}/scrap, /post/{id}/comments
//   - POST /post/{id}/comments/{commentID}/like
//   - GET, POST /post/{id}/report, /post/{id}/comments/{commentID}/report
//   - GET, POST /new-post, /post/{id}/edit
//   - POST /new-post/preview (JSON), /images (multipart)
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/new-post", handler.newPostPage)
	router.Post("/new-post", handler.create)
	router.Post("/new-post/preview", handler.preview)
	router.Post("/images", handler.uploadImage)

	router.Route("/post/{id}", func(r chi.Router) {
		r.Get("/", handler.show)
		r.Post("/like", handler.like)
		r.Post("/scrap", handler.scrap)
		r.Post("/comments", handler.addComment)
		r.Post("/comments/{commentID}/like", handler.likeComment)
		r.Get("/edit", handler.editPage)
		r.Post("/edit", handler.update)

		r.Get("/report", handler.reportPost)
		r.Post("/report", handler.reportPost)
		r.Get("/comments/{commentID}/report", handler.reportComment)
		r.Post("/comments/{commentID}/report", handler.reportComment)
	})
}

// # Reading

// Page is the payload of the post template.
type Page struct {
	Post     *gateway.Post
	Body     template.HTML
	Comments []gateway.Comment
}

/*
GET /post/{id}

Description: Loads the post and its comments, then renders the body through
the content pipeline.

Response:
  - 200: Post page
  - 404: "Resource not found."
*/
func (handler *Handler) show(writer http.ResponseWriter, request *http.Request) {
	handler.renderPost(writer, request, http.StatusOK, nil)
}

// renderPost renders the post page, optionally with comment form errors.
func (handler *Handler) renderPost(writer http.ResponseWriter, request *http.Request, status int, failure error) {
	ctx := request.Context()
	id := requestutil.Param(request, "id")

	// 1. Load
	post, err := handler.backend.Get(ctx, id)
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	comments, err := handler.backend.Comments(ctx, id)
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	// 2. Render the body
	body, err := handler.renderer.Render(ctx, post.Content)
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	data := view.Data{
		Title: post.Title,
		Page: Page{
			Post: post,
			// The fragment has been through the sanitizer
			Body:     template.HTML(body),
			Comments: comments,
		},
		Errors: validate.FieldMessages(failure),
	}
	handler.pages.Render(writer, request, status, view.PagePost, data)
}

// # Actions

func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	handler.act(writer, request, id, handler.backend.Like(request.Context(), id))
}

func (handler *Handler) scrap(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	handler.act(writer, request, id, handler.backend.Scrap(request.Context(), id))
}

func (handler *Handler) likeComment(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	err := handler.backend.LikeComment(request.Context(), requestutil.Param(request, "commentID"))
	handler.act(writer, request, id, err)
}

/*
POST /post/{id}/comments

Request:
  - Form: content

Response:
  - 303: Back to the post
  - 400: Post page with the field error
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	content := requestutil.FormValue(request, FieldContent)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxCommentLength)
	if err := validator.Err(); err != nil {
		handler.renderPost(writer, request, http.StatusBadRequest, err)
		return
	}

	_, err := handler.backend.AddComment(request.Context(), id, content)
	handler.act(writer, request, id, err)
}

// act finishes a form action on post id: back to the post, carrying the
// failure message when there is one.
func (handler *Handler) act(writer http.ResponseWriter, request *http.Request, id string, err error) {
	if err != nil {
		view.SetFlash(writer, gateway.Normalize(err).Message)
	}
	http.Redirect(writer, request, postURL(id), http.StatusSeeOther)
}

func postURL(id string) string {
	return "/post/" + url.PathEscape(id)
}
