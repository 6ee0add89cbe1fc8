// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/apperr"
	"github.com/taibuivan/node/internal/platform/constants"
	"github.com/taibuivan/node/internal/platform/requestutil"
	"github.com/taibuivan/node/internal/platform/respond"
	"github.com/taibuivan/node/internal/platform/validate"
	"github.com/taibuivan/node/internal/platform/view"
)

// EditorPage is the payload of the editor template.
type EditorPage struct {
	Action string
}

var allowedImageTypes = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// # Writing

func (handler *Handler) newPostPage(writer http.ResponseWriter, request *http.Request) {
	handler.pages.Render(writer, request, http.StatusOK, view.PageEditor, view.Data{
		Title: "New post",
		Page:  EditorPage{Action: "/new-post"},
	})
}

/*
POST /new-post

Request:
  - Form: title, content (markdown)

Response:
  - 303: Redirect to the new post
  - 400: Editor with field errors
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	input, ok := handler.editorInput(writer, request, "New post", "/new-post")
	if !ok {
		return
	}

	post, err := handler.backend.Create(request.Context(), input)
	if err != nil {
		handler.editorError(writer, request, "New post", "/new-post", input, err)
		return
	}

	http.Redirect(writer, request, postURL(post.ID), http.StatusSeeOther)
}

func (handler *Handler) editPage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	post, err := handler.backend.Get(request.Context(), id)
	if err != nil {
		handler.pages.Error(writer, request, err)
		return
	}

	handler.pages.Render(writer, request, http.StatusOK, view.PageEditor, view.Data{
		Title: "Edit post",
		Page:  EditorPage{Action: postURL(id) + "/edit"},
		Form:  map[string]string{FieldTitle: post.Title, FieldContent: post.Content},
	})
}

/*
POST /post/{id}/edit

Description: Replaces the title and body. The backend decides whether the
visitor may edit; a refusal shows "Not authorized." in the editor.
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")
	action := postURL(id) + "/edit"

	input, ok := handler.editorInput(writer, request, "Edit post", action)
	if !ok {
		return
	}

	if _, err := handler.backend.Update(request.Context(), id, input); err != nil {
		handler.editorError(writer, request, "Edit post", action, input, err)
		return
	}

	http.Redirect(writer, request, postURL(id), http.StatusSeeOther)
}

// editorInput parses and validates the editor form. It renders the failure
// itself and reports false when the caller must stop.
func (handler *Handler) editorInput(writer http.ResponseWriter, request *http.Request, title, action string) (gateway.PostInput, bool) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.pages.Error(writer, request, err)
		return gateway.PostInput{}, false
	}

	input := gateway.PostInput{
		Title:   requestutil.FormValue(request, FieldTitle),
		Content: request.PostForm.Get(FieldContent),
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, MaxContentLength)

	if err := validator.Err(); err != nil {
		handler.editorError(writer, request, title, action, input, err)
		return gateway.PostInput{}, false
	}

	return input, true
}

func (handler *Handler) editorError(writer http.ResponseWriter, request *http.Request, title, action string, input gateway.PostInput, err error) {
	appError := gateway.Normalize(err)

	handler.pages.Render(writer, request, appError.HTTPStatus, view.PageEditor, view.Data{
		Title:  title,
		Page:   EditorPage{Action: action},
		Form:   map[string]string{FieldTitle: input.Title, FieldContent: input.Content},
		Errors: validate.FieldMessages(appError),
		Flash:  appError.Message,
	})
}

// # Editor Endpoints (JSON)

type previewRequest struct {
	Content string `json:"content"`
}

/*
POST /new-post/preview

Description: Renders markdown exactly as the post page will, for the
editor's live preview.

Request:
  - Body: {"content": "markdown"}

Response:
  - 200: {"data": {"html": "fragment"}}
  - 400: Invalid JSON
*/
func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	var input previewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := (&validate.Validator{}).MaxLen(FieldContent, input.Content, MaxContentLength).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fragment, err := handler.renderer.Render(request.Context(), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldHTML: fragment})
}

/*
POST /images

Description: Forwards one image to the backend's image host and returns its
public address for insertion into the markdown.

Request:
  - Multipart: image (png, jpg, gif, webp; at most 10 MiB)

Response:
  - 201: {"data": {"url": "https://..."}}
  - 400: Missing file, wrong type or too large
*/
func (handler *Handler) uploadImage(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, MaxImageBytes+(1<<20))

	file, header, err := request.FormFile(FieldImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.BadRequest("Image is too large."))
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldImage, "An image file is required"))
		return
	}
	defer file.Close()

	if header.Size > MaxImageBytes {
		respond.Error(writer, request, apperr.BadRequest("Image is too large."))
		return
	}
	if !allowedImageTypes[strings.ToLower(filepath.Ext(header.Filename))] {
		respond.Error(writer, request, apperr.BadRequest("Unsupported image type."))
		return
	}

	image, err := handler.backend.UploadImage(request.Context(), filepath.Base(header.Filename), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{constants.FieldURL: image.URL})
}
