// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/node/internal/gateway"
	"github.com/taibuivan/node/internal/platform/view"
	"github.com/taibuivan/node/internal/post"
	"github.com/taibuivan/node/internal/render"
)

// # Fakes

type fakeBackend struct {
	post     *gateway.Post
	comments []gateway.Comment
	err      error

	created  *gateway.PostInput
	updated  *gateway.PostInput
	liked    string
	comment  string
	reported map[string]string
	uploaded []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		post: &gateway.Post{
			ID:      "p1",
			Title:   "Hello NODE",
			Content: "Welcome **aboard**\n\n<img src=x onerror=alert(1)>",
			Author:  gateway.Author{Name: "Kim"},
		},
		comments: []gateway.Comment{{ID: "c1", Content: "Nice <b>post</b>", Author: gateway.Author{Name: "Lee"}}},
		reported: make(map[string]string),
	}
}

func (backend *fakeBackend) Get(context.Context, string) (*gateway.Post, error) {
	return backend.post, backend.err
}

func (backend *fakeBackend) Create(_ context.Context, input gateway.PostInput) (*gateway.Post, error) {
	backend.created = &input
	if backend.err != nil {
		return nil, backend.err
	}
	return &gateway.Post{ID: "p9"}, nil
}

func (backend *fakeBackend) Update(_ context.Context, _ string, input gateway.PostInput) (*gateway.Post, error) {
	backend.updated = &input
	return backend.post, backend.err
}

func (backend *fakeBackend) Like(_ context.Context, id string) error {
	backend.liked = id
	return backend.err
}

func (backend *fakeBackend) Scrap(context.Context, string) error { return backend.err }

func (backend *fakeBackend) Report(_ context.Context, id, reason string) error {
	backend.reported["post:"+id] = reason
	return backend.err
}

func (backend *fakeBackend) Comments(context.Context, string) ([]gateway.Comment, error) {
	return backend.comments, nil
}

func (backend *fakeBackend) AddComment(_ context.Context, _ string, content string) (*gateway.Comment, error) {
	backend.comment = content
	return &gateway.Comment{ID: "c2"}, backend.err
}

func (backend *fakeBackend) LikeComment(_ context.Context, id string) error {
	backend.liked = id
	return backend.err
}

func (backend *fakeBackend) ReportComment(_ context.Context, id, reason string) error {
	backend.reported["comment:"+id] = reason
	return backend.err
}

func (backend *fakeBackend) UploadImage(_ context.Context, _ string, content io.Reader) (*gateway.Image, error) {
	backend.uploaded, _ = io.ReadAll(content)
	return &gateway.Image{URL: "https://img.node.dev/1.png"}, backend.err
}

// # Helpers

func newRouter(backend post.Backend) chi.Router {
	router := chi.NewRouter()
	post.NewHandler(backend, render.NewCached(render.New(), nil), view.MustNew()).RegisterRoutes(router)
	return router
}

func serve(router chi.Router, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func postForm(target string, values url.Values) *http.Request {
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return request
}

func hasFlash(recorder *httptest.ResponseRecorder) bool {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == view.FlashCookieName && cookie.MaxAge > 0 {
			return true
		}
	}
	return false
}

// # Reading

/*
TestShow verifies the body goes through the pipeline and comments are escaped.
*/
func TestShow(t *testing.T) {
	recorder := serve(newRouter(newFakeBackend()), httptest.NewRequest(http.MethodGet, "/post/p1", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `<span class="`+render.ClassDropCap+`">W</span>elcome`)
	assert.NotContains(t, body, "onerror")
	assert.Contains(t, body, "Nice &lt;b&gt;post&lt;/b&gt;")
	assert.Contains(t, body, `action="/post/p1/comments/c1/like"`)
}

/*
TestShow_NotFound verifies backend failures render the normalized message.
*/
func TestShow_NotFound(t *testing.T) {
	backend := newFakeBackend()
	backend.err = gateway.Normalize(&gateway.StatusError{Status: http.StatusNotFound})

	recorder := serve(newRouter(backend), httptest.NewRequest(http.MethodGet, "/post/missing", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), gateway.MsgNotFound)
}

// # Actions

/*
TestActions verifies like, scrap and comment like redirect back to the post.
*/
func TestActions(t *testing.T) {
	for _, target := range []string{"/post/p1/like", "/post/p1/scrap", "/post/p1/comments/c1/like"} {
		t.Run(target, func(t *testing.T) {
			recorder := serve(newRouter(newFakeBackend()), postForm(target, url.Values{}))

			assert.Equal(t, http.StatusSeeOther, recorder.Code)
			assert.Equal(t, "/post/p1", recorder.Header().Get("Location"))
			assert.False(t, hasFlash(recorder))
		})
	}
}

/*
TestActions_Failure verifies a failed action leaves a flash for the post page.
*/
func TestActions_Failure(t *testing.T) {
	backend := newFakeBackend()
	backend.err = errors.New("connection refused")

	recorder := serve(newRouter(backend), postForm("/post/p1/like", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.True(t, hasFlash(recorder))
}

/*
TestAddComment verifies comments are validated before reaching the backend.
*/
func TestAddComment(t *testing.T) {
	backend := newFakeBackend()
	router := newRouter(backend)

	recorder := serve(router, postForm("/post/p1/comments", url.Values{"content": {"  "}}))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "This field is required")
	assert.Empty(t, backend.comment)

	recorder = serve(router, postForm("/post/p1/comments", url.Values{"content": {"Great read"}}))
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "Great read", backend.comment)
}

// # Writing

/*
TestCreate verifies publishing redirects to the new post.
*/
func TestCreate(t *testing.T) {
	backend := newFakeBackend()

	recorder := serve(newRouter(backend), postForm("/new-post", url.Values{
		"title":   {"First"},
		"content": {"# Hi"},
	}))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/post/p9", recorder.Header().Get("Location"))
	require.NotNil(t, backend.created)
	assert.Equal(t, "# Hi", backend.created.Content)
}

/*
TestCreate_Validation verifies the editor keeps the draft on failure.
*/
func TestCreate_Validation(t *testing.T) {
	backend := newFakeBackend()

	recorder := serve(newRouter(backend), postForm("/new-post", url.Values{"content": {"draft body"}}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "draft body")
	assert.Nil(t, backend.created)
}

/*
TestUpdate verifies the edit form prefills and saves.
*/
func TestUpdate(t *testing.T) {
	backend := newFakeBackend()
	router := newRouter(backend)

	recorder := serve(router, httptest.NewRequest(http.MethodGet, "/post/p1/edit", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `value="Hello NODE"`)

	recorder = serve(router, postForm("/post/p1/edit", url.Values{"title": {"Renamed"}, "content": {"Body"}}))
	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	require.NotNil(t, backend.updated)
	assert.Equal(t, "Renamed", backend.updated.Title)
}

/*
TestPreview verifies the editor preview uses the same pipeline.
*/
func TestPreview(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/new-post/preview", strings.NewReader(`{"content":"# Title\n\n<script>x</script>Hello"}`))
	recorder := serve(newRouter(newFakeBackend()), request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			HTML string `json:"html"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data.HTML, render.ClassHeading1)
	assert.NotContains(t, envelope.Data.HTML, "<script")
}

/*
TestPreview_InvalidJSON verifies malformed bodies are rejected.
*/
func TestPreview_InvalidJSON(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/new-post/preview", strings.NewReader(`{`))
	recorder := serve(newRouter(newFakeBackend()), request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func multipartRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(post.FieldImage, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/images", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return request
}

/*
TestUploadImage verifies the upload is forwarded and its address returned.
*/
func TestUploadImage(t *testing.T) {
	backend := newFakeBackend()

	recorder := serve(newRouter(backend), multipartRequest(t, "cat.png", []byte("png-bytes")))

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, []byte("png-bytes"), backend.uploaded)
	assert.Contains(t, recorder.Body.String(), "https://img.node.dev/1.png")
}

/*
TestUploadImage_Rejected verifies missing and unsupported files.
*/
func TestUploadImage_Rejected(t *testing.T) {
	backend := newFakeBackend()
	router := newRouter(backend)

	recorder := serve(router, multipartRequest(t, "script.svg", []byte("<svg/>")))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/images", strings.NewReader(""))
	recorder = serve(router, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	assert.Nil(t, backend.uploaded)
}

// # Reporting

/*
TestReport_Flow walks the report flow for a post.
*/
func TestReport_Flow(t *testing.T) {
	backend := newFakeBackend()
	router := newRouter(backend)

	// 1. Selecting
	recorder := serve(router, httptest.NewRequest(http.MethodGet, "/post/p1/report", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `value="spam"`)

	// 2. Next without a reason
	recorder = serve(router, postForm("/post/p1/report", url.Values{"phase": {"selecting"}, "action": {"next"}}))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Choose a reason")

	// 3. Next with a reason
	recorder = serve(router, postForm("/post/p1/report", url.Values{
		"phase": {"selecting"}, "reason": {"abuse"}, "action": {"next"},
	}))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `name="phase" value="confirming"`)
	assert.Empty(t, backend.reported)

	// 4. Confirm submits
	recorder = serve(router, postForm("/post/p1/report", url.Values{
		"phase": {"confirming"}, "reason": {"abuse"}, "action": {"confirm"},
	}))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "report was sent")
	assert.Equal(t, "abuse", backend.reported["post:p1"])
}

/*
TestReport_Comment verifies comment reports reach the comment endpoint.
*/
func TestReport_Comment(t *testing.T) {
	backend := newFakeBackend()

	recorder := serve(newRouter(backend), postForm("/post/p1/comments/c1/report", url.Values{
		"phase": {"confirming"}, "reason": {"spam"}, "action": {"confirm"},
	}))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "spam", backend.reported["comment:c1"])
}

/*
TestReport_BackendFailure verifies a failed submission stays on confirming.
*/
func TestReport_BackendFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.err = gateway.Normalize(&gateway.StatusError{Status: http.StatusConflict})

	recorder := serve(newRouter(backend), postForm("/post/p1/report", url.Values{
		"phase": {"confirming"}, "reason": {"spam"}, "action": {"confirm"},
	}))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, gateway.MsgConflict)
	assert.Contains(t, body, `name="phase" value="confirming"`)
}

/*
TestReport_InvalidTransition verifies forged actions restart the flow.
*/
func TestReport_InvalidTransition(t *testing.T) {
	recorder := serve(newRouter(newFakeBackend()), postForm("/post/p1/report", url.Values{
		"phase": {"selecting"}, "action": {"confirm"},
	}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `name="phase" value="selecting"`)
}
