// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"context"
	"io"

	"github.com/taibuivan/node/pkg/pagination"
)

// # Posts Capability

// Posts exposes post, comment and image endpoints.
type Posts struct {
	client *Client
}

// NewPosts binds the posts capability to a [Client].
func NewPosts(client *Client) *Posts {
	return &Posts{client: client}
}

// List returns one page of the home feed.
func (posts *Posts) List(ctx context.Context, params pagination.Params) (*PostPage, error) {
	var page PostPage
	if err := posts.client.Get(ctx, "/api/posts", params.Query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Search returns one page of posts matching the keyword.
func (posts *Posts) Search(ctx context.Context, keyword string, params pagination.Params) (*PostPage, error) {
	query := params.Query()
	query.Set("q", keyword)

	var page PostPage
	if err := posts.client.Get(ctx, "/api/posts/search", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns a single post.
func (posts *Posts) Get(ctx context.Context, id string) (*Post, error) {
	var post Post
	if err := posts.client.Get(ctx, "/api/posts/"+segment(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create publishes a new post.
func (posts *Posts) Create(ctx context.Context, input PostInput) (*Post, error) {
	var post Post
	if err := posts.client.Post(ctx, "/api/posts", input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces the title and body of a post.
func (posts *Posts) Update(ctx context.Context, id string, input PostInput) (*Post, error) {
	var post Post
	if err := posts.client.Put(ctx, "/api/posts/"+segment(id), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Like toggles the visitor's like on a post.
func (posts *Posts) Like(ctx context.Context, id string) error {
	return posts.client.Post(ctx, "/api/posts/"+segment(id)+"/like", nil, nil)
}

// Scrap toggles the visitor's bookmark on a post.
func (posts *Posts) Scrap(ctx context.Context, id string) error {
	return posts.client.Post(ctx, "/api/posts/"+segment(id)+"/scrap", nil, nil)
}

// Report flags a post for moderation.
func (posts *Posts) Report(ctx context.Context, id, reason string) error {
	return posts.client.Post(ctx, "/api/posts/"+segment(id)+"/report", map[string]string{"reason": reason}, nil)
}

// Comments lists the comments of a post.
func (posts *Posts) Comments(ctx context.Context, postID string) ([]Comment, error) {
	var comments []Comment
	if err := posts.client.Get(ctx, "/api/posts/"+segment(postID)+"/comments", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment appends a comment to a post.
func (posts *Posts) AddComment(ctx context.Context, postID, content string) (*Comment, error) {
	var comment Comment
	body := map[string]string{"content": content}
	if err := posts.client.Post(ctx, "/api/posts/"+segment(postID)+"/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// LikeComment toggles the visitor's like on a comment.
func (posts *Posts) LikeComment(ctx context.Context, commentID string) error {
	return posts.client.Post(ctx, "/api/comments/"+segment(commentID)+"/like", nil, nil)
}

// ReportComment flags a comment for moderation.
func (posts *Posts) ReportComment(ctx context.Context, commentID, reason string) error {
	return posts.client.Post(ctx, "/api/comments/"+segment(commentID)+"/report", map[string]string{"reason": reason}, nil)
}

// UploadImage forwards an image to the backend's image host.
func (posts *Posts) UploadImage(ctx context.Context, filename string, content io.Reader) (*Image, error) {
	var image Image
	if err := posts.client.PostMultipart(ctx, "/api/images", "image", filename, content, &image); err != nil {
		return nil, err
	}
	return &image, nil
}
