// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"time"

	"github.com/taibuivan/node/internal/session"
	"github.com/taibuivan/node/pkg/pagination"
)

// # Authentication

// LoginInput is the body of the login call.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult carries the opaque session token and the identity to cache.
type LoginResult struct {
	Token string           `json:"token"`
	User  session.UserInfo `json:"user"`
}

// RegisterInput is the body of the registration call.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// # Posts

// Author is the public face of a member attached to posts, comments and messages.
type Author struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Post is a community post. Content is author-supplied markdown.
type Post struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       Author    `json:"author"`
	LikeCount    int       `json:"like_count"`
	ScrapCount   int       `json:"scrap_count"`
	CommentCount int       `json:"comment_count"`
	Liked        bool      `json:"liked"`
	Scrapped     bool      `json:"scrapped"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostInput is the body of create and update calls.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostPage is one page of the feed.
type PostPage struct {
	Items []Post          `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// Comment belongs to a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Author    Author    `json:"author"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// Image is an uploaded picture hosted by the backend.
type Image struct {
	URL string `json:"url"`
}

// # Administration

// Member is an account as seen by the approval console.
type Member struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Role      session.Role `json:"role"`
	CreatedAt time.Time    `json:"created_at"`
}

// # Messaging

// Conversation is a direct-message thread with one peer.
type Conversation struct {
	ID          string    `json:"id"`
	Peer        Author    `json:"peer"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
	Messages    []Message `json:"messages,omitempty"`
}

// Message is a single direct message.
type Message struct {
	ID      string    `json:"id"`
	Sender  Author    `json:"sender"`
	Content string    `json:"content"`
	Mine    bool      `json:"mine"`
	SentAt  time.Time `json:"sent_at"`
}

// Notification is an activity entry (like, comment, approval).
type Notification struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Link      string    `json:"link"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
