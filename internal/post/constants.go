// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

// # Form Fields

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldImage   = "image"
	FieldPhase   = "phase"
	FieldReason  = "reason"
	FieldAction  = "action"
)

// # Limits

const (
	MaxTitleLength   = 100
	MaxContentLength = 20000
	MaxCommentLength = 1000

	// MaxImageBytes caps a single image upload.
	MaxImageBytes = 10 << 20
)
