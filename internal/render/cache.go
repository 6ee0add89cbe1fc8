// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"context"
	"encoding/hex"
	"log/slog"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/node/internal/platform/constants"
	"github.com/taibuivan/node/internal/platform/ctxutil"
)

// pipelineVersion is part of every cache key. Bump it whenever the policy
// or the post-processing rules change so stale fragments are never served.
const pipelineVersion = "v1"

// # Cache Contract

// Cache stores rendered fragments by key.
type Cache interface {

	/*
		Get returns the cached fragment.

		Returns:
		  - string: The fragment
		  - bool: Whether the key was present
		  - error: Connectivity failures
	*/
	Get(ctx context.Context, key string) (string, bool, error)

	/*
		Set stores a fragment.

		Returns:
		  - error: Connectivity failures
	*/
	Set(ctx context.Context, key, fragment string) error
}

// # Cached Renderer

// Cached puts a [Cache] in front of a [Renderer]. Cache failures are logged
// and bypassed; they never fail a page.
type Cached struct {
	renderer *Renderer
	cache    Cache
}

// NewCached wraps renderer. A nil cache disables caching.
func NewCached(renderer *Renderer, cache Cache) *Cached {
	return &Cached{renderer: renderer, cache: cache}
}

// Render returns the fragment for markdown, from the cache when possible.
func (cached *Cached) Render(ctx context.Context, markdown string) (string, error) {
	if cached.cache == nil || markdown == "" {
		return cached.renderer.Render(markdown)
	}

	logger := ctxutil.GetLogger(ctx)
	key := Key(markdown)

	// 1. Serve from cache
	fragment, found, err := cached.cache.Get(ctx, key)
	if err != nil {
		logger.WarnContext(ctx, "render_cache_get_failed", slog.Any("error", err))
	} else if found {
		return fragment, nil
	}

	// 2. Render and remember
	fragment, err = cached.renderer.Render(markdown)
	if err != nil {
		return "", err
	}

	if err := cached.cache.Set(ctx, key, fragment); err != nil {
		logger.WarnContext(ctx, "render_cache_set_failed", slog.Any("error", err))
	}

	return fragment, nil
}

// Excerpt delegates to [Renderer.Excerpt]; excerpts are cheap and not cached.
func (cached *Cached) Excerpt(markdown string, limit int) string {
	return cached.renderer.Excerpt(markdown, limit)
}

// Key derives the cache key of a markdown source. Sources that differ only
// in Unicode normalization share a key, as they render identically.
func Key(markdown string) string {
	sum := blake2b.Sum256([]byte(norm.NFC.String(markdown)))
	return constants.RedisPrefixRender + pipelineVersion + ":" + hex.EncodeToString(sum[:])
}
