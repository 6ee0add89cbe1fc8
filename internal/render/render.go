// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render turns author-supplied markdown into sanitized, styled HTML
fragments for post bodies and previews.

Pipeline:

 1. Parse: goldmark with GFM extensions and hard line breaks. Raw HTML is
    passed through so that step 2 decides what survives.
 2. Sanitize: bluemonday UGC policy. Mandatory, always before step 3.
 3. Post-process: a detached golang.org/x/net/html tree receives the drop-cap
    and the heading, code, list and table classes, then is serialized.

[Renderer.Render] is pure and synchronous. Feeding its output back in is not
a no-op: the drop-cap span survives sanitization and receives a second one.
*/
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/unicode/norm"
)

// Renderer holds the configured markdown parser and sanitizer policy.
//
// It is safe for concurrent use.
type Renderer struct {
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// New constructs a [Renderer].
func New() *Renderer {
	return &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
				gmhtml.WithUnsafe(),
			),
		),
		policy: newPolicy(),
	}
}

// newPolicy builds the sanitizer. Class and style attributes never survive,
// so authors cannot forge the styling applied in step 3.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowNoAttrs().OnElements("span")
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// Render converts markdown into a sanitized, styled HTML fragment.
// Empty input yields empty output.
func (renderer *Renderer) Render(markdown string) (string, error) {
	sanitized, err := renderer.sanitized(markdown)
	if err != nil || sanitized == "" {
		return "", err
	}

	styled, err := postProcess(sanitized)
	if err != nil {
		return "", fmt.Errorf("render: post-process: %w", err)
	}

	return styled, nil
}

// Excerpt returns at most limit runes of the post's plain text, for feed cards.
func (renderer *Renderer) Excerpt(markdown string, limit int) string {
	sanitized, err := renderer.sanitized(markdown)
	if err != nil || sanitized == "" {
		return ""
	}

	text, err := plainText(sanitized)
	if err != nil {
		return ""
	}

	runes := []rune(strings.Join(strings.Fields(text), " "))
	if limit <= 0 || len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// sanitized runs steps 1 and 2.
func (renderer *Renderer) sanitized(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	// Composed and decomposed input must produce the same drop-cap
	source := norm.NFC.String(markdown)

	var buffer bytes.Buffer
	if err := renderer.markdown.Convert([]byte(source), &buffer); err != nil {
		return "", fmt.Errorf("render: parse markdown: %w", err)
	}

	return renderer.policy.Sanitize(buffer.String()), nil
}
