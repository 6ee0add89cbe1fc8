// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// # Style Classes

const (
	ClassDropCap = "float-left mr-2 text-5xl font-bold leading-none"

	ClassHeading1     = "text-3xl font-bold mt-6 mb-4"
	ClassHeading2     = "text-2xl font-semibold mt-5 mb-3"
	ClassHeadingSmall = "text-xl font-semibold mt-4 mb-2"

	ClassCodeBlock = "bg-gray-100 rounded-md p-4 my-4 overflow-x-auto"
	ClassCode      = "font-mono text-sm"

	ClassList        = "pl-6 my-4 space-y-1"
	ClassListDisc    = "list-disc"
	ClassListDecimal = "list-decimal"
	ClassListItem    = "my-1"

	ClassTable      = "border-collapse w-full my-4"
	ClassCell       = "border border-gray-300 px-3 py-2"
	ClassHeaderCell = "bg-gray-100 font-semibold"
)

// postProcess parses the sanitized fragment into a detached tree, applies
// the drop-cap and the structural classes, and serializes it back.
func postProcess(fragment string) (string, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	applyDropCap(root)
	walk(root, applyClasses)

	var builder strings.Builder
	for child := root.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&builder, child); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}

// plainText returns the text content of a fragment.
func plainText(fragment string) (string, error) {
	root, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}
	return textContent(root), nil
}

// parseFragment parses HTML in a <body> context under a detached container.
func parseFragment(fragment string) (*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, err
	}

	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, node := range nodes {
		root.AppendChild(node)
	}

	return root, nil
}

// # Drop-Cap

// applyDropCap wraps the first letter or digit of the first paragraph with
// visible text in its own span. Paragraphs holding only an image have no
// text content and are skipped. When that paragraph has no letter or digit
// at all, nothing is wrapped.
func applyDropCap(root *html.Node) {
	paragraph := find(root, func(node *html.Node) bool {
		return node.DataAtom == atom.P && strings.TrimSpace(textContent(node)) != ""
	})
	if paragraph == nil {
		return
	}

	text := find(paragraph, func(node *html.Node) bool {
		return node.Type == html.TextNode && strings.IndexFunc(node.Data, isAlphanumeric) >= 0
	})
	if text == nil {
		return
	}

	index := strings.IndexFunc(text.Data, isAlphanumeric)
	_, size := utf8.DecodeRuneInString(text.Data[index:])
	before, letter, after := text.Data[:index], text.Data[index:index+size], text.Data[index+size:]

	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: ClassDropCap}},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: letter})

	parent := text.Parent
	if before != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: before}, text)
	}
	parent.InsertBefore(span, text)

	if after == "" {
		parent.RemoveChild(text)
		return
	}
	text.Data = after
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// # Structural Classes

func applyClasses(node *html.Node) {
	switch node.DataAtom {
	case atom.H1:
		addClass(node, ClassHeading1)
	case atom.H2:
		addClass(node, ClassHeading2)
	case atom.H3, atom.H4, atom.H5, atom.H6:
		addClass(node, ClassHeadingSmall)
	case atom.Pre:
		addClass(node, ClassCodeBlock)
	case atom.Code:
		if node.Parent != nil && node.Parent.DataAtom == atom.Pre {
			addClass(node, ClassCode)
		}
	case atom.Ul:
		addClass(node, ClassList, ClassListDisc)
	case atom.Ol:
		addClass(node, ClassList, ClassListDecimal)
	case atom.Li:
		addClass(node, ClassListItem)
	case atom.Table:
		addClass(node, ClassTable)
	case atom.Th:
		addClass(node, ClassCell, ClassHeaderCell)
	case atom.Td:
		addClass(node, ClassCell)
	}
}

// addClass merges class tokens into the node's class attribute, keeping
// existing tokens and skipping duplicates.
func addClass(node *html.Node, classes ...string) {
	var tokens []string
	seen := make(map[string]bool)
	position := -1

	for i, attribute := range node.Attr {
		if attribute.Key == "class" {
			position = i
			for _, token := range strings.Fields(attribute.Val) {
				if !seen[token] {
					seen[token] = true
					tokens = append(tokens, token)
				}
			}
		}
	}

	for _, class := range classes {
		for _, token := range strings.Fields(class) {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}

	value := strings.Join(tokens, " ")
	if position >= 0 {
		node.Attr[position].Val = value
		return
	}
	node.Attr = append(node.Attr, html.Attribute{Key: "class", Val: value})
}

// # Tree Helpers

// walk visits node and its descendants in document order.
func walk(node *html.Node, visit func(*html.Node)) {
	visit(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, visit)
	}
}

// find returns the first descendant of node, in document order, matching match.
func find(node *html.Node, match func(*html.Node) bool) *html.Node {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		if found := find(child, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(node *html.Node) string {
	var builder strings.Builder
	walk(node, func(current *html.Node) {
		if current.Type == html.TextNode {
			builder.WriteString(current.Data)
		}
	})
	return builder.String()
}
