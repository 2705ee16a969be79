// Package richtext sanitizes editor-produced HTML into the limited markup
// the site renders. Normalize is idempotent: running it over already-clean
// content returns the same string.
package richtext

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedTags is the markup subset the article editor produces.
var allowedTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true,
	"strong": true, "em": true, "u": true, "s": true,
	"a": true, "ul": true, "ol": true, "li": true,
	"img": true, "br": true, "blockquote": true,
}

// allowedAttrs maps tag name to the attributes kept on it.
var allowedAttrs = map[string]map[string]bool{
	"a":   {"href": true, "title": true, "target": true, "rel": true},
	"img": {"src": true, "alt": true, "title": true, "width": true, "height": true},
}

// Normalize parses the fragment and re-renders it keeping only the allowed
// tags and attributes. Unknown elements are unwrapped (their children kept),
// script and style subtrees are dropped entirely.
func Normalize(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return html.EscapeString(fragment)
	}
	var b strings.Builder
	for _, n := range nodes {
		renderClean(&b, n)
	}
	return strings.TrimSpace(b.String())
}

func renderClean(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if tag == "script" || tag == "style" || tag == "iframe" {
			return
		}
		if !allowedTags[tag] {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				renderClean(b, c)
			}
			return
		}
		b.WriteByte('<')
		b.WriteString(tag)
		writeAttrs(b, tag, n.Attr)
		if tag == "br" || tag == "img" {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderClean(b, c)
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			renderClean(b, c)
		}
	}
}

func writeAttrs(b *strings.Builder, tag string, attrs []html.Attribute) {
	allowed := allowedAttrs[tag]
	if allowed == nil {
		return
	}
	kept := make([]html.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		key := strings.ToLower(attr.Key)
		if !allowed[key] {
			continue
		}
		if key == "href" || key == "src" {
			if !safeURL(attr.Val) {
				continue
			}
		}
		kept = append(kept, html.Attribute{Key: key, Val: attr.Val})
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })
	for _, attr := range kept {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteByte('"')
	}
}

func safeURL(raw string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if strings.HasPrefix(trimmed, "javascript:") || strings.HasPrefix(trimmed, "data:") || strings.HasPrefix(trimmed, "vbscript:") {
		return false
	}
	return true
}

// Excerpt strips all markup and truncates to max runes on a word boundary,
// appending an ellipsis when the text was cut.
func Excerpt(fragment string, max int) string {
	if max <= 0 {
		max = 160
	}
	text := plainText(fragment)
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}

func plainText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if tag == "script" || tag == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "p", "br", "li", "h1", "h2", "h3", "blockquote":
				b.WriteByte(' ')
			}
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
