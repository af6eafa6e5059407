// Package content turns markdown documents into pages of clickable words.
package content

import (
	"bytes"

	"github.com/LumaLabs/lexipage"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is the shared converter. GFM covers the tables/strikethrough/autolink
// syntax the content files actually use.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderMarkdown converts markdown source to an HTML fragment.
func RenderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", &lexipage.ContentError{Message: "rendering markdown", Cause: err}
	}
	return buf.String(), nil
}

// Page renders markdown and wraps every word in a clickable span.
func Page(src []byte) (string, error) {
	html, err := RenderMarkdown(src)
	if err != nil {
		return "", err
	}
	return WrapWords(html)
}
