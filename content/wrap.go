package content

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/LumaLabs/lexipage"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// skipTags contains HTML tags whose text should not become clickable words.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// WrapWords rewrites an HTML fragment so every word of visible text is
// wrapped in <span class="cw" data-word="..." data-pos="N">. Positions
// number word tokens across the whole document in order; they are the
// coordinates the phrase merger consumes. Whitespace between words is
// preserved as-is. Content of skipTags and of elements carrying a
// data-no-wrap attribute is left untouched.
func WrapWords(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", &lexipage.ContentError{Message: "parsing HTML", Cause: err}
	}

	pos := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-wrap" {
					return
				}
			}
		}

		// Snapshot children: wrapping replaces text nodes in place.
		var children []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			children = append(children, c)
		}

		for _, c := range children {
			if c.Type == html.TextNode {
				if strings.TrimSpace(c.Data) != "" {
					pos = wrapTextNode(n, c, pos)
				}
				continue
			}
			walk(c)
		}
	}

	body := doc.Find("body")
	for _, n := range body.Nodes {
		walk(n)
	}

	out, err := body.Html()
	if err != nil {
		return "", &lexipage.ContentError{Message: "serializing HTML", Cause: err}
	}
	return out, nil
}

// wrapTextNode replaces one text node with alternating whitespace text nodes
// and word spans, returning the next word position.
func wrapTextNode(parent, text *html.Node, pos int) int {
	for _, part := range splitKeepingSpace(text.Data) {
		var node *html.Node
		if strings.TrimSpace(part) == "" {
			node = &html.Node{Type: html.TextNode, Data: part}
		} else {
			node = wordSpan(part, pos)
			pos++
		}
		parent.InsertBefore(node, text)
	}
	parent.RemoveChild(text)
	return pos
}

// wordSpan builds <span class="cw" data-word="..." data-pos="N">word</span>.
// The serializer handles HTML escaping of both attributes and text.
func wordSpan(word string, pos int) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: "cw"},
			{Key: "data-word", Val: strings.TrimSpace(word)},
			{Key: "data-pos", Val: strconv.Itoa(pos)},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: word})
	return span
}

// splitKeepingSpace splits text into runs of whitespace and runs of
// non-whitespace, preserving both.
func splitKeepingSpace(text string) []string {
	var parts []string
	start := 0
	inSpace := false

	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			parts = append(parts, text[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}
