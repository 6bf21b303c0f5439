// Package webpage extracts caption-worthy text from HTML pages and wires
// the results of sign-language translation back into the markup.
//
// Extract pulls the visible text a page would want signed; Annotate marks
// the matching elements with data-sign-video attributes so the page's
// player placeholders can pick up the rendered videos.
package webpage

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IgnoredTags contains HTML tags whose content is never caption-worthy.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// SkipAttribute marks elements whose text should not be signed.
const SkipAttribute = "data-no-sign"

// VideoAttribute is set on annotated elements, pointing at the rendered
// sign-language video.
const VideoAttribute = "data-sign-video"

// Caption is a unit of page text worth translating into sign language.
type Caption struct {
	Text    string // Trimmed visible text
	Parent  string // Tag name of the containing element
	Context string // Position hint (ancestor path), for debugging
}

// ParseError indicates the page could not be parsed or serialized.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("webpage error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("webpage error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Extractor pulls caption-worthy text out of HTML content.
type Extractor struct {
	ignoredTags map[string]bool
}

// NewExtractor creates an extractor with the default ignored tags.
func NewExtractor() *Extractor {
	return &Extractor{ignoredTags: IgnoredTags}
}

// NewExtractorWithIgnoredTags creates an extractor with custom ignored tags.
func NewExtractorWithIgnoredTags(tags []string) *Extractor {
	ignored := make(map[string]bool)
	for _, tag := range tags {
		ignored[strings.ToLower(tag)] = true
	}
	return &Extractor{ignoredTags: ignored}
}

// Extract parses HTML and returns its visible text as captions, in
// document order, deduplicated by text.
func (e *Extractor) Extract(content string) ([]Caption, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	var captions []Caption
	seen := make(map[string]bool)

	var walk func(n *html.Node, path []string)
	walk = func(n *html.Node, path []string) {
		if n.Type == html.ElementNode {
			if e.skip(n) {
				return
			}
			if n.Data != "html" && n.Data != "body" {
				// Copy to keep sibling subtrees from sharing backing arrays
				next := make([]string, len(path), len(path)+1)
				copy(next, path)
				path = append(next, n.Data)
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" && !seen[text] {
				seen[text] = true

				caption := Caption{Text: text}
				if n.Parent != nil {
					caption.Parent = n.Parent.Data
				}
				if len(path) > 0 {
					caption.Context = strings.Join(path, " > ")
				}

				captions = append(captions, caption)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, path)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n, nil)
		}
	})

	return captions, nil
}

// Annotate sets the video attribute on elements whose text has a rendered
// sign-language video. videos maps trimmed text to video URL. Returns the
// annotated HTML and the number of elements marked.
func (e *Extractor) Annotate(content string, videos map[string]string) (string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", 0, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	annotated := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && e.skip(n) {
			return
		}

		if n.Type == html.TextNode && n.Parent != nil {
			text := strings.TrimSpace(n.Data)
			if url, ok := videos[text]; ok && text != "" {
				setAttribute(n.Parent, VideoAttribute, url)
				annotated++
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	doc.Each(func(i int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			walk(n)
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", 0, &ParseError{Message: "failed to serialize HTML", Cause: err}
	}

	return out, annotated, nil
}

// skip reports whether an element and its subtree should be ignored.
func (e *Extractor) skip(n *html.Node) bool {
	if e.ignoredTags[strings.ToLower(n.Data)] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == SkipAttribute {
			return true
		}
	}
	return false
}

// setAttribute sets or replaces an attribute on an element node.
func setAttribute(n *html.Node, key, value string) {
	for i, attr := range n.Attr {
		if attr.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}
