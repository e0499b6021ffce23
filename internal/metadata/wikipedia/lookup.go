package wikipedia

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Info is what an infobox yields for a book.
type Info struct {
	Genre    string
	Language string
	PageURL  string
}

// Lookup finds the book's Wikipedia page and scrapes genre and language
// from its infobox. Either field may come back empty; a page with neither
// yields ErrNoInfobox.
func (c *Client) Lookup(ctx context.Context, title, author string) (*Info, error) {
	if !c.Enabled() {
		return nil, wrapError("lookup", title, ErrDisabled)
	}

	pageURL, err := c.findPage(ctx, title, author)
	if err != nil {
		return nil, wrapError("findPage", title, err)
	}

	body, err := c.get(ctx, "page", pageURL)
	if err != nil {
		return nil, wrapError("lookup", title, err)
	}

	info, err := parseInfobox(body)
	if err != nil {
		return nil, wrapError("lookup", title, err)
	}
	info.PageURL = pageURL

	c.logger.Debug("wikipedia infobox",
		"title", title,
		"genre", info.Genre,
		"language", info.Language,
	)
	return info, nil
}

// parseInfobox extracts the Genre and Language rows from a page.
func parseInfobox(htmlContent []byte) (*Info, error) {
	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	info := &Info{
		Genre:    extractGenre(findRowValue(doc, "Genre")),
		Language: extractTextContent(findRowValue(doc, "Language")),
	}
	if info.Genre == "" && info.Language == "" {
		return nil, ErrNoInfobox
	}
	return info, nil
}

// findRowValue locates the td cell that follows a th header with the given
// label. Returns nil when no such row exists.
func findRowValue(doc *html.Node, label string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "th" && extractTextContent(n) == label {
			for sib := n.NextSibling; sib != nil; sib = sib.NextSibling {
				if sib.Type == html.ElementNode && sib.Data == "td" {
					found = sib
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// extractGenre reads a genre cell. Genre rows usually hold a list; the
// first item wins. Plain-text cells are cut at the first comma.
func extractGenre(cell *html.Node) string {
	if cell == nil {
		return ""
	}
	if li := findFirstElement(cell, "li"); li != nil {
		return extractTextContent(li)
	}
	text := extractTextContent(cell)
	genre, _, _ := strings.Cut(text, ",")
	return strings.TrimSpace(genre)
}

func findFirstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func extractTextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}
