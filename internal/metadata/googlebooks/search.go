package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchParams narrows a volumes query.
type SearchParams struct {
	Title      string
	Author     string // optional
	MaxResults int    // defaults to 5
}

// Volume is a single catalog match.
type Volume struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	PageCount   int      `json:"page_count,omitempty"`
	ISBN13      string   `json:"isbn13,omitempty"`
	Description string   `json:"description,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Language    string   `json:"language,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// Author returns the primary author, or an empty string.
func (v *Volume) Author() string {
	if len(v.Authors) == 0 {
		return ""
	}
	return v.Authors[0]
}

// Search queries the volumes endpoint, scoping the query to title and,
// when given, author. Returns an empty slice when nothing matches.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]Volume, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, wrapError("search", "", ErrBadRequest)
	}

	q := "intitle:" + params.Title
	if params.Author != "" {
		q += " inauthor:" + params.Author
	}

	limit := params.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	if limit > maxMaxResults {
		limit = maxMaxResults
	}

	query := url.Values{}
	query.Set("q", q)
	query.Set("maxResults", strconv.Itoa(limit))

	body, err := c.doRequest(ctx, "/volumes", query)
	if err != nil {
		return nil, wrapError("search", q, err)
	}

	var resp struct {
		Items []rawItem `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("search", q, fmt.Errorf("parse response: %w", err))
	}

	results := make([]Volume, 0, len(resp.Items))
	for i := range resp.Items {
		info := &resp.Items[i].VolumeInfo
		results = append(results, Volume{
			Title:       info.Title,
			Authors:     info.Authors,
			PageCount:   info.PageCount,
			ISBN13:      selectISBN13(info.IndustryIdentifiers),
			Description: cleanDescription(info.Description),
			CoverURL:    selectCoverURL(info.ImageLinks),
			Language:    info.Language,
			Categories:  info.Categories,
		})
	}
	return results, nil
}

// rawItem mirrors the volumes API response shape.
type rawItem struct {
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		PageCount           int      `json:"pageCount"`
		Description         string   `json:"description"`
		Language            string   `json:"language"`
		Categories          []string `json:"categories"`
		IndustryIdentifiers []rawIdentifier `json:"industryIdentifiers"`
		ImageLinks          rawImageLinks   `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type rawIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type rawImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// selectISBN13 picks the ISBN_13 identifier when present, falling back to
// ISBN_10.
func selectISBN13(ids []rawIdentifier) string {
	var isbn10 string
	for _, id := range ids {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

// selectCoverURL prefers the larger thumbnail.
func selectCoverURL(links rawImageLinks) string {
	if links.Thumbnail != "" {
		return links.Thumbnail
	}
	return links.SmallThumbnail
}
