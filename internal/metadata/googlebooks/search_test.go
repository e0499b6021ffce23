package googlebooks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

const volumesFixture = `{
	"totalItems": 2,
	"items": [
		{
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"pageCount": 412,
				"description": "<p>Set on the desert planet <b>Arrakis</b>.</p>",
				"language": "en",
				"categories": ["Fiction"],
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0441013597"},
					{"type": "ISBN_13", "identifier": "9780441013593"}
				],
				"imageLinks": {
					"smallThumbnail": "http://books.google.com/small.jpg",
					"thumbnail": "http://books.google.com/thumb.jpg"
				}
			}
		},
		{
			"volumeInfo": {
				"title": "Dune Messiah",
				"authors": ["Frank Herbert"],
				"pageCount": 256,
				"language": "en"
			}
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(logger, "", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
}

func TestClientSearch(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantCount  int
		wantErr    error
	}{
		{
			name:       "successful search",
			response:   volumesFixture,
			statusCode: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "empty results",
			response:   `{"totalItems": 0}`,
			statusCode: http.StatusOK,
			wantCount:  0,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			wantErr:    ErrRateLimited,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			wantErr:    ErrServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.response))
			})

			results, err := client.Search(context.Background(), SearchParams{Title: "dune"})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(results) != tt.wantCount {
				t.Errorf("expected %d results, got %d", tt.wantCount, len(results))
			}
		})
	}
}

func TestClientSearchQueryScoping(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := client.Search(context.Background(), SearchParams{Title: "dune", Author: "frank herbert"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if gotQuery != "intitle:dune inauthor:frank herbert" {
		t.Errorf("unexpected query: %q", gotQuery)
	}

	_, err = client.Search(context.Background(), SearchParams{Title: "dune"})
	if err != nil {
		t.Fatalf("Search title only: %v", err)
	}
	if gotQuery != "intitle:dune" {
		t.Errorf("unexpected title-only query: %q", gotQuery)
	}
}

func TestClientSearchEmptyTitle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty title")
	})

	_, err := client.Search(context.Background(), SearchParams{})
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestVolumeFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(volumesFixture))
	})

	results, err := client.Search(context.Background(), SearchParams{Title: "dune"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	v := results[0]
	if v.Author() != "Frank Herbert" {
		t.Errorf("expected Frank Herbert, got %s", v.Author())
	}
	if v.ISBN13 != "9780441013593" {
		t.Errorf("expected ISBN_13 to win, got %s", v.ISBN13)
	}
	if v.CoverURL != "http://books.google.com/thumb.jpg" {
		t.Errorf("expected larger thumbnail, got %s", v.CoverURL)
	}
	if v.PageCount != 412 {
		t.Errorf("expected 412 pages, got %d", v.PageCount)
	}
	// HTML descriptions come back as Markdown.
	if v.Description == "" || containsHTML(v.Description) {
		t.Errorf("expected markdown description, got %q", v.Description)
	}

	// Missing optional fields stay zero.
	if results[1].ISBN13 != "" || results[1].CoverURL != "" {
		t.Errorf("expected empty optionals, got %+v", results[1])
	}
}

func TestSelectISBN13FallsBackToISBN10(t *testing.T) {
	ids := []rawIdentifier{{Type: "ISBN_10", Identifier: "0441013597"}}
	if got := selectISBN13(ids); got != "0441013597" {
		t.Errorf("expected ISBN_10 fallback, got %s", got)
	}
}
