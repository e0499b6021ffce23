package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

const infoboxPage = `<html><body>
<table class="infobox">
<tr><th>Author</th><td>Frank Herbert</td></tr>
<tr><th>Language</th><td>English</td></tr>
<tr><th>Genre</th><td><ul><li>Science fiction</li><li>Planetary romance</li></ul></td></tr>
</table>
</body></html>`

const plainGenrePage = `<html><body>
<table class="infobox">
<tr><th>Language</th><td>German</td></tr>
<tr><th>Genre</th><td>Absurdist fiction, dystopian</td></tr>
</table>
</body></html>`

func newTestClient(t *testing.T, pageHTML string) *Client {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/customsearch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"items": [{"link": %q}]}`, server.URL+"/wiki/page")
	})
	mux.HandleFunc("/wiki/page", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pageHTML))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(logger, "engine-id", "api-key",
		WithSearchBaseURL(server.URL+"/customsearch"),
		WithHTTPClient(server.Client()))
}

func TestLookup(t *testing.T) {
	client := newTestClient(t, infoboxPage)

	info, err := client.Lookup(context.Background(), "dune", "frank herbert")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if info.Genre != "Science fiction" {
		t.Errorf("expected first list genre, got %q", info.Genre)
	}
	if info.Language != "English" {
		t.Errorf("expected English, got %q", info.Language)
	}
	if !strings.HasSuffix(info.PageURL, "/wiki/page") {
		t.Errorf("unexpected page URL %q", info.PageURL)
	}
}

func TestLookupPlainGenreCell(t *testing.T) {
	client := newTestClient(t, plainGenrePage)

	info, err := client.Lookup(context.Background(), "the trial", "")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	// Plain-text genre cells are cut at the first comma.
	if info.Genre != "Absurdist fiction" {
		t.Errorf("expected Absurdist fiction, got %q", info.Genre)
	}
	if info.Language != "German" {
		t.Errorf("expected German, got %q", info.Language)
	}
}

func TestLookupNoInfobox(t *testing.T) {
	client := newTestClient(t, `<html><body><p>A disambiguation page.</p></body></html>`)

	_, err := client.Lookup(context.Background(), "dune", "")
	if !errors.Is(err, ErrNoInfobox) {
		t.Errorf("expected ErrNoInfobox, got %v", err)
	}
}

func TestLookupDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := New(logger, "", "")

	if client.Enabled() {
		t.Fatal("expected disabled client")
	}
	_, err := client.Lookup(context.Background(), "dune", "")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestLookupNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/customsearch", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": []}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := New(logger, "engine-id", "api-key",
		WithSearchBaseURL(server.URL+"/customsearch"),
		WithHTTPClient(server.Client()))

	_, err := client.Lookup(context.Background(), "dune", "")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}
}
