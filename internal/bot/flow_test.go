package bot

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/metadata/cache"
	"github.com/myscribe/myscribe-server/internal/metadata/googlebooks"
	"github.com/myscribe/myscribe-server/internal/service"
	"github.com/myscribe/myscribe-server/internal/store"
	"github.com/myscribe/myscribe-server/internal/store/sqlite"
)

const testUser = "u1"

const twoVolumes = `{"items": [
	{"volumeInfo": {
		"title": "Dune",
		"authors": ["Frank Herbert"],
		"pageCount": 412,
		"language": "en",
		"categories": ["Fiction / Science Fiction"],
		"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780441013593"}]
	}},
	{"volumeInfo": {
		"title": "Dune",
		"authors": ["Brian Herbert"],
		"pageCount": 256,
		"language": "en"
	}}
]}`

const noPagesVolume = `{"items": [{"volumeInfo": {
	"title": "Dune",
	"authors": ["Frank Herbert"],
	"language": "en"
}}]}`

func setupFlow(t *testing.T, handler http.HandlerFunc) (*Flow, *MemorySender, store.Store) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(t.TempDir()+"/test.db", logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	catalog := googlebooks.New(logger, "",
		googlebooks.WithBaseURL(server.URL),
		googlebooks.WithHTTPClient(server.Client()))

	searchCache, err := cache.Open(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { searchCache.Close() })

	resolver := service.NewResolverService(st, catalog, nil, searchCache, 5, logger)
	sender := NewMemorySender()

	flow := NewFlow(
		service.NewProfileService(st, logger),
		resolver,
		service.NewShelfService(st, logger),
		service.NewProgressService(st, logger),
		service.NewCalibrationService(st, logger),
		sender,
		logger,
		WithCalibrationDelay(0),
	)
	return flow, sender, st
}

func say(t *testing.T, flow *Flow, text string) {
	t.Helper()
	err := flow.Handle(context.Background(), &Incoming{
		UserID:      testUser,
		DisplayName: "Ada",
		Text:        text,
	})
	require.NoError(t, err)
}

func press(t *testing.T, flow *Flow, data string) {
	t.Helper()
	err := flow.Handle(context.Background(), &Incoming{
		UserID:       testUser,
		CallbackData: data,
	})
	require.NoError(t, err)
}

func seedBook(t *testing.T, st store.Store, book *domain.Book) {
	t.Helper()
	book.CreatedAt = time.Now()
	require.NoError(t, st.PutBook(context.Background(), book))
}

func TestFlowWelcome(t *testing.T) {
	flow, sender, _ := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	say(t, flow, "/start")

	last := sender.Last(testUser)
	require.NotNil(t, last)
	assert.Contains(t, last.Text, "Hello Ada!")
	assert.Contains(t, last.Text, "I keep track of what you read")
}

func TestFlowIdentifyConfirmAndTrack(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(twoVolumes))
	})
	ctx := context.Background()

	say(t, flow, "I am reading Dune now")
	assert.Contains(t, sender.Last(testUser).Text, `I do not know "Dune" yet`)

	say(t, flow, "Frank Herbert")
	first := sender.Last(testUser)
	assert.Contains(t, first.Text, "Title : dune")
	require.Len(t, first.Actions, 2)
	assert.Equal(t, ActionConfirmBook, first.Actions[0].Data)

	// The cursor walks the candidates and wraps back to the first.
	press(t, flow, ActionNextBook)
	second := sender.Last(testUser)
	assert.NotEqual(t, first.Text, second.Text)

	press(t, flow, ActionNextBook)
	assert.Equal(t, first.Text, sender.Last(testUser).Text)

	press(t, flow, ActionConfirmBook)
	review := sender.Last(testUser)
	assert.Contains(t, review.Text, "Total Pages : 412")
	require.Len(t, review.Actions, 3)

	press(t, flow, ActionLooksGood)
	assert.Contains(t, sender.Last(testUser).Text, "currently reading")

	book, err := st.GetBook(ctx, "dune")
	require.NoError(t, err)
	assert.Equal(t, "frank herbert", book.Author)
	assert.Equal(t, 412, book.TotalPages)

	say(t, flow, "120")
	reply := sender.Last(testUser)
	assert.Contains(t, reply.Text, "120 pages down, 292 to go")
	assert.Contains(t, reply.Text, "4 hours and 52 minutes")

	entry, err := st.GetStatus(ctx, testUser, "dune")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReading, entry.Status)
	assert.Equal(t, 120, entry.PagesReadOrZero())
}

func TestFlowPageCountBackfill(t *testing.T) {
	flow, sender, _ := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(noPagesVolume))
	})

	say(t, flow, "I am reading Dune")
	say(t, flow, "no")
	press(t, flow, ActionConfirmBook)
	assert.Contains(t, sender.Last(testUser).Text, "How many pages does your copy have?")

	say(t, flow, "320 pages")
	assert.Contains(t, sender.Last(testUser).Text, "Total Pages : 320")
}

func TestFlowFinishingAReadingBook(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("stored books must not hit the catalog")
	})
	ctx := context.Background()

	seedBook(t, st, &domain.Book{Title: "dune", Author: "frank herbert", TotalPages: 412})
	say(t, flow, "hi") // creates the profile
	pages := 100
	require.NoError(t, st.PutStatus(ctx, &domain.StatusEntry{
		UserID: testUser, BookTitle: "dune",
		Status: domain.StatusReading, PagesRead: &pages,
	}))

	say(t, flow, "I finished Dune yesterday")
	assert.Contains(t, sender.Last(testUser).Text, "How would you rate it")

	say(t, flow, "7")
	assert.Contains(t, sender.Last(testUser).Text, "Ratings go from 1 to 5")

	say(t, flow, "4")
	assert.Contains(t, sender.Last(testUser).Text, "rated 4 out of 5")

	entry, err := st.GetStatus(ctx, testUser, "dune")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, entry.Status)
	assert.Nil(t, entry.PagesRead, "completion clears the page counter")
	require.NotNil(t, entry.Rating)
	assert.Equal(t, 4, *entry.Rating)
}

func TestFlowCompletionByPages(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("stored books must not hit the catalog")
	})
	ctx := context.Background()

	seedBook(t, st, &domain.Book{Title: "dune", TotalPages: 300})
	say(t, flow, "hi")
	pages := 260
	require.NoError(t, st.PutStatus(ctx, &domain.StatusEntry{
		UserID: testUser, BookTitle: "dune",
		Status: domain.StatusReading, PagesRead: &pages,
	}))

	say(t, flow, "I am reading Dune")
	assert.Contains(t, sender.Last(testUser).Text, "How many pages did you get through?")

	say(t, flow, "50")
	assert.Contains(t, sender.Last(testUser).Text, "How would you rate it")

	entry, err := st.GetStatus(ctx, testUser, "dune")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, entry.Status)
}

func TestFlowWishlistStoredBook(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("stored books must not hit the catalog")
	})

	seedBook(t, st, &domain.Book{Title: "circe", Author: "madeline miller"})

	say(t, flow, "I want to read Circe")
	assert.Contains(t, sender.Last(testUser).Text, "wishlist")

	entry, err := st.GetStatus(context.Background(), testUser, "circe")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWishlist, entry.Status)
}

func TestFlowDuplicateWishlist(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	seedBook(t, st, &domain.Book{Title: "circe"})
	say(t, flow, "I want to read Circe")
	say(t, flow, "I want to read Circe")

	assert.Contains(t, sender.Last(testUser).Text, "already on your shelf as wishlist")
}

func TestFlowCalibrationTooFast(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	say(t, flow, "/calculate_reading_speed")
	last := sender.Last(testUser)
	require.Len(t, last.Actions, 1)
	assert.Equal(t, ActionReadingDone, last.Actions[0].Data)

	press(t, flow, ActionReadingDone)
	assert.Contains(t, sender.Last(testUser).Text, "too quick")

	user, err := st.GetUser(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReadingSpeedWPM, user.ReadingSpeed)
}

func TestFlowShelfCommand(t *testing.T) {
	flow, sender, st := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx := context.Background()

	say(t, flow, "/mybooks")
	assert.Contains(t, sender.Last(testUser).Text, "Your shelf is empty")

	seedBook(t, st, &domain.Book{Title: "dune", Author: "frank herbert", TotalPages: 412})
	pages := 120
	require.NoError(t, st.PutStatus(ctx, &domain.StatusEntry{
		UserID: testUser, BookTitle: "dune",
		Status: domain.StatusReading, PagesRead: &pages,
	}))

	say(t, flow, "/mybooks")
	shelf := sender.Last(testUser).Text
	assert.Contains(t, shelf, "dune by frank herbert")
	assert.Contains(t, shelf, "[currently_reading]")
	assert.Contains(t, shelf, "120 pages in")
}

func TestFlowUnknownChatter(t *testing.T) {
	flow, sender, _ := setupFlow(t, func(w http.ResponseWriter, r *http.Request) {})

	say(t, flow, "what is the weather like")
	assert.Contains(t, sender.Last(testUser).Text, "I did not catch that")
}
