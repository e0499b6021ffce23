// Package main provides a tool to seed the database with sample books.
//
// Useful for trying the HTTP API and the search endpoint without talking
// to the bot first.
//
// Usage:
//
//	DATA_PATH=~/myscribe go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/myscribe/myscribe-server/internal/domain"
	"github.com/myscribe/myscribe-server/internal/search"
	"github.com/myscribe/myscribe-server/internal/store/sqlite"
)

var sampleBooks = []*domain.Book{
	{Title: "dune", Author: "frank herbert", Genre: "science fiction", Language: "english", TotalPages: 412, ISBN13: "9780441013593"},
	{Title: "the trial", Author: "franz kafka", Genre: "absurdist fiction", Language: "german", TotalPages: 255},
	{Title: "circe", Author: "madeline miller", Genre: "fantasy", Language: "english", TotalPages: 393, ISBN13: "9780316556347"},
	{Title: "snow crash", Author: "neal stephenson", Genre: "science fiction", Language: "english", TotalPages: 440},
	{Title: "piranesi", Author: "susanna clarke", Genre: "fantasy", Language: "english", TotalPages: 245, ISBN13: "9781635575637"},
	{Title: "project hail mary", Author: "andy weir", Genre: "science fiction", Language: "english", TotalPages: 476},
}

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/myscribe")
	}

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(dataPath, "myscribe.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	index, err := search.NewSearchIndex(search.Options{
		DataPath: filepath.Join(dataPath, "search"),
		Logger:   logger,
	})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()
	st.SetSearchIndexer(index)

	ctx := context.Background()
	for _, book := range sampleBooks {
		book.CreatedAt = time.Now()
		if err := st.PutBook(ctx, book); err != nil {
			log.Fatalf("Failed to store %q: %v", book.Title, err)
		}
		fmt.Printf("seeded %q by %s\n", book.Title, book.Author)
	}

	count, err := index.DocumentCount()
	if err != nil {
		log.Fatalf("Failed to read index count: %v", err)
	}
	fmt.Printf("done, %d books indexed\n", count)
}
