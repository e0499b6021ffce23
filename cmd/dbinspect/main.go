// Package main dumps the catalog search cache for debugging.
//
// Usage:
//
//	DATA_PATH=~/myscribe go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// cachedSearch mirrors the cache entry layout; only the fields shown
// here are printed.
type cachedSearch struct {
	Query     string    `json:"query"`
	FetchedAt time.Time `json:"fetched_at"`
	Results   []struct {
		Title     string   `json:"title"`
		Authors   []string `json:"authors"`
		PageCount int      `json:"page_count"`
	} `json:"results"`
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/myscribe")
	}

	opts := badger.DefaultOptions(filepath.Join(dataPath, "cache")).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Catalog Search Cache ===")

	entries := 0
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			entries++

			var entry cachedSearch
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				fmt.Printf("%s: unreadable entry: %v\n", item.Key(), err)
				continue
			}

			fmt.Printf("\nkey      %s\n", item.Key())
			fmt.Printf("query    %s\n", entry.Query)
			fmt.Printf("fetched  %s\n", entry.FetchedAt.Format(time.RFC3339))
			fmt.Printf("results  %d\n", len(entry.Results))
			for _, r := range entry.Results {
				fmt.Printf("  - %s (%d pages)\n", r.Title, r.PageCount)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to scan cache: %v", err)
	}

	fmt.Printf("\n%d entries\n", entries)
}
