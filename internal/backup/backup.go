// Package backup creates and manages snapshots of the reading tracker
// database.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/myscribe/myscribe-server/internal/store/sqlite"
)

const backupExt = ".myscribe.db"

// Service manages backup creation, listing, and pruning.
type Service struct {
	store     *sqlite.Store
	backupDir string
	keep      int
	logger    *slog.Logger
}

// NewService creates a backup service. keep is how many backups Prune
// retains; zero or negative means keep everything.
func NewService(st *sqlite.Store, backupDir string, keep int, logger *slog.Logger) *Service {
	return &Service{
		store:     st,
		backupDir: backupDir,
		keep:      keep,
		logger:    logger,
	}
}

// Info describes one backup on disk.
type Info struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// Create snapshots the database into the backup directory and returns
// the new backup's info.
func (s *Service) Create(ctx context.Context) (*Info, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	dest := filepath.Join(s.backupDir, "backup-"+timestamp+backupExt)

	if err := s.store.Snapshot(ctx, dest); err != nil {
		return nil, err
	}

	stat, err := os.Stat(dest)
	if err != nil {
		return nil, fmt.Errorf("stat backup: %w", err)
	}

	s.logger.Info("created backup",
		"path", dest,
		"size", stat.Size(),
	)
	return &Info{
		Path:      dest,
		Size:      stat.Size(),
		CreatedAt: stat.ModTime(),
	}, nil
}

// List returns the backups on disk, newest first.
func (s *Service) List() ([]Info, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupExt) {
			continue
		}
		stat, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(s.backupDir, entry.Name()),
			Size:      stat.Size(),
			CreatedAt: stat.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Prune deletes all but the newest configured number of backups and
// returns how many were removed.
func (s *Service) Prune() (int, error) {
	if s.keep <= 0 {
		return 0, nil
	}

	backups, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= s.keep {
		return 0, nil
	}

	removed := 0
	for _, backup := range backups[s.keep:] {
		if err := os.Remove(backup.Path); err != nil {
			s.logger.Warn("failed to remove old backup", "path", backup.Path, "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("pruned old backups", "removed", removed, "kept", s.keep)
	}
	return removed, nil
}
