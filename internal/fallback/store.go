// Package fallback provides the local snapshot store and in-process matcher
// used when the remote vector index is unreachable.
package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Jitenthink/mediphant-devtest/internal/models"
)

const reloadDebounce = 400 * time.Millisecond

// Store holds the persisted snapshot of chunk vectors. It is read-only at
// query time; Reload swaps the whole chunk slice, so concurrent readers never
// observe a partially loaded snapshot.
type Store struct {
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	chunks []models.Chunk
}

// NewStore creates a store backed by the snapshot file at path. The snapshot
// is not read until Reload is called.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Reload reads the snapshot file. A missing or unreadable snapshot leaves the
// store empty rather than failing: callers treat an empty store as "no
// information available".
func (s *Store) Reload() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("snapshot unreadable", zap.String("path", s.path), zap.Error(err))
		}
		s.replace(nil)
		return
	}
	var chunks []models.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		s.logger.Warn("snapshot corrupt", zap.String("path", s.path), zap.Error(err))
		s.replace(nil)
		return
	}
	s.replace(chunks)
	s.logger.Debug("snapshot loaded", zap.String("path", s.path), zap.Int("chunks", len(chunks)))
}

func (s *Store) replace(chunks []models.Chunk) {
	s.mu.Lock()
	s.chunks = chunks
	s.mu.Unlock()
}

// Chunks returns the current snapshot contents in corpus order.
func (s *Store) Chunks() []models.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chunks
}

// Len returns the number of chunks currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Watch reloads the store whenever the snapshot file is replaced, so a
// reindex becomes visible without a restart. It runs until ctx is cancelled.
// The snapshot's directory is watched because WriteSnapshot renames a temp
// file over the target, which some platforms report as create, not write.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.path) {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, s.Reload)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("snapshot watch error", zap.Error(err))
			}
		}
	}()
	return nil
}

// WriteSnapshot atomically replaces the snapshot at path with the given
// chunks: the JSON is written to a temp file in the same directory and then
// renamed over the target, so readers never see a half-written store.
func WriteSnapshot(path string, chunks []models.Chunk) error {
	data, err := json.MarshalIndent(chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
