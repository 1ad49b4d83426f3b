// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// =============================================================================
// Store
// =============================================================================

// Store publishes the current knowledge Snapshot to the pipeline.
//
// # Description
//
// Store wraps an atomic pointer so the taxonomy can be corrected in a
// running process without code changes: a reload builds a complete new
// Snapshot and swaps it in one step. In-flight requests keep the
// snapshot they started with; no reader ever observes a half-built
// table.
//
// # Thread Safety
//
// Store is safe for concurrent use. Current is a single atomic load.
//
// # Example
//
//	store := knowledge.NewStore(snap)
//	go store.Watch(ctx, "/etc/vidyasetu/knowledge.yaml")
//	...
//	engine.Resolve(ctx, store.Current(), query)
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a Store publishing the given snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.current.Store(snap)
	return s
}

// Current returns the published snapshot. Never nil.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Replace atomically publishes a new snapshot.
func (s *Store) Replace(snap *Snapshot) {
	s.current.Store(snap)
}

// =============================================================================
// File Watcher
// =============================================================================

// Watch reloads the knowledge file whenever it changes, until ctx is
// canceled.
//
// # Description
//
// Watch blocks. A failed reload (unreadable file, invalid taxonomy)
// keeps the previous snapshot and logs the error; startup validation
// has already guaranteed there is always a good snapshot to fall back
// to. The parent directory is watched rather than the file itself so
// atomic rename-style rewrites (the way most editors and config
// managers save) are picked up.
//
// # Inputs
//
//   - ctx: Cancels the watch.
//   - path: The knowledge YAML file to watch.
//
// # Outputs
//
//   - error: Non-nil only if the watcher itself cannot be created.
//
// # Limitations
//
//   - Rapid successive writes may trigger multiple reloads; the swap is
//     atomic so this is wasteful, not incorrect.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create knowledge watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("Watching knowledge file for changes", "path", path)

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			snap, err := Load(path)
			if err != nil {
				slog.Error("Knowledge reload failed, keeping previous snapshot",
					"path", path, "error", err)
				continue
			}
			s.Replace(snap)
			slog.Info("Knowledge base reloaded", "path", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Knowledge watcher error", "error", err)
		}
	}
}
