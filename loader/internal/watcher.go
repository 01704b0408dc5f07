package internal

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lexindex/types"
)

// Watcher polls the source directory and emits files that have sat
// unmodified for the full monitoring window, so half-copied uploads are
// never picked up.
type Watcher struct {
	cfg    types.LoaderConfig
	logger *slog.Logger

	mu         sync.Mutex
	firstSeen  map[string]time.Time
	processing map[string]bool
}

func NewWatcher(cfg types.LoaderConfig) (*Watcher, error) {
	if err := createDirectories(cfg.SourceDir, cfg.ArchiveDir, cfg.BadDir); err != nil {
		return nil, err
	}
	return &Watcher{
		cfg:        cfg,
		logger:     slog.Default(),
		firstSeen:  make(map[string]time.Time),
		processing: make(map[string]bool),
	}, nil
}

func (w *Watcher) Watch(ctx context.Context, fileChan chan<- string) {
	w.logger.Info("monitoring source folder", "dir", w.cfg.SourceDir)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped")
			return
		case <-ticker.C:
			files, err := os.ReadDir(w.cfg.SourceDir)
			if err != nil {
				w.logger.Error("error reading source directory", "error", err)
				continue
			}

			for _, file := range files {
				if file.IsDir() {
					continue
				}

				filePath := filepath.Join(w.cfg.SourceDir, file.Name())

				w.mu.Lock()
				if w.processing[filePath] {
					w.mu.Unlock()
					continue
				}
				firstSeen, seen := w.firstSeen[filePath]
				if !seen {
					w.firstSeen[filePath] = time.Now()
					w.logger.Info("new file detected", "file", filePath)
					w.mu.Unlock()
					continue
				}
				w.mu.Unlock()

				if time.Since(firstSeen) < w.cfg.MonitoringTime {
					continue
				}

				w.mu.Lock()
				w.processing[filePath] = true
				w.mu.Unlock()

				select {
				case fileChan <- filePath:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// Done clears the tracking state of a processed file.
func (w *Watcher) Done(filePath string) {
	w.mu.Lock()
	delete(w.processing, filePath)
	delete(w.firstSeen, filePath)
	w.mu.Unlock()
}

// MoveOut relocates a processed file to the archive dir, or to the bad
// dir when ingestion failed.
func (w *Watcher) MoveOut(filePath string, failed bool) {
	destDir := w.cfg.ArchiveDir
	if failed {
		destDir = w.cfg.BadDir
	}
	destPath := filepath.Join(destDir, filepath.Base(filePath))

	if err := os.Rename(filePath, destPath); err == nil {
		w.logger.Info("file moved", "from", filePath, "to", destPath)
		return
	}

	// Rename fails across filesystems; fall back to copy+remove.
	in, err := os.Open(filePath)
	if err != nil {
		w.logger.Error("error opening file for move", "file", filePath, "error", err)
		return
	}
	defer in.Close()

	out, err := os.Create(destPath)
	if err != nil {
		w.logger.Error("error creating destination file", "file", destPath, "error", err)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		w.logger.Error("error moving file", "file", filePath, "error", err)
		return
	}
	in.Close()
	os.Remove(filePath)
	w.logger.Info("file moved", "from", filePath, "to", destPath)
}

func createDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
