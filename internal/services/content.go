package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ContentStore provides read-only access to static text assets (character
// prompts, level overlays, game texts, clue text) by logical path.
type ContentStore interface {
	// Load returns the asset at the given logical path.
	Load(ctx context.Context, path string) (string, error)

	// Invalidate drops the cached copy of one asset so the next Load
	// rereads it. Used for content updates without a process restart.
	Invalidate(path string)

	// InvalidateAll drops the whole cache.
	InvalidateAll()
}

// FSContentStore implements ContentStore over a data directory on the
// filesystem, caching each asset in memory after first read.
type FSContentStore struct {
	dataDir string
	logger  *slog.Logger

	mu    sync.RWMutex
	cache map[string]string
}

var _ ContentStore = (*FSContentStore)(nil)

// NewFSContentStore creates a content store rooted at dataDir.
func NewFSContentStore(dataDir string, logger *slog.Logger) *FSContentStore {
	if dataDir == "" {
		dataDir = "./data"
	}
	return &FSContentStore{
		dataDir: dataDir,
		logger:  logger,
		cache:   make(map[string]string),
	}
}

func (s *FSContentStore) Load(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	if content, ok := s.cache[path]; ok {
		s.mu.RUnlock()
		return content, nil
	}
	s.mu.RUnlock()

	fullPath := filepath.Join(s.dataDir, filepath.Clean(path))
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to read content file %s: %w", path, err)
	}

	// Strip a UTF-8 BOM if present; content files come from mixed editors.
	content := strings.TrimPrefix(string(data), "\uFEFF")
	content = strings.TrimSpace(content)

	s.mu.Lock()
	s.cache[path] = content
	s.mu.Unlock()

	s.logger.Debug("Content loaded", "path", path, "length", len(content))
	return content, nil
}

func (s *FSContentStore) Invalidate(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
	s.logger.Debug("Content cache invalidated", "path", path)
}

func (s *FSContentStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
	s.logger.Debug("Content cache cleared")
}
