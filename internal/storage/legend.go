package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jwebster45206/footagents/pkg/legend"
)

// Legend operations (filesystem-backed)

// GetLegend reads <dataDir>/legends/<id>.json, falling back to the
// built-in card when no file exists.
func (r *RedisStorage) GetLegend(ctx context.Context, id string) (*legend.Legend, error) {
	key := legend.Canonical(id)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, fmt.Errorf("%w: %q", legend.ErrNotFound, id)
	}

	legendPath := filepath.Join(r.dataDir, "legends", key+".json")
	data, err := os.ReadFile(legendPath)
	if err != nil {
		if os.IsNotExist(err) {
			return legend.Get(key)
		}
		return nil, fmt.Errorf("failed to read legend file %s: %w", legendPath, err)
	}

	var l legend.Legend
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse legend JSON from %s: %w", legendPath, err)
	}
	l.ID = key // Ensure ID is set from filename

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid legend file %s: %w", legendPath, err)
	}
	return &l, nil
}

// ListLegends returns the built-in ids plus any file-backed ones, sorted.
func (r *RedisStorage) ListLegends(ctx context.Context) ([]string, error) {
	ids := legend.IDs()

	entries, err := os.ReadDir(filepath.Join(r.dataDir, "legends"))
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, fmt.Errorf("failed to read legends directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}
