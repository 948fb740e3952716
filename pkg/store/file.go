package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File stores best scores in a small YAML document mapping keys to scores,
// so several players can share one file.
type File struct {
	path string
	key  string
}

func NewFile(path string, key string) *File {
	return &File{path: path, key: key}
}

func (f *File) read() (map[string]int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int)
	if err := yaml.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", f.path, err)
	}

	return scores, nil
}

func (f *File) Load(ctx context.Context) (int, error) {
	scores, err := f.read()
	if errors.Is(err, fs.ErrNotExist) {
		return 0, ErrNoBest
	} else if err != nil {
		return 0, err
	}

	best, ok := scores[f.key]
	if !ok {
		return 0, ErrNoBest
	}

	return checkValue(best)
}

func (f *File) Save(ctx context.Context, best int) error {
	if _, err := checkValue(best); err != nil {
		return err
	}

	// A corrupt file is overwritten.
	scores, err := f.read()
	if err != nil {
		scores = make(map[string]int)
	}
	scores[f.key] = best

	data, err := yaml.Marshal(scores)
	if err != nil {
		return fmt.Errorf("store: encode scores: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: create %s: %w", dir, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}

	return os.Rename(tmp, f.path)
}
