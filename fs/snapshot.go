// Package fs stores raw crawl snapshots on disk. Each crawl run writes to
// a temporary directory that is merged into the permanent archive on
// Commit, so an interrupted run never leaves half-written files behind.
package fs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/henfal/mdubot"
)

// Ensure SnapshotStore implements mdubot.SnapshotStore at compile time.
var _ mdubot.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore saves fetched pages under baseDir/kind/html/<id>.html.
// With a converter configured it also writes a Markdown rendition to
// baseDir/kind/markdown/<id>.md.
type SnapshotStore struct {
	baseDir   string
	kind      string
	converter mdubot.Converter
}

// NewSnapshotStore creates a SnapshotStore for one page kind ("course" or
// "program"). The converter is optional; pass nil to skip Markdown output.
func NewSnapshotStore(baseDir, kind string, converter mdubot.Converter) *SnapshotStore {
	return &SnapshotStore{
		baseDir:   baseDir,
		kind:      kind,
		converter: converter,
	}
}

func (s *SnapshotStore) tempDir() string {
	return filepath.Join(s.baseDir, s.kind+".tmp")
}

func (s *SnapshotStore) finalDir() string {
	return filepath.Join(s.baseDir, s.kind)
}

// Save writes the page to the pending run directory.
func (s *SnapshotStore) Save(ctx context.Context, page *mdubot.Page) error {
	htmlPath := filepath.Join(s.tempDir(), "html", fmt.Sprintf("%d.html", page.SourceID))
	if err := writeFile(htmlPath, []byte(page.HTML)); err != nil {
		return err
	}

	if s.converter != nil {
		markdown, err := s.converter.Convert(page.HTML)
		if err != nil {
			return fmt.Errorf("convert snapshot %d: %w", page.SourceID, err)
		}
		mdPath := filepath.Join(s.tempDir(), "markdown", fmt.Sprintf("%d.md", page.SourceID))
		if err := writeFile(mdPath, []byte(markdown)); err != nil {
			return err
		}
	}

	return nil
}

// Commit merges the pending run into the permanent archive. Snapshots from
// earlier runs are kept; a re-crawled ID overwrites its old snapshot.
func (s *SnapshotStore) Commit() error {
	tempDir := s.tempDir()
	if _, err := os.Stat(tempDir); os.IsNotExist(err) {
		return nil
	}

	err := filepath.WalkDir(tempDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(s.finalDir(), rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		return os.Rename(path, dest)
	})
	if err != nil {
		return err
	}

	return os.RemoveAll(tempDir)
}

// Abort discards the pending run.
func (s *SnapshotStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
