package sqlite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/binderkit/binder/pkg/types"
)

// Backup copies the database file into dir under a timestamped name and
// returns the backup path. The store must be open; the copy runs under
// the write lock so no mutation lands mid-copy.
func (s *Store) Backup(dir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	name := fmt.Sprintf("binder-%s.db", time.Now().UTC().Format("20060102-150405"))
	dst := filepath.Join(dir, name)
	if err := copyFile(DBPath(s.config), dst); err != nil {
		return "", err
	}

	s.log.Info(context.Background(), "backup written", "path", dst)
	return dst, nil
}

// Restore replaces the database file described by config with the backup
// at path. The store must be closed first: restoring under a live handle
// would violate the single-writer model. The next Open migrates the
// restored file as usual.
func Restore(config types.Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("locating backup: %w", err)
	}
	return copyFile(path, DBPath(config))
}

// copyFile copies src to dst, fsyncing before close so the copy is
// durable.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("syncing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dst, err)
	}
	return nil
}
