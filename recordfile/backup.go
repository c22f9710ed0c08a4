package recordfile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kjk/students/u"
)

const (
	BackupZstd   = "zstd"
	BackupBrotli = "brotli"
)

// BackupName returns a name of a backup of path made at t, e.g.
// students-20240115-103045.txt.zst
func BackupName(path string, format string, t time.Time) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := u.TrimExt(base) + "-" + t.Format("20060102-150405") + ext
	if format == BackupBrotli {
		return name + ".br"
	}
	return name + ".zst"
}

// Backup writes a compressed copy of path to dir and returns its path.
// If path doesn't exist there's nothing to back up and it returns "".
func Backup(path string, dir string, format string) (string, error) {
	if !u.FileExists(path) {
		return "", nil
	}
	compress := u.ZstdCompressFile
	switch format {
	case BackupZstd, "":
		// default
	case BackupBrotli:
		compress = u.BrCompressFile
	default:
		return "", fmt.Errorf("unknown backup format '%s'", format)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, BackupName(path, format, time.Now()))
	if err := compress(dst, path); err != nil {
		return "", fmt.Errorf("failed to back up '%s' to '%s': %w", path, dst, err)
	}
	return dst, nil
}
