package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/docsite/internal/errors"
)

// MaxFileSize is the default read limit for site files and documents (4MB).
const MaxFileSize = 4 * 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads a file of at most limit bytes.
// A limit of zero or less means MaxFileSize.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes", path, info.Size())
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds %d bytes", path, limit)
	}

	return data, nil
}
