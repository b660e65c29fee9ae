package scan

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zsiec/cadence/internal/errors"
)

// BookmarksExt is the extension of the files WriteBookmarks produces.
const BookmarksExt = ".bookmarks"

// WriteBookmarks writes frames to "<name>.bookmarks" under dir in the
// editor bookmark format: decimal integers joined by ", ", no brackets,
// no trailing newline. An empty frame list produces an empty file.
func WriteBookmarks(dir, name string, frames []int) error {
	parts := make([]string, len(frames))
	for i, n := range frames {
		parts[i] = strconv.Itoa(n)
	}

	path := filepath.Join(dir, name+BookmarksExt)
	if err := os.WriteFile(path, []byte(strings.Join(parts, ", ")), 0644); err != nil {
		return errors.WrapInternalError(err, "failed to write bookmarks file")
	}
	return nil
}
