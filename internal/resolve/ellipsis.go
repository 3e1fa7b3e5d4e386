package resolve

import (
	"path/filepath"

	"ncd/internal/fsys"
)

// Ellipsis walks level directory levels upward from cwd and appends
// the optional tail. Walking past the filesystem root fails with
// BoundaryError; a tail that does not exist fails with NotFoundError.
// The tail is taken literally, wildcards are not expanded here.
func Ellipsis(fs fsys.FS, cwd string, level int, tail string) (string, error) {
	dir := cwd
	for i := 0; i < level; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &BoundaryError{Level: level}
		}
		dir = parent
	}

	if tail != "" {
		dir = joinSegments(dir, splitSegments(tail))
		if !fs.IsDir(dir) {
			return "", &NotFoundError{Path: dir}
		}
	}
	return dir, nil
}
