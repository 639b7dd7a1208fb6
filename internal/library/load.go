package library

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	apperrors "github.com/glorybound/cardbot/internal/platform/errors"
)

// LoadDir parses every *.yaml file directly under dir in fsys and returns
// the paths with links resolved. Files are read in sorted name order so the
// result is deterministic. The first schema error aborts the load; bad
// content should stop the process at startup, not limp along with a
// partial card pool.
func LoadDir(fsys fs.FS, dir string) ([]*Path, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob content files: %w", err)
	}
	if len(matches) == 0 {
		return nil, apperrors.New(apperrors.CodeContentSchemaInvalid,
			fmt.Sprintf("no *.yaml content files under %q", dir))
	}
	sort.Strings(matches)

	paths := make([]*Path, 0, len(matches))
	for _, file := range matches {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		p, err := ParsePath(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		paths = append(paths, p)
	}

	ResolveLinks(paths)
	return paths, nil
}
