package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirSource reads resources below a base directory.
// Names are confined to the directory, ".." segments are rejected.
type DirSource struct {
	fs       afero.Fs
	dir      string
	osBacked bool
}

func NewDirSource(base afero.Fs, dir string) *DirSource {
	_, osBacked := base.(*afero.OsFs)
	return &DirSource{
		fs:       afero.NewBasePathFs(base, dir),
		dir:      dir,
		osBacked: osBacked,
	}
}

func (d *DirSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !filepath.IsLocal(name) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	data, err := afero.ReadFile(d.fs, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return data, nil
}
