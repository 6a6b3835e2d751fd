// Package source provides read access to the results resources
// (manifest and race files) either from a local directory or from a
// remote http(s) location.
package source

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/afero"
)

var ErrNotFound = errors.New("resource not found")

type Source interface {
	// Fetch reads the resource with the given relative name.
	// Missing resources are reported with an error wrapping ErrNotFound.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// New creates a Source from a location.
// Locations starting with http:// or https:// are handled remotely,
// everything else is treated as a local directory.
func New(location string) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(WithBaseURL(location))
	}
	return NewDirSource(afero.NewOsFs(), location)
}

// LocalDir reports the directory backing src if it is a local source.
func LocalDir(src Source) (string, bool) {
	if d, ok := src.(*DirSource); ok && d.osBacked {
		return d.dir, true
	}
	return "", false
}
