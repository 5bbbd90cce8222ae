package usgs

import (
	"context"
	"fmt"
	"os"

	"github.com/couchcryptid/quake-map/internal/domain"
)

// FileSource reads a feed document saved to disk, for offline rendering and validation.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for the given path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch reads and decodes the file. The context is unused.
func (s *FileSource) Fetch(_ context.Context) (domain.FeatureCollection, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("open feed file: %w", err)
	}
	defer f.Close()

	return domain.DecodeFeed(f)
}
