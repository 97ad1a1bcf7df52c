package acquisition

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"fmt"
	"os"
)

// FileExclusionSource reads a saved network map payload from disk. The member
// argument is ignored; the file describes a single network.
type FileExclusionSource struct {
	Path string
}

func NewFileExclusionSource(path string) *FileExclusionSource {
	return &FileExclusionSource{Path: path}
}

func (f *FileExclusionSource) ExcludedDestinations(ctx context.Context, member string) (_ domain.DestinationSet, err error) {
	defer obs.Time(ctx, "file.ExcludedDestinations")(&err)

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read network file %q: %w", f.Path, err)
	}

	set, err := ParseNetworkJSON(data)
	if err != nil {
		return nil, fmt.Errorf("network file %q: %w", f.Path, err)
	}
	return set, nil
}
