package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tsoniclang/tsonic/internal/manifest"
)

// LoadManifests reads and decodes every binding-manifest file named by
// paths, bounding the concurrent file-read fan-out with errgroup the way
// the rest of the retrieval pack bounds concurrent I/O (SPEC_FULL.md §A).
// This runs entirely in the host-driven phase before IR building begins
// (spec.md §5); nothing here touches the IR or a pass's shared registries.
//
// Results are returned in the same order as paths, not completion order,
// so a caller can correlate errors back to the manifest that produced
// them; the index bookkeeping below is the price of that determinism.
func LoadManifests(ctx context.Context, paths []string) ([]*manifest.Manifest, error) {
	results := make([]*manifest.Manifest, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			m, err := decodeByExtension(p, data)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func decodeByExtension(path string, data []byte) (*manifest.Manifest, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return manifest.DecodeYAML(data)
	}
	return manifest.DecodeJSON(data)
}
