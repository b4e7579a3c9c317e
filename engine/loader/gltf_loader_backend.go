package loader

import (
	"io"
	"log/slog"
	"time"
)

// gltfLoaderBackend reads glTF JSON and GLB files through the importer and logs what
// each import produced.
type gltfLoaderBackend struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackend{}

func newGLTFLoaderBackend() *gltfLoaderBackend {
	return &gltfLoaderBackend{importer: newGLTFImporter()}
}

func (b *gltfLoaderBackend) Load(path string) (*Asset, error) {
	start := time.Now()
	asset, err := b.importer.Import(path)
	return b.report(asset, err, start)
}

func (b *gltfLoaderBackend) LoadReader(name string, r io.Reader) (*Asset, error) {
	start := time.Now()
	asset, err := b.importer.ImportReader(name, r)
	return b.report(asset, err, start)
}

func (b *gltfLoaderBackend) report(asset *Asset, err error, start time.Time) (*Asset, error) {
	if err != nil {
		return nil, err
	}
	instances := 0
	for _, s := range asset.Scenes {
		instances += len(s.Instances)
	}
	slog.Debug("imported asset",
		"path", asset.Path,
		"scenes", len(asset.Scenes),
		"instances", instances,
		"animations", len(asset.Animations),
		"elapsed", time.Since(start),
	)
	return asset, nil
}
