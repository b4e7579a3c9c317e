package loader

import (
	"io"
)

// loaderBackend loads an Asset from a file or stream.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Asset: the imported asset
	//   - error: error if loading fails
	Load(path string) (*Asset, error)

	// LoadReader imports an asset from a reader stream.
	//
	// Parameters:
	//   - name: the name recorded as the asset path
	//   - r: the reader providing asset data
	//
	// Returns:
	//   - *Asset: the imported asset
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (*Asset, error)
}
