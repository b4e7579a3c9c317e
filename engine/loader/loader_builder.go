package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets the maximum number of parsing goroutines.
// Values below one are ignored.
//
// Parameters:
//   - workers: the worker pool size
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(workers int) LoaderBuilderOption {
	return func(l *loader) {
		if workers > 0 {
			l.workers = workers
		}
	}
}

// WithQueueSize is an option builder that sets how many loads may wait for a worker
// before Load blocks.
//
// Parameters:
//   - size: the task queue capacity
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size option to a loader
func WithQueueSize(size int) LoaderBuilderOption {
	return func(l *loader) {
		if size > 0 {
			l.queueSize = size
		}
	}
}

// WithAsset is an option builder that pre-registers an already loaded asset under a path.
// Loading that path returns the registered asset without touching the file system.
//
// Parameters:
//   - path: the cache key for the asset
//   - asset: the asset to register
//
// Returns:
//   - LoaderBuilderOption: a function that applies the asset option to a loader
func WithAsset(path string, asset *Asset) LoaderBuilderOption {
	return func(l *loader) {
		l.register(&loadEntry{path: path, state: LoadStateLoaded, asset: asset})
	}
}

// withBackend replaces the format backend. Used by tests.
func withBackend(b loaderBackend) LoaderBuilderOption {
	return func(l *loader) {
		l.backend = b
	}
}
