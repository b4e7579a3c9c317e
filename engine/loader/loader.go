package loader

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// LoaderBackendType identifies the asset file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// LoadState is the progress of an asynchronous load.
type LoadState int

const (
	// LoadStateUnknown is reported for handles the loader never issued.
	LoadStateUnknown LoadState = iota
	// LoadStateLoading means the asset is queued or being parsed.
	LoadStateLoading
	// LoadStateLoaded means the asset is available.
	LoadStateLoaded
	// LoadStateFailed means the load ended with an error.
	LoadStateFailed
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case LoadStateLoading:
		return "loading"
	case LoadStateLoaded:
		return "loaded"
	case LoadStateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle identifies one requested asset.
type Handle int

// Default worker pool sizing.
const (
	DefaultWorkers     = 2
	DefaultQueueSize   = 16
	DefaultIdleTimeout = time.Second
)

// loadEntry tracks a single requested asset.
type loadEntry struct {
	path  string
	state LoadState
	asset *Asset
	err   error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	entries []*loadEntry
	byPath  map[string]Handle

	backend loaderBackend

	workers   int
	queueSize int
	pool      worker.DynamicWorkerPool
	taskID    int
}

// Loader loads assets off the frame loop and reports their progress by handle.
// Requests for a path already requested return the same handle, so each file is parsed once.
type Loader interface {
	// Load requests an asset. Parsing happens on the loader's worker pool; poll State
	// each frame until it leaves LoadStateLoading. Loaded and in-flight paths share a
	// handle; a path whose load failed is read again on the next request.
	//
	// Parameters:
	//   - path: the file path to the asset
	//
	// Returns:
	//   - Handle: the handle tracking this asset
	Load(path string) Handle

	// LoadReader imports an asset synchronously from a stream and registers it under name.
	//
	// Parameters:
	//   - name: the cache key for the asset
	//   - r: the reader providing glTF JSON or GLB data
	//
	// Returns:
	//   - Handle: the handle tracking this asset, loaded or failed on return
	LoadReader(name string, r io.Reader) Handle

	// State reports the progress of a load.
	//
	// Parameters:
	//   - h: the handle returned by Load
	//
	// Returns:
	//   - LoadState: the current state
	State(h Handle) LoadState

	// Asset returns the loaded asset, or nil unless the state is LoadStateLoaded.
	//
	// Parameters:
	//   - h: the handle returned by Load
	//
	// Returns:
	//   - *Asset: the asset or nil
	Asset(h Handle) *Asset

	// Err returns the failure of a load, or nil unless the state is LoadStateFailed.
	//
	// Parameters:
	//   - h: the handle returned by Load
	//
	// Returns:
	//   - error: the load error
	Err(h Handle) error

	// Path returns the path a handle was requested with.
	//
	// Parameters:
	//   - h: the handle returned by Load
	//
	// Returns:
	//   - string: the requested path, empty for unknown handles
	Path(h Handle) string

	// Close stops the worker pool. Loads still in flight are abandoned.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:        sync.RWMutex{},
		byPath:    make(map[string]Handle),
		workers:   DefaultWorkers,
		queueSize: DefaultQueueSize,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, DefaultIdleTimeout)
	return l
}

func (l *loader) Load(path string) Handle {
	l.mu.Lock()
	if h, ok := l.byPath[path]; ok {
		l.mu.Unlock()
		return h
	}
	h := l.register(&loadEntry{path: path, state: LoadStateLoading})
	l.taskID++
	id := l.taskID
	l.mu.Unlock()

	slog.Debug("queued asset load", "path", path, "handle", h)
	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: path,
		Do: func() (any, error) {
			asset, err := l.backend.Load(path)
			l.finish(h, asset, err)
			return asset, err
		},
	})
	return h
}

func (l *loader) LoadReader(name string, r io.Reader) Handle {
	l.mu.Lock()
	if h, ok := l.byPath[name]; ok {
		l.mu.Unlock()
		return h
	}
	h := l.register(&loadEntry{path: name, state: LoadStateLoading})
	l.mu.Unlock()

	asset, err := l.backend.LoadReader(name, r)
	l.finish(h, asset, err)
	return h
}

func (l *loader) State(h Handle) LoadState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e := l.entry(h); e != nil {
		return e.state
	}
	return LoadStateUnknown
}

func (l *loader) Asset(h Handle) *Asset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e := l.entry(h); e != nil && e.state == LoadStateLoaded {
		return e.asset
	}
	return nil
}

func (l *loader) Err(h Handle) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e := l.entry(h); e != nil && e.state == LoadStateFailed {
		return e.err
	}
	return nil
}

func (l *loader) Path(h Handle) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if e := l.entry(h); e != nil {
		return e.path
	}
	return ""
}

func (l *loader) Close() {
	l.pool.Stop()
}

// register appends an entry and indexes it by path. The caller holds the write lock.
func (l *loader) register(e *loadEntry) Handle {
	h := Handle(len(l.entries))
	l.entries = append(l.entries, e)
	l.byPath[e.path] = h
	return h
}

// entry resolves a handle. The caller holds a lock.
func (l *loader) entry(h Handle) *loadEntry {
	if h < 0 || int(h) >= len(l.entries) {
		return nil
	}
	return l.entries[h]
}

// finish records the outcome of a load. Failed paths are dropped from the path index.
func (l *loader) finish(h Handle, asset *Asset, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[h]
	if err != nil {
		e.state, e.err = LoadStateFailed, fmt.Errorf("failed to load %s: %w", e.path, err)
		// The failed handle keeps its error; the path is free to be retried.
		if cur, ok := l.byPath[e.path]; ok && cur == h {
			delete(l.byPath, e.path)
		}
		return
	}
	e.state, e.asset = LoadStateLoaded, asset
}
