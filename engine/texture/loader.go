package texture

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/charmbracelet/log"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu      sync.RWMutex
	cache   map[string]*Texture
	workers int
	pool    worker.DynamicWorkerPool
	logger  *log.Logger
	decode  func(path string) (*Texture, error)
}

// Loader decodes image files into textures and caches them by path.
type Loader interface {
	// Load decodes the image at path, or returns the cached texture from an earlier load.
	//
	// Parameters:
	//   - path: the file path
	//
	// Returns:
	//   - *Texture: the decoded texture
	//   - error: ErrEmptyPath, or a wrapped open/decode error
	Load(path string) (*Texture, error)

	// LoadCube decodes the six faces named by CubePaths(base) in parallel.
	//
	// Parameters:
	//   - base: the cube map path prefix
	//
	// Returns:
	//   - *Cube: the assembled cube map
	//   - error: the first face error in side order, or ErrCubeFaceMismatch
	LoadCube(base string) (*Cube, error)

	// Cached reports whether path has been loaded successfully before.
	Cached(path string) bool
}

var _ Loader = &loader{}

// NewLoader creates a texture loader.
//
// Parameters:
//   - opts: variadic list of LoaderBuilderOption functions to configure the loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(opts ...LoaderBuilderOption) Loader {
	l := &loader{
		cache:   make(map[string]*Texture),
		workers: min(runtime.NumCPU(), 6),
		logger:  log.Default(),
		decode:  DecodeFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	// One pool for the loader's lifetime; faces from concurrent LoadCube calls share it.
	l.pool = worker.NewDynamicWorkerPool(l.workers, 12, 1*time.Second)
	return l
}

func (l *loader) Load(path string) (*Texture, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	l.mu.RLock()
	tex, ok := l.cache[path]
	l.mu.RUnlock()
	if ok {
		return tex, nil
	}

	start := time.Now()
	tex, err := l.decode(path)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("texture loaded", "path", path, "width", tex.Width, "height", tex.Height, "took", time.Since(start))

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.cache[path]; ok {
		return cached, nil
	}
	l.cache[path] = tex
	return tex, nil
}

func (l *loader) LoadCube(base string) (*Cube, error) {
	if base == "" {
		return nil, ErrEmptyPath
	}
	paths := CubePaths(base)

	cube := &Cube{Name: base}
	var errs [6]error
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		l.pool.SubmitTask(worker.Task{
			ID:      i,
			Payload: p,
			Do: func() (any, error) {
				defer wg.Done()
				cube.Faces[i], errs[i] = l.Load(p)
				return cube.Faces[i], errs[i]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("cube face %s: %w", CubeSide(i), err)
		}
	}
	if err := cube.validate(); err != nil {
		return nil, fmt.Errorf("cube %s: %w", base, err)
	}
	return cube, nil
}

func (l *loader) Cached(path string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[path]
	return ok
}
