package loader

import (
	"io"
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	cache map[string][]mesh.ExportPart
}

// Loader reads glTF/GLB files back into meshes, the inverse of mesh.WriteGLB.
// Results are cached by path or name and returned as copies.
type Loader interface {
	// Load imports a glTF or GLB file and caches the result.
	// If the file is already cached, the cached parts are returned.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - []mesh.ExportPart: one part per mesh primitive placed by a node, in node order
	//   - error: error if loading fails
	Load(path string) ([]mesh.ExportPart, error)

	// LoadReader imports a glTF or GLB stream and caches it by name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing the document
	//
	// Returns:
	//   - []mesh.ExportPart: the imported parts
	//   - error: error if decoding fails
	LoadReader(name string, r io.Reader) ([]mesh.ExportPart, error)

	// Cached reports whether key is in the cache.
	Cached(key string) bool

	// Evict removes key from the cache.
	Evict(key string)
}

var _ Loader = &loader{}

// NewLoader creates a Loader with an empty cache.
//
// Parameters:
//   - options: variadic list of LoaderBuilderOption functions
//
// Returns:
//   - Loader: the new loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{cache: make(map[string][]mesh.ExportPart)}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) Load(path string) ([]mesh.ExportPart, error) {
	if parts, ok := l.fromCache(path); ok {
		return parts, nil
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: open %s", path)
	}
	return l.store(path, doc)
}

func (l *loader) LoadReader(name string, r io.Reader) ([]mesh.ExportPart, error) {
	if parts, ok := l.fromCache(name); ok {
		return parts, nil
	}
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "loader: decode %s", name)
	}
	return l.store(name, doc)
}

func (l *loader) Cached(key string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[key]
	return ok
}

func (l *loader) Evict(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.cache, key)
}

func (l *loader) store(key string, doc *gltf.Document) ([]mesh.ExportPart, error) {
	parts, err := extractParts(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: %s", key)
	}
	l.mu.Lock()
	l.cache[key] = parts
	l.mu.Unlock()
	return copyParts(parts), nil
}

func (l *loader) fromCache(key string) ([]mesh.ExportPart, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	parts, ok := l.cache[key]
	if !ok {
		return nil, false
	}
	return copyParts(parts), true
}

func copyParts(parts []mesh.ExportPart) []mesh.ExportPart {
	out := make([]mesh.ExportPart, len(parts))
	for i, p := range parts {
		out[i] = p
		out[i].Mesh = mesh.Mesh{
			Vertices: append([]mesh.Vertex(nil), p.Mesh.Vertices...),
			Indices:  append([]uint32(nil), p.Mesh.Indices...),
		}
	}
	return out
}
