package loader

import "github.com/Carmen-Shannon/oxy-aviator/engine/mesh"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithParts is an option builder that pre-populates the cache with parts.
//
// Parameters:
//   - key: the cache key
//   - parts: the parts to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the option to a loader
func WithParts(key string, parts []mesh.ExportPart) LoaderBuilderOption {
	return func(l *loader) {
		l.cache[key] = copyParts(parts)
	}
}
