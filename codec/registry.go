package codec

import "sync"

// Registry holds the codecs known to the process, addressable by either
// name or transfer syntax UID.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

var defaultRegistry = &Registry{
	codecs: make(map[string]Codec),
}

// Register adds a codec to the default registry under both its name and
// its UID.
func Register(c Codec) {
	defaultRegistry.Register(c)
}

// Get retrieves a codec from the default registry by name or UID.
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns all codecs in the default registry.
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds a codec under both its name and its UID. A later
// registration with the same keys replaces the earlier one.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[c.Name()] = c
	r.codecs[c.UID()] = c
}

// Get retrieves a codec by name or UID.
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[nameOrUID]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return c, nil
}

// List returns the registered codecs, with each codec reported once even
// though it is stored under two keys.
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Codec]bool, len(r.codecs))
	codecs := make([]Codec, 0, len(r.codecs))

	for _, c := range r.codecs {
		if !seen[c] {
			seen[c] = true
			codecs = append(codecs, c)
		}
	}

	return codecs
}
