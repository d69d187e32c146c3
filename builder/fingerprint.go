package builder

import (
	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns a content hash of the map, independent of insertion order
func (m Map) Fingerprint() (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	for _, name := range m.Names() {
		entry := m[name]
		for _, field := range []string{name, entry.Library, entry.Path} {
			if _, err = hash.Write([]byte(field)); err != nil {
				return 0, err
			}
			if _, err = hash.Write([]byte{0}); err != nil {
				return 0, err
			}
		}
	}
	return hash.Sum64(), nil
}
