package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// reserved holds names claimed by uploads still being written, so two
// requests in flight cannot resolve onto the same name before either file
// exists in the store.
var reserved = cmap.New[struct{}]()

// ResolveName returns desired if unused, otherwise the first base_N.ext
// variant for which exists returns false. Always terminates: the namespace is
// finite and every candidate is distinct.
func ResolveName(desired string, exists func(string) bool) string {
	if !exists(desired) {
		return desired
	}
	ext := filepath.Ext(desired)
	base := strings.TrimSuffix(desired, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", base, counter, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// SaveUnique resolves a collision-free name for desired and writes reader
// under it as one reserve-and-create step. The returned name is the one the
// bytes actually live under.
func SaveUnique(store StorageAPI, desired string, reader io.Reader) (string, int64, error) {
	for {
		name := ResolveName(desired, func(candidate string) bool {
			return reserved.Has(candidate) || store.Exists(candidate)
		})
		if !reserved.SetIfAbsent(name, struct{}{}) {
			// Claimed between the probe and here, resolve again
			continue
		}
		size, err := store.SaveExclusive(name, reader)
		reserved.Remove(name)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return name, size, err
	}
}
