package storage

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) StorageAPI {
	t.Helper()
	return NewDiskStorage(&Bucket{
		ID:          1,
		Name:        "test",
		StorageType: StorageTypeFile,
		Path:        t.TempDir(),
	})
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name     string
		desired  string
		existing []string
		want     string
	}{
		{"free name kept", "a.jpg", nil, "a.jpg"},
		{"one collision", "a.jpg", []string{"a.jpg"}, "a_1.jpg"},
		{"two collisions", "a.jpg", []string{"a.jpg", "a_1.jpg"}, "a_2.jpg"},
		{"gap reused", "a.jpg", []string{"a.jpg", "a_2.jpg"}, "a_1.jpg"},
		{"no extension", "readme", []string{"readme"}, "readme_1"},
		{"double extension", "archive.tar.gz", []string{"archive.tar.gz"}, "archive.tar_1.gz"},
		{"suffix already there", "a_1.jpg", []string{"a_1.jpg"}, "a_1_1.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taken := map[string]bool{}
			for _, name := range tt.existing {
				taken[name] = true
			}
			got := ResolveName(tt.desired, func(name string) bool { return taken[name] })
			if got != tt.want {
				t.Errorf("ResolveName(%q) = %q, want %q", tt.desired, got, tt.want)
			}
			if taken[got] {
				t.Errorf("ResolveName(%q) = %q which is already taken", tt.desired, got)
			}
		})
	}
}

// Feeding every result back into the namespace must keep producing new names.
func TestResolveNameSequenceDistinct(t *testing.T) {
	taken := map[string]bool{}
	for i := 0; i < 50; i++ {
		got := ResolveName("pic.png", func(name string) bool { return taken[name] })
		if taken[got] {
			t.Fatalf("iteration %d: %q resolved twice", i, got)
		}
		taken[got] = true
	}
}

func TestSaveUnique(t *testing.T) {
	store := newTestStore(t)

	name, size, err := SaveUnique(store, "a.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	require.Equal(t, "a.jpg", name)
	require.Equal(t, int64(3), size)

	name, _, err = SaveUnique(store, "a.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	require.Equal(t, "a_1.jpg", name)

	var content strings.Builder
	_, err = store.Load("a.jpg", &content)
	require.NoError(t, err)
	require.Equal(t, "one", content.String())

	content.Reset()
	_, err = store.Load("a_1.jpg", &content)
	require.NoError(t, err)
	require.Equal(t, "two", content.String())
}

func TestSaveUniqueConcurrent(t *testing.T) {
	store := newTestStore(t)
	const uploads = 32

	var wg sync.WaitGroup
	names := make(chan string, uploads)
	errs := make(chan error, uploads)
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, _, err := SaveUnique(store, "burst.jpg", strings.NewReader("x"))
			if err != nil {
				errs <- err
				return
			}
			names <- name
		}()
	}
	wg.Wait()
	close(names)
	close(errs)

	for err := range errs {
		t.Fatalf("SaveUnique failed: %v", err)
	}
	seen := map[string]bool{}
	for name := range names {
		if seen[name] {
			t.Fatalf("name %q handed out twice", name)
		}
		seen[name] = true
	}
	require.Len(t, seen, uploads)
}
