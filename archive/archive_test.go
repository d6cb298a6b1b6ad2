package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"gallery/models"
	"gallery/storage"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) storage.StorageAPI {
	t.Helper()
	return storage.NewDiskStorage(&storage.Bucket{
		ID:          1,
		Name:        "test",
		StorageType: storage.StorageTypeFile,
		Path:        t.TempDir(),
	})
}

func TestBuildFolder(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Save("a.jpg", strings.NewReader("first image bytes"))
	require.NoError(t, err)
	_, err = store.Save("a_1.jpg", strings.NewReader("second image bytes"))
	require.NoError(t, err)

	folder := &models.Folder{ID: 7, Name: "Trip", Owner: "maminda"}
	photos := []models.Photo{
		{Name: "a.jpg", Uploader: "maminda", Description: "on the beach", FacesDetected: 2},
		{Name: "a_1.jpg", Uploader: "maminda"},
		{Name: "gone.jpg", Uploader: "maminda"}, // backing file missing
	}

	buf, err := BuildFolder(folder, photos, store)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	entries := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = string(data)
	}

	// Missing backing file is skipped, everything else is in under its stored name
	require.Len(t, entries, 3)
	require.Equal(t, "first image bytes", entries["a.jpg"])
	require.Equal(t, "second image bytes", entries["a_1.jpg"])
	require.NotContains(t, entries, "gone.jpg")

	// The manifest still lists all three, in fetch order
	want := "Folder: Trip\nOwner: maminda\n\nPhotos:\n" +
		"\nFilename: a.jpg\nDescription: on the beach\nFaces Detected: 2\nUploader: maminda\n" +
		"\nFilename: a_1.jpg\nDescription: \nFaces Detected: 0\nUploader: maminda\n" +
		"\nFilename: gone.jpg\nDescription: \nFaces Detected: 0\nUploader: maminda\n"
	require.Equal(t, want, entries[ManifestName])
}

func TestBuildFolderEmpty(t *testing.T) {
	store := newTestStore(t)
	folder := &models.Folder{ID: 1, Name: "Empty", Owner: "praise"}

	buf, err := BuildFolder(folder, nil, store)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	require.Equal(t, ManifestName, zr.File[0].Name)

	rc, err := zr.Open(ManifestName)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	rc.Close()
	require.NoError(t, err)
	require.Equal(t, "Folder: Empty\nOwner: praise\n\nPhotos:\n", string(data))
}
