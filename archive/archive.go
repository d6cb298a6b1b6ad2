// Package archive assembles a folder's photos into a single downloadable zip
// with an embedded text manifest.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"
	"strings"

	"gallery/models"
	"gallery/storage"
)

const ManifestName = "metadata.txt"

// BuildFolder writes each photo with an existing backing file into a
// compressed entry named by its stored filename, then appends the manifest.
// Missing files are skipped, not fatal; the manifest still lists them. The
// returned buffer is finalized and ready to be read from the start.
func BuildFolder(folder *models.Folder, photos []models.Photo, store storage.StorageAPI) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for i := range photos {
		if err := addPhoto(zw, store, &photos[i]); err != nil {
			log.Printf("Skipping %s in archive of folder %d: %v", photos[i].Name, folder.ID, err)
		}
	}
	manifest, err := zw.Create(ManifestName)
	if err != nil {
		return nil, err
	}
	if _, err = manifest.Write([]byte(Manifest(folder, photos))); err != nil {
		return nil, err
	}
	if err = zw.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

func addPhoto(zw *zip.Writer, store storage.StorageAPI, photo *models.Photo) error {
	// Load fully before creating the entry: a photo that fails to read half
	// way must not leave a truncated entry behind
	content := bytes.Buffer{}
	if _, err := store.Load(photo.GetPath(), &content); err != nil {
		return err
	}
	entry, err := zw.Create(photo.Name)
	if err != nil {
		return err
	}
	_, err = entry.Write(content.Bytes())
	return err
}

// Manifest renders the plain-text folder summary, one blank-line separated
// block per photo, in the order the photos were fetched.
func Manifest(folder *models.Folder, photos []models.Photo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Folder: %s\nOwner: %s\n\nPhotos:\n", folder.Name, folder.Owner)
	for i := range photos {
		p := &photos[i]
		fmt.Fprintf(&b, "\nFilename: %s\nDescription: %s\nFaces Detected: %d\nUploader: %s\n",
			p.Name, p.Description, p.FacesDetected, p.Uploader)
	}
	return b.String()
}
