// Package faces wraps the dlib-based detector behind the one question this
// system asks of it: how many faces are in this image.
package faces

import (
	"errors"
	"log"

	"github.com/Kagami/go-face"
)

var recognizer *face.Recognizer

var ErrNotInitialized = errors.New("face detector not initialized")

// Init loads the pretrained models from modelsDir. Call once at startup;
// skip it entirely to run with face detection disabled.
func Init(modelsDir string) error {
	var err error
	recognizer, err = face.NewRecognizer(modelsDir)
	return err
}

// Detect returns the number of faces found in the image at path.
func Detect(imgPath string) (int, error) {
	if recognizer == nil {
		return 0, ErrNotInitialized
	}
	found, err := recognizer.RecognizeFile(imgPath)
	if err != nil {
		return 0, err
	}
	return len(found), nil
}

// Count is the public face-counting contract: any failure - unreadable file,
// undecodable bytes, detector unavailable - degrades to a zero count. The
// cause still reaches the logs.
func Count(imgPath string) int {
	count, err := Detect(imgPath)
	if err != nil {
		log.Printf("Face detection degraded for %s: %v", imgPath, err)
		return 0
	}
	return count
}
