package handlers

import (
	"bytes"
	"fmt"
	"log"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gallery/config"
	"gallery/db"
	"gallery/faces"
	"gallery/models"
	"gallery/storage"
	"gallery/utils"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const thumbSize = 1280

type PhotoInfo struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Uploader      string `json:"uploader"`
	FacesDetected int    `json:"faces_detected"`
	FolderID      uint64 `json:"folder_id"`
	Size          int64  `json:"size"`
	MimeType      string `json:"mime_type"`
}

type PhotoUploadRequest struct {
	FolderID uint64 `form:"folder_id" binding:"required"`
}

type PhotoUploadResponse struct {
	Error  string      `json:"error"`
	Photos []PhotoInfo `json:"photos"`
	Failed []string    `json:"failed"`
}

type PhotoCaptionRequest struct {
	PhotoID uint64 `form:"photo_id" binding:"required"`
	Caption string `form:"caption"`
}

type PhotoIDRequest struct {
	PhotoID uint64 `form:"photo_id" binding:"required"`
}

type PhotoFetchRequest struct {
	PhotoID uint64 `form:"photo_id" binding:"required"`
	Thumb   uint   `form:"thumb"`
}

func photoInfoFrom(photo *models.Photo) PhotoInfo {
	return PhotoInfo{
		ID:            photo.ID,
		Name:          photo.Name,
		Description:   photo.Description,
		Uploader:      photo.Uploader,
		FacesDetected: photo.FacesDetected,
		FolderID:      photo.FolderID,
		Size:          photo.Size,
		MimeType:      photo.MimeType,
	}
}

// PhotoUpload accepts a multipart batch for an owned folder. Each file is
// processed on its own: one bad file lands in the failed list while the rest
// of the batch goes through.
func PhotoUpload(c *gin.Context, user *models.User) {
	r := PhotoUploadRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder := getOwnedFolder(c, user, r.FolderID)
	if folder == nil {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files selected"})
		return
	}
	store := storage.GetDefaultStorage()
	response := PhotoUploadResponse{Photos: []PhotoInfo{}, Failed: []string{}}
	for _, file := range files {
		photo, err := savePhoto(folder, user, file, store)
		if err != nil {
			log.Printf("Upload of %s failed: %v", file.Filename, err)
			response.Failed = append(response.Failed, file.Filename)
			continue
		}
		response.Photos = append(response.Photos, photoInfoFrom(photo))
	}
	c.JSON(http.StatusOK, response)
}

func savePhoto(folder *models.Folder, user *models.User, file *multipart.FileHeader, store storage.StorageAPI) (*models.Photo, error) {
	desired := utils.SanitizeName(filepath.Base(file.Filename))
	if desired == "" || strings.Trim(desired, "_.") == "" {
		return nil, fmt.Errorf("unusable filename %q", file.Filename)
	}
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	name, size, err := storage.SaveUnique(store, desired, reader)
	if err != nil {
		return nil, err
	}
	photo := models.Photo{
		Name:     name,
		Uploader: user.Name,
		FolderID: folder.ID,
		Size:     size,
		MimeType: mime.TypeByExtension(strings.ToLower(filepath.Ext(name))),
	}
	if strings.HasPrefix(photo.MimeType, "image/") {
		photo.ThumbSize = createThumb(store, &photo)
		if config.FACE_DETECT {
			photo.FacesDetected = countFaces(store, photo.GetPath())
		}
	}
	if err = db.Instance.Create(&photo).Error; err != nil {
		// The bytes are already persisted; take them back out so the name frees up
		photo.RemoveFiles(store)
		return nil, err
	}
	return &photo, nil
}

func createThumb(store storage.StorageAPI, photo *models.Photo) int64 {
	var content, thumb bytes.Buffer
	if _, err := store.Load(photo.GetPath(), &content); err != nil {
		log.Printf("Cannot read %s back for thumbnailing: %v", photo.Name, err)
		return 0
	}
	if _, err := utils.CreateThumb(thumbSize, &content, &thumb); err != nil {
		log.Printf("No thumbnail for %s: %v", photo.Name, err)
		return 0
	}
	size, err := store.Save(photo.GetThumbPath(), &thumb)
	if err != nil {
		log.Printf("Cannot save thumbnail for %s: %v", photo.Name, err)
		return 0
	}
	return size
}

// countFaces hands the stored image to the detector. A remote bucket gets a
// temporary local copy first. Any failure means a zero count, never a failed
// upload.
func countFaces(store storage.StorageAPI, path string) int {
	fullPath := store.GetFullPath(path)
	if store.GetBucket().IsS3() {
		out, err := os.Create(fullPath)
		if err != nil {
			log.Printf("Cannot create local copy for face detection: %v", err)
			return 0
		}
		_, err = store.Load(path, out)
		out.Close()
		defer os.Remove(fullPath)
		if err != nil {
			log.Printf("Cannot download %s for face detection: %v", path, err)
			return 0
		}
	}
	return faces.Count(fullPath)
}

func PhotoCaption(c *gin.Context, user *models.User) {
	r := PhotoCaptionRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo := getOwnedPhoto(c, user, r.PhotoID)
	if photo == nil {
		return
	}
	if err = db.Instance.Model(photo).Update("description", r.Caption).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	photo.Description = r.Caption
	c.JSON(http.StatusOK, photoInfoFrom(photo))
}

func PhotoDelete(c *gin.Context, user *models.User) {
	r := PhotoIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo := getOwnedPhoto(c, user, r.PhotoID)
	if photo == nil {
		return
	}
	if err = photo.DeleteWithFiles(storage.GetDefaultStorage()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func PhotoFetch(c *gin.Context, user *models.User) {
	r := PhotoFetchRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo := getOwnedPhoto(c, user, r.PhotoID)
	if photo == nil {
		return
	}
	store := storage.GetDefaultStorage()
	if r.Thumb == 1 {
		if photo.ThumbSize <= 0 || !store.Exists(photo.GetThumbPath()) {
			c.JSON(http.StatusNotFound, NotFoundResponse)
			return
		}
		c.Header("cache-control", "private, max-age=604800")
		c.Header("content-type", "image/jpeg")
		store.Serve(photo.GetThumbPath(), c.Request, c.Writer)
		return
	}
	if !store.Exists(photo.GetPath()) {
		// The row survived but the bytes are gone; reconcile the orphan now
		log.Printf("Reconciling orphaned photo %d (%s)", photo.ID, photo.Name)
		_ = photo.DeleteWithFiles(store)
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return
	}
	c.Header("cache-control", "private, max-age=604800")
	if photo.MimeType != "" {
		c.Header("content-type", photo.MimeType)
	}
	store.Serve(photo.GetPath(), c.Request, c.Writer)
}
