package handlers

import (
	"net/http"

	"gallery/archive"
	"gallery/db"
	"gallery/models"
	"gallery/storage"
	"gallery/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type FolderInfo struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Owner      string `json:"owner"`
	PhotoCount int64  `json:"photo_count"`
	Subtitle   string `json:"subtitle"`
}

type FolderCreateRequest struct {
	Name string `form:"name" binding:"required"`
}

type FolderIDRequest struct {
	FolderID uint64 `form:"folder_id" binding:"required"`
}

func FolderList(c *gin.Context, user *models.User) {
	rows, err := db.Instance.
		Table("folders").
		Select("folders.id, folders.name, count(photos.id), ifnull(min(photos.created_at), 0), ifnull(max(photos.created_at), 0)").
		Joins("left join photos on photos.folder_id = folders.id").
		Where("folders.owner = ?", user.Name).
		Group("folders.id, folders.name").
		Order("folders.created_at DESC").
		Rows()
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	defer rows.Close()
	result := []FolderInfo{}
	var minDate, maxDate int64
	for rows.Next() {
		folderInfo := FolderInfo{Owner: user.Name}
		if err = rows.Scan(&folderInfo.ID, &folderInfo.Name, &folderInfo.PhotoCount, &minDate, &maxDate); err != nil {
			c.JSON(http.StatusInternalServerError, DBError2Response)
			return
		}
		folderInfo.Subtitle = utils.GetDatesString(minDate, maxDate)
		result = append(result, folderInfo)
	}
	c.JSON(http.StatusOK, result)
}

func FolderCreate(c *gin.Context, user *models.User) {
	r := FolderCreateRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder := models.Folder{
		Name:  r.Name,
		Owner: user.Name,
	}
	result := db.Instance.Create(&folder)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, FolderInfo{
		ID:    folder.ID,
		Name:  folder.Name,
		Owner: folder.Owner,
	})
}

func FolderDelete(c *gin.Context, user *models.User) {
	r := FolderIDRequest{}
	err := c.ShouldBindWith(&r, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder := getOwnedFolder(c, user, r.FolderID)
	if folder == nil {
		return
	}
	if err = folder.DeleteCascading(storage.GetDefaultStorage()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func FolderPhotos(c *gin.Context, user *models.User) {
	r := FolderIDRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder := getOwnedFolder(c, user, r.FolderID)
	if folder == nil {
		return
	}
	var photos []models.Photo
	if err = db.Instance.Order("created_at ASC").Find(&photos, "folder_id = ?", folder.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []PhotoInfo{}
	for i := range photos {
		result = append(result, photoInfoFrom(&photos[i]))
	}
	c.JSON(http.StatusOK, result)
}

func FolderDownload(c *gin.Context, user *models.User) {
	r := FolderIDRequest{}
	err := c.ShouldBindQuery(&r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	folder := getOwnedFolder(c, user, r.FolderID)
	if folder == nil {
		return
	}
	var photos []models.Photo
	if err = db.Instance.Order("created_at ASC").Find(&photos, "folder_id = ?", folder.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	buf, err := archive.BuildFolder(folder, photos, storage.GetDefaultStorage())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("content-disposition", `attachment; filename="`+utils.SanitizeName(folder.Name)+`.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
