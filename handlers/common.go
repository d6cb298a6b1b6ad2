package handlers

import (
	"net/http"
	"strconv"

	"gallery/db"
	"gallery/models"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

// DeniedResponse carries the safe place to land after a refusal
type DeniedResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

var (
	// Predefined errors
	OKResponse       = Response{}
	NotFoundResponse = Response{"not found"}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

const folderListPath = "/folder/list"

func folderPhotosPath(folderID uint64) string {
	return "/folder/photos?folder_id=" + strconv.FormatUint(folderID, 10)
}

func denied(c *gin.Context, redirect string) {
	c.JSON(http.StatusForbidden, DeniedResponse{Error: "permission denied", Redirect: redirect})
}

// getOwnedFolder loads a folder and enforces the ownership guard. On any
// failure the response is already written and nil comes back.
func getOwnedFolder(c *gin.Context, user *models.User, folderID uint64) *models.Folder {
	folder := models.Folder{}
	result := db.Instance.Find(&folder, "id = ?", folderID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return nil
	}
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return nil
	}
	if !folder.CanAccess(user.Name) {
		denied(c, folderListPath)
		return nil
	}
	return &folder
}

// getOwnedPhoto is the photo-level guard; it checks the uploader, not the
// folder owner. The refusal redirect points at the photo's folder view.
func getOwnedPhoto(c *gin.Context, user *models.User, photoID uint64) *models.Photo {
	photo := models.Photo{}
	result := db.Instance.Find(&photo, "id = ?", photoID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return nil
	}
	if result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, NotFoundResponse)
		return nil
	}
	if !photo.CanModify(user.Name) {
		denied(c, folderPhotosPath(photo.FolderID))
		return nil
	}
	return &photo
}
