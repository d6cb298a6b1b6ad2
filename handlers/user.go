package handlers

import (
	"net/http"

	"gallery/auth"
	"gallery/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Name   string `form:"name" binding:"required"`
	Secret string `form:"secret" binding:"required"`
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	err := c.ShouldBindWith(&postReq, binding.Form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := models.UserLogin(postReq.Name, postReq.Secret)
	if err != nil {
		// Same response for unknown name and wrong secret
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "name": user.Name})
}
