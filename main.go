package main

import (
	"log"
	"strings"
	"time"

	"gallery/auth"
	"gallery/config"
	"gallery/db"
	"gallery/faces"
	"gallery/handlers"
	"gallery/models"
	"gallery/storage"
	"gallery/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	if config.FACE_DETECT {
		if err := faces.Init(config.FACE_MODELS_DIR); err != nil {
			// Uploads still work, they just get a zero face count
			log.Printf("Face detection unavailable: %v", err)
		}
	}

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/photo/fetch", "/folder/download"})))
	}
	router.Use(utils.NoCacheMiddleware) // Content end-points override this themselves
	router.Use(utils.MaxBodySizeMiddleware(int64(config.MAX_UPLOAD_MB) << 20))

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	// Folder handlers
	authRouter.GET("/folder/list", handlers.FolderList)
	authRouter.POST("/folder/create", handlers.FolderCreate)
	authRouter.POST("/folder/delete", handlers.FolderDelete)
	authRouter.GET("/folder/photos", handlers.FolderPhotos)
	authRouter.GET("/folder/download", handlers.FolderDownload)
	// Photo handlers
	authRouter.POST("/photo/upload", handlers.PhotoUpload)
	authRouter.POST("/photo/caption", handlers.PhotoCaption)
	authRouter.POST("/photo/delete", handlers.PhotoDelete)
	authRouter.GET("/photo/fetch", handlers.PhotoFetch)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
