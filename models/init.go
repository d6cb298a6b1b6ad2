package models

import (
	"gallery/config"
	"gallery/db"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Folder{})
	db.Instance.AutoMigrate(&Photo{})

	Directory = ParseDirectory(config.USERS)
}
