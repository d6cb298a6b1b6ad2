package models

import (
	"errors"
	"io/fs"
	"log"

	"gallery/db"
	"gallery/storage"
)

type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	// Name is the stored filename, unique across the whole flat namespace
	Name          string `gorm:"type:varchar(300);index:uniq_photo_name,unique;not null"`
	Description   string `gorm:"type:text"`
	Uploader      string `gorm:"type:varchar(100);not null;index"`
	FacesDetected int    `gorm:"not null;default:0"`
	FolderID      uint64 `gorm:"not null;index"`
	Folder        Folder `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Size          int64
	ThumbSize     int64
	MimeType      string `gorm:"type:varchar(50)"`
}

// CanModify reports whether the account may caption, delete or fetch this
// photo. Checked independently from the folder owner.
func (p *Photo) CanModify(userName string) bool {
	return p.Uploader == userName
}

func (p *Photo) GetPath() string {
	return p.Name
}

// Thumbs live in their own sub-directory and are always JPEG
func (p *Photo) GetThumbPath() string {
	return "thumbs/" + p.Name + ".jpg"
}

// DeleteWithFiles removes the record first, so no reader can observe a photo
// whose row is gone but whose bytes still serve, then removes the files.
func (p *Photo) DeleteWithFiles(store storage.StorageAPI) error {
	if err := db.Instance.Delete(p).Error; err != nil {
		return err
	}
	p.RemoveFiles(store)
	return nil
}

func (p *Photo) RemoveFiles(store storage.StorageAPI) {
	if err := store.Delete(p.GetPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Cannot remove file %s of photo %d: %v", p.Name, p.ID, err)
	}
	if p.ThumbSize > 0 {
		if err := store.Delete(p.GetThumbPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Cannot remove thumb of photo %d: %v", p.ID, err)
		}
	}
}
