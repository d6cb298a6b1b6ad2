package models

import (
	"gallery/db"
	"gallery/storage"

	"gorm.io/gorm"
)

type Folder struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string  `gorm:"type:varchar(100);not null"`
	Owner     string  `gorm:"type:varchar(100);not null;index"`
	Photos    []Photo `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CanAccess reports whether the account may view or mutate this folder.
func (f *Folder) CanAccess(userName string) bool {
	return f.Owner == userName
}

// DeleteCascading removes the folder and all of its photo records as a single
// transaction, so a concurrent reader sees either everything or nothing. The
// backing files go afterwards; one that cannot be removed is only logged -
// its name stays taken in the namespace, so nothing can ever resolve onto it.
func (f *Folder) DeleteCascading(store storage.StorageAPI) error {
	var photos []Photo
	if err := db.Instance.Find(&photos, "folder_id = ?", f.ID).Error; err != nil {
		return err
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Photo{}, "folder_id = ?", f.ID).Error; err != nil {
			return err
		}
		return tx.Delete(f).Error
	})
	if err != nil {
		return err
	}
	for i := range photos {
		photos[i].RemoveFiles(store)
	}
	return nil
}
