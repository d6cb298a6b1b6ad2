package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"gallery/config"
	"gallery/db"
)

// StorageAPI is the contract the rest of the system uses to read and write
// photo bytes. Paths are relative to the bucket and, except for thumbnails,
// live in a single flat namespace shared by all folders and users.
type StorageAPI interface {
	GetFullPath(path string) string
	Exists(path string) bool
	GetSize(path string) int64
	Save(path string, reader io.Reader) (int64, error)
	// SaveExclusive fails with fs.ErrExist when the path is already taken.
	SaveExclusive(path string, reader io.Reader) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetBucket() *Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 && config.DEFAULT_BUCKET_DIR != "" {
		bucket := Bucket{
			Name:        "local",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
		if err := bucket.Create(); err != nil {
			panic(err)
		}
		buckets = append(buckets, bucket)
	}
	log.Printf("Storage Buckets found: %d\n", len(buckets))

	cachedStorage = []StorageAPI{}
	for i := range buckets {
		cachedStorage = append(cachedStorage, NewStorage(&buckets[i]))
	}
}

func NewStorage(bucket *Bucket) StorageAPI {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket)
	case StorageTypeS3:
		return NewS3Storage(bucket)
	default:
		panic(fmt.Sprintf("Storage type unavailable for Bucket %d", bucket.ID))
	}
}

func StorageFrom(bucket *Bucket) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucket.ID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		panic("no storage available")
	}
	for _, s := range cachedStorage {
		if s.GetBucket().StorageType == StorageTypeFile {
			return s
		}
	}
	return cachedStorage[0]
}
