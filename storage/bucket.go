package storage

import (
	"os"
	"strings"

	"gallery/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

// ThumbsDir is the only sub-directory of the otherwise flat namespace
const ThumbsDir = "thumbs"

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"` // S3 bucket name, or a label for a disk bucket
	StorageType StorageType
	Path        string // Directory on a drive or a key prefix in a S3 bucket
	Region      string `gorm:"type:varchar(30)"`
	Endpoint    string `gorm:"type:varchar(300)"` // Blank for AWS, set for S3-compatible stores
	AuthDetails string // "key:secret" in case of S3
}

func (b *Bucket) Create() error {
	err := db.Instance.Create(b).Error
	if err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		if err = os.MkdirAll(b.Path+"/"+ThumbsDir, 0777); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath prefixes an object path with the bucket's configured prefix
func (b *Bucket) GetRemotePath(path string) string {
	if b.Path == "" {
		return path
	}
	return strings.TrimSuffix(b.Path, "/") + "/" + path
}

func (b *Bucket) CreateSVC() *s3.S3 {
	config := aws.NewConfig().WithRegion(b.Region)
	if key, secret, ok := strings.Cut(b.AuthDetails, ":"); ok {
		config = config.WithCredentials(credentials.NewStaticCredentials(key, secret, ""))
	}
	if b.Endpoint != "" {
		config = config.WithEndpoint(b.Endpoint).WithS3ForcePathStyle(true)
	}
	return s3.New(session.Must(session.NewSession()), config)
}
