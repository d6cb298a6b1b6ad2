package models

import (
	"errors"
	"strings"

	"gallery/db"
)

// SecretDirectory resolves an account name to its shared secret. The built-in
// implementation is a fixed in-memory table; any backend that can answer the
// lookup can be swapped in without touching the login or authorization logic.
type SecretDirectory interface {
	LookupSecret(name string) (string, bool)
}

type StaticDirectory map[string]string

func (d StaticDirectory) LookupSecret(name string) (string, bool) {
	secret, ok := d[name]
	return secret, ok
}

// ParseDirectory builds a StaticDirectory from "name:secret,name:secret".
// Malformed pairs are ignored.
func ParseDirectory(spec string) StaticDirectory {
	directory := StaticDirectory{}
	for _, pair := range strings.Split(spec, ",") {
		name, secret, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" {
			continue
		}
		directory[name] = secret
	}
	return directory
}

// Directory holds the accounts allowed to sign in. Populated in Init.
var Directory SecretDirectory = StaticDirectory{}

// ErrInvalidCredentials is returned for an unknown name and for a wrong
// secret alike; callers must not be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	Name      string `gorm:"type:varchar(100);index:uniq_name,unique;not null"`
}

// UserLogin validates the submitted secret against the directory. Comparison
// is exact and case-sensitive. On first successful login the account gets a
// DB row so sessions and listings can reference it by id.
func UserLogin(name, secret string) (User, error) {
	stored, ok := Directory.LookupSecret(name)
	if !ok || stored != secret {
		return User{}, ErrInvalidCredentials
	}
	u := User{Name: name}
	if err := db.Instance.Where("name = ?", name).FirstOrCreate(&u).Error; err != nil {
		return User{}, err
	}
	return u, nil
}
