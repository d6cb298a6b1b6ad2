package models

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gallery/config"
	"gallery/db"
	"gallery/storage"

	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) storage.StorageAPI {
	t.Helper()
	config.SQLITE_FILE = filepath.Join(t.TempDir(), "test.db")
	db.Init()
	Init()
	return storage.NewDiskStorage(&storage.Bucket{
		ID:          1,
		Name:        "test",
		StorageType: storage.StorageTypeFile,
		Path:        t.TempDir(),
	})
}

func TestParseDirectory(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want StaticDirectory
	}{
		{"single", "maminda:641490020", StaticDirectory{"maminda": "641490020"}},
		{"several", "a:1,b:2", StaticDirectory{"a": "1", "b": "2"}},
		{"spaces trimmed", " a:1 , b:2", StaticDirectory{"a": "1", "b": "2"}},
		{"malformed pairs skipped", "a:1,borken,:x", StaticDirectory{"a": "1"}},
		{"empty", "", StaticDirectory{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDirectory(tt.spec)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestUserLogin(t *testing.T) {
	setupDB(t)

	user, err := UserLogin("maminda", "641490020")
	require.NoError(t, err)
	require.Equal(t, "maminda", user.Name)
	require.NotZero(t, user.ID)

	// Logging in again resolves to the same account row
	again, err := UserLogin("maminda", "641490020")
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)

	// Wrong secret, unknown name and wrong case all fail the same way
	_, err = UserLogin("maminda", "641490021")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = UserLogin("nobody", "641490020")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = UserLogin("MAMINDA", "641490020")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = UserLogin("maminda", "")
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestFolderDeleteCascading(t *testing.T) {
	store := setupDB(t)

	folder := Folder{Name: "Trip", Owner: "maminda"}
	require.NoError(t, db.Instance.Create(&folder).Error)
	keep := Folder{Name: "Home", Owner: "maminda"}
	require.NoError(t, db.Instance.Create(&keep).Error)

	names := []string{"a.jpg", "b.jpg"}
	var photos []Photo
	for _, name := range names {
		_, err := store.Save(name, strings.NewReader("content of "+name))
		require.NoError(t, err)
		photo := Photo{Name: name, Uploader: "maminda", FolderID: folder.ID}
		require.NoError(t, db.Instance.Create(&photo).Error)
		photos = append(photos, photo)
	}
	_, err := store.Save("elsewhere.jpg", strings.NewReader("untouched"))
	require.NoError(t, err)
	other := Photo{Name: "elsewhere.jpg", Uploader: "maminda", FolderID: keep.ID}
	require.NoError(t, db.Instance.Create(&other).Error)

	require.NoError(t, folder.DeleteCascading(store))

	// Folder and its photo records are gone
	var count int64
	require.NoError(t, db.Instance.Model(&Folder{}).Where("id = ?", folder.ID).Count(&count).Error)
	require.Zero(t, count)
	for _, photo := range photos {
		require.NoError(t, db.Instance.Model(&Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
		require.Zero(t, count)
	}
	// Backing files are gone too
	for _, name := range names {
		require.False(t, store.Exists(name))
	}
	// The other folder and its photo are untouched
	require.NoError(t, db.Instance.Model(&Photo{}).Where("id = ?", other.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.True(t, store.Exists("elsewhere.jpg"))
}

func TestPhotoDeleteWithFiles(t *testing.T) {
	store := setupDB(t)

	folder := Folder{Name: "Trip", Owner: "maminda"}
	require.NoError(t, db.Instance.Create(&folder).Error)
	_, err := store.Save("a.jpg", strings.NewReader("bytes"))
	require.NoError(t, err)
	photo := Photo{Name: "a.jpg", Uploader: "maminda", FolderID: folder.ID}
	require.NoError(t, db.Instance.Create(&photo).Error)

	require.NoError(t, photo.DeleteWithFiles(store))

	var count int64
	require.NoError(t, db.Instance.Model(&Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
	require.Zero(t, count)
	require.False(t, store.Exists("a.jpg"))
}

func TestOwnershipChecks(t *testing.T) {
	folder := Folder{Owner: "maminda"}
	require.True(t, folder.CanAccess("maminda"))
	require.False(t, folder.CanAccess("praise"))
	require.False(t, folder.CanAccess("Maminda"))

	photo := Photo{Uploader: "praise"}
	require.True(t, photo.CanModify("praise"))
	require.False(t, photo.CanModify("maminda"))
}
