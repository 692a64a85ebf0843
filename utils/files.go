package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadRoot returns the directory uploaded files are stored under.
func UploadRoot() string {
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	return uploadPath
}

// StoredFilename builds a collision-free name for an uploaded file,
// keeping the original extension so static serving sets the right type.
func StoredFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.NewString() + ext
}

// EnsureUploadDir creates the upload directory if missing and returns it.
func EnsureUploadDir() (string, error) {
	root := UploadRoot()
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		return "", err
	}
	return root, nil
}

// PublicURL maps a stored filename to the URL it is served from.
func PublicURL(storedName string) string {
	return "/uploads/" + storedName
}
