// Package storage persists meal images. The default backend is a local
// uploads directory; S3 can be selected with STORAGE_BACKEND=s3.
package storage

import (
	"fmt"
	"log"
	"math/rand"
	"mime"
	"os"
	"strings"
	"time"
)

// Store is the meal-image backend. Save returns the stored object name,
// which is what meal rows keep in image_path.
type Store interface {
	Save(data []byte, contentType string) (string, error)
	Remove(name string) error
	URL(name string) string
}

var store Store

// Init selects and initializes the configured backend.
func Init() {
	backend := os.Getenv("STORAGE_BACKEND")
	if backend == "" {
		backend = "local"
	}
	var err error
	switch backend {
	case "s3":
		store, err = NewS3Store()
	default:
		store, err = NewLocalStore(uploadDir())
	}
	if err != nil {
		log.Fatalf("Failed to initialize %s image storage: %v", backend, err)
	}
}

// Default returns the process-wide image store.
func Default() Store {
	return store
}

// SetDefault swaps the store; used by tests.
func SetDefault(s Store) {
	store = s
}

func uploadDir() string {
	if d := os.Getenv("UPLOAD_DIR"); d != "" {
		return d
	}
	return "uploads"
}

// filename builds a unique object name like "food-1712345678901234567-483920174.jpg".
func filename(contentType string) string {
	ext := extensionFor(contentType)
	return fmt.Sprintf("food-%d-%d%s", time.Now().UnixNano(), rand.Intn(1e9), ext)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}
