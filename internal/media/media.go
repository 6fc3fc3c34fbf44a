package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ResourceType tells the storage backend how to treat an object.
type ResourceType string

const (
	// ResourceAuto lets the backend infer the media kind (songs).
	ResourceAuto ResourceType = "auto"
	// ResourceImage marks image content (thumbnails).
	ResourceImage ResourceType = "image"
)

// Object is one file to store.
type Object struct {
	Resource    ResourceType
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores bytes and returns a URL they can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (string, error)
}

// ObjectKey derives a unique storage key for obj inside its folder,
// preserving the original file extension.
func ObjectKey(obj Object) string {
	ext := strings.ToLower(path.Ext(obj.Filename))
	resource := obj.Resource
	if resource == "" {
		resource = ResourceAuto
	}
	name := fmt.Sprintf("%s-%s%s", resource, uuid.NewString(), ext)
	return path.Join(strings.Trim(obj.Folder, "/"), name)
}

func defaultContentType(obj Object) string {
	if obj.ContentType != "" {
		return obj.ContentType
	}
	if obj.Resource == ResourceImage {
		return "image/jpeg"
	}
	return "application/octet-stream"
}
