package kernel

import "orderflow/internal/pkg/errs"

// FileRef is a weak reference to an attachment held by file storage.
// Entities keep only the reference, never the content.
type FileRef struct {
	key  string
	name string
	url  string
}

// NewFileRef validates and builds a reference returned by file storage.
func NewFileRef(key, name, url string) (FileRef, error) {
	if key == "" {
		return FileRef{}, errs.NewValueIsRequiredError("file key")
	}
	return FileRef{key: key, name: name, url: url}, nil
}

// Key is the opaque storage identifier.
func (f FileRef) Key() string  { return f.key }
func (f FileRef) Name() string { return f.name }
func (f FileRef) URL() string  { return f.url }

// IsZero reports whether the reference is empty.
func (f FileRef) IsZero() bool {
	return f.key == ""
}
