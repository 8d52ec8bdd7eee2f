package delivery

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// File is an attachment on a delivery item.
type File struct {
	id         kernel.UUID
	ref        kernel.FileRef
	uploadedAt time.Time
}

// NewFile wraps a stored file reference.
func NewFile(id kernel.UUID, ref kernel.FileRef, uploadedAt time.Time) (*File, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if ref.IsZero() {
		return nil, errs.NewValueIsRequiredError("file reference")
	}
	return &File{id: id, ref: ref, uploadedAt: uploadedAt}, nil
}

func (f *File) ID() kernel.UUID       { return f.id }
func (f *File) Ref() kernel.FileRef   { return f.ref }
func (f *File) UploadedAt() time.Time { return f.uploadedAt }
