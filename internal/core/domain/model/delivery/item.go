package delivery

import (
	"errors"
	"slices"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned by Validate for zero-value items.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one expected deliverable of an order.
type Item struct {
	id                  kernel.UUID
	description         string
	files               []*File
	status              Status
	modificationComment string
	deliveredAt         *time.Time
	updatedAt           time.Time
	isFinal             bool

	isConstructed bool
}

// NewItem builds a pending deliverable.
func NewItem(id kernel.UUID, description string, now time.Time) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errs.NewValueIsRequiredError("description")
	}
	return &Item{
		id:            id,
		description:   description,
		status:        Pending,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// ItemSnapshot carries the persisted state of an item.
type ItemSnapshot struct {
	ID                  kernel.UUID
	Description         string
	Files               []*File
	Status              Status
	ModificationComment string
	DeliveredAt         *time.Time
	UpdatedAt           time.Time
	IsFinal             bool
}

// RestoreItem rebuilds an item from storage.
func RestoreItem(s ItemSnapshot) (*Item, error) {
	it, err := NewItem(s.ID, s.Description, s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}
	it.files = slices.Clone(s.Files)
	it.status = s.Status
	it.modificationComment = s.ModificationComment
	it.deliveredAt = s.DeliveredAt
	it.isFinal = s.IsFinal
	return it, nil
}

// Validate reports whether the item was built through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID             { return i.id }
func (i *Item) Description() string         { return i.description }
func (i *Item) Files() []*File              { return slices.Clone(i.files) }
func (i *Item) Status() Status              { return i.status }
func (i *Item) ModificationComment() string { return i.modificationComment }
func (i *Item) DeliveredAt() *time.Time     { return i.deliveredAt }
func (i *Item) UpdatedAt() time.Time        { return i.updatedAt }
func (i *Item) IsFinal() bool               { return i.isFinal }

// HasFile reports whether the item carries the file.
func (i *Item) HasFile(fileID kernel.UUID) bool {
	return i.fileIndex(fileID) >= 0
}

// AttachFile adds an attachment without changing the status.
func (i *Item) AttachFile(f *File, now time.Time) error {
	if i.status == Accepted {
		return errs.NewInvalidStateError("delivery item", "is already accepted")
	}
	i.files = append(i.files, f)
	i.updatedAt = now
	return nil
}

// RemoveFile drops an attachment and returns its storage reference so the caller can delete the bytes.
func (i *Item) RemoveFile(fileID kernel.UUID, now time.Time) (kernel.FileRef, error) {
	idx := i.fileIndex(fileID)
	if idx < 0 {
		return kernel.FileRef{}, errs.NewObjectNotFoundError("delivery file", fileID.String())
	}
	if i.status == Accepted {
		return kernel.FileRef{}, errs.NewInvalidStateError("delivery item", "is already accepted")
	}
	ref := i.files[idx].ref
	i.files = slices.Delete(i.files, idx, idx+1)
	i.updatedAt = now
	return ref, nil
}

// MarkDelivered is legal from Pending or ModificationRequested.
func (i *Item) MarkDelivered(now time.Time) error {
	if i.status != Pending && i.status != ModificationRequested {
		return errs.NewInvalidTransitionError("delivery item", i.status, Delivered)
	}
	at := now
	i.status = Delivered
	i.deliveredAt = &at
	i.updatedAt = now
	return nil
}

// RequestModification is legal from Delivered and sends the item back for rework.
func (i *Item) RequestModification(comment string, now time.Time) error {
	if i.status != Delivered {
		return errs.NewInvalidTransitionError("delivery item", i.status, ModificationRequested)
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return errs.NewValueIsRequiredError("modification comment")
	}
	i.status = ModificationRequested
	i.modificationComment = comment
	i.updatedAt = now
	return nil
}

// Accept is legal from Delivered. isFinal marks the order's final deliverable.
func (i *Item) Accept(isFinal bool, now time.Time) error {
	if i.status != Delivered {
		return errs.NewInvalidTransitionError("delivery item", i.status, Accepted)
	}
	i.status = Accepted
	i.isFinal = isFinal
	i.updatedAt = now
	return nil
}

func (i *Item) fileIndex(fileID kernel.UUID) int {
	return slices.IndexFunc(i.files, func(f *File) bool { return f.id.IsEqual(fileID) })
}

// AllAccepted is the completion gate: every item is Accepted and at least one is final.
// An order without items never passes.
func AllAccepted(items []*Item) bool {
	final := false
	for _, it := range items {
		if it.status != Accepted {
			return false
		}
		final = final || it.isFinal
	}
	return final
}

// CountIn returns the number of items in status s.
func CountIn(items []*Item, s Status) int {
	n := 0
	for _, it := range items {
		if it.status == s {
			n++
		}
	}
	return n
}
