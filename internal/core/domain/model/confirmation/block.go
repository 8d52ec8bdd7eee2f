package confirmation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrBlockIsNotConstructed is returned by Validate for zero-value blocks.
var ErrBlockIsNotConstructed = errors.New("Block must be created via NewBlock constructor")

// Kind distinguishes list blocks (pick items) from free-text blocks.
type Kind string

const (
	KindList Kind = "list"
	KindText Kind = "text"
)

// ParseKind parses "list" or "text".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindList, KindText:
		return k, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("confirmation kind", fmt.Errorf("%q is not list or text", s))
	}
}

// ListItem is one selectable option of a list block.
type ListItem struct {
	ID        kernel.UUID
	Name      string
	UnitPrice kernel.Money
	Quantity  int
	Selected  bool
}

// Subtotal is unit price × quantity.
func (li ListItem) Subtotal() kernel.Money {
	return li.UnitPrice.MulInt(li.Quantity)
}

// BlockTerms is the template-side description of a block.
type BlockTerms struct {
	Name     string
	Kind     Kind
	Multiple bool
	Items    []ItemTerms
}

// ItemTerms is the template-side description of a list item.
type ItemTerms struct {
	Name      string
	UnitPrice kernel.Money
	Quantity  int
}

// Block is a pre-quote question the requester answers before a quote can be requested.
type Block struct {
	id       kernel.UUID
	name     string
	kind     Kind
	multiple bool
	sort     int
	content  string
	items    []ListItem

	isConstructed bool
}

// NewBlock instantiates a template block for an order. Every list item gets a fresh id.
func NewBlock(id kernel.UUID, sort int, terms BlockTerms) (*Block, error) {
	b := &Block{
		id:            id,
		name:          strings.TrimSpace(terms.Name),
		kind:          terms.Kind,
		multiple:      terms.Multiple,
		sort:          sort,
		isConstructed: true,
	}
	if err := errors.Join(id.Validate(), b.validateShape(len(terms.Items))); err != nil {
		return nil, err
	}
	for _, it := range terms.Items {
		if it.Quantity < 1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", it.Quantity))
		}
		b.items = append(b.items, ListItem{
			ID:        kernel.NewUUID(),
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return b, nil
}

// BlockSnapshot carries the persisted state of a block.
type BlockSnapshot struct {
	ID       kernel.UUID
	Name     string
	Kind     Kind
	Multiple bool
	Sort     int
	Content  string
	Items    []ListItem
}

// RestoreBlock rebuilds a block from storage.
func RestoreBlock(s BlockSnapshot) (*Block, error) {
	b := &Block{
		id:            s.ID,
		name:          s.Name,
		kind:          s.Kind,
		multiple:      s.Multiple,
		sort:          s.Sort,
		content:       s.Content,
		items:         slices.Clone(s.Items),
		isConstructed: true,
	}
	if err := errors.Join(s.ID.Validate(), b.validateShape(len(s.Items))); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate reports whether the block was built through a constructor.
func (b *Block) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBlockIsNotConstructed
	}
	return nil
}

func (b *Block) ID() kernel.UUID   { return b.id }
func (b *Block) Name() string      { return b.name }
func (b *Block) Kind() Kind        { return b.kind }
func (b *Block) Multiple() bool    { return b.multiple }
func (b *Block) Sort() int         { return b.sort }
func (b *Block) Content() string   { return b.content }
func (b *Block) Items() []ListItem { return slices.Clone(b.items) }

// Select picks itemID. Single-selection blocks replace the previous choice;
// multiple-selection blocks toggle the item.
func (b *Block) Select(itemID kernel.UUID) error {
	if b.kind != KindList {
		return errs.NewInvalidStateError("confirmation block", "is not a list block")
	}
	idx := slices.IndexFunc(b.items, func(li ListItem) bool { return li.ID.IsEqual(itemID) })
	if idx < 0 {
		return errs.NewObjectNotFoundError("confirmation item", itemID.String())
	}

	if b.multiple {
		b.items[idx].Selected = !b.items[idx].Selected
		return nil
	}
	for i := range b.items {
		b.items[i].Selected = i == idx
	}
	return nil
}

// Answer stores the free-text response of a text block.
func (b *Block) Answer(content string) error {
	if b.kind != KindText {
		return errs.NewInvalidStateError("confirmation block", "is not a text block")
	}
	if strings.TrimSpace(content) == "" {
		return errs.NewValueIsRequiredError("content")
	}
	b.content = content
	return nil
}

// IsAnswered reports whether a list block has a selection or a text block has content.
func (b *Block) IsAnswered() bool {
	if b.kind == KindText {
		return strings.TrimSpace(b.content) != ""
	}
	return slices.ContainsFunc(b.items, func(li ListItem) bool { return li.Selected })
}

// SelectedTotal sums unit price × quantity over the selected items.
func (b *Block) SelectedTotal() kernel.Money {
	total := kernel.Zero()
	for _, li := range b.items {
		if li.Selected {
			total = total.Add(li.Subtotal())
		}
	}
	return total
}

func (b *Block) validateShape(items int) error {
	if b.name == "" {
		return errs.NewValueIsRequiredError("block name")
	}
	switch b.kind {
	case KindList:
		if items == 0 {
			return errs.NewValueIsRequiredError("list items")
		}
	case KindText:
		if items > 0 {
			return errs.NewValueIsInvalidErrorWithCause("list items", errors.New("text blocks carry no items"))
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("confirmation kind", fmt.Errorf("%q is not list or text", b.kind))
	}
	return nil
}

// AllAnswered is the quote-request gate. Orders without blocks pass.
func AllAnswered(blocks []*Block) bool {
	for _, b := range blocks {
		if !b.IsAnswered() {
			return false
		}
	}
	return true
}

// Unanswered counts blocks that still need an answer.
func Unanswered(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		if !b.IsAnswered() {
			n++
		}
	}
	return n
}

// SelectionTotal sums SelectedTotal over every block.
func SelectionTotal(blocks []*Block) kernel.Money {
	total := kernel.Zero()
	for _, b := range blocks {
		total = total.Add(b.SelectedTotal())
	}
	return total
}
