package orderrepo

import (
	"orderflow/internal/core/domain/model/confirmation"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// fromDomain converts an order aggregate to its database representation,
// including every owned record.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()

	dto := OrderDTO{
		ID:            orderID,
		Number:        o.Number().String(),
		Name:          o.Name(),
		Type:          o.Type(),
		RequesterID:   o.RequesterID().Bytes(),
		ProviderID:    o.ProviderID().Bytes(),
		TemplateID:    o.TemplateID().Bytes(),
		Status:        int(o.Status()),
		Price:         o.Price().Decimal(),
		StartingPrice: o.StartingPrice().Decimal(),
		PaymentMethod: o.PaymentMethod().String(),
		Deliverables:  o.Deliverables(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}

	if c := o.Contract(); c != nil {
		cdto := contractFromDomain(orderID, c)
		dto.Contract = &cdto
	}
	for _, c := range o.PaymentCards() {
		dto.Cards = append(dto.Cards, cardFromDomain(orderID, c))
	}
	for i, it := range o.DeliveryItems() {
		dto.Items = append(dto.Items, itemFromDomain(orderID, i, it))
	}
	for _, b := range o.ConfirmationBlocks() {
		dto.Blocks = append(dto.Blocks, blockFromDomain(orderID, b))
	}
	for _, h := range o.History() {
		dto.History = append(dto.History, historyFromDomain(orderID, h))
	}
	return dto
}

func contractFromDomain(orderID uuid.UUID, c *contract.Contract) ContractDTO {
	contractID := c.ID().Bytes()
	dto := ContractDTO{
		ID:          contractID,
		OrderID:     orderID,
		Name:        c.Name(),
		Description: c.Description(),
		Price:       c.Price().Decimal(),
		Status:      int(c.Status()),
		RevisedAt:   c.RevisedAt(),
		Requester:   signatureFromDomain(c.RequesterSignature()),
		Provider:    signatureFromDomain(c.ProviderSignature()),
	}
	if ch := c.PendingChange(); ch != nil {
		at := ch.RequestedAt
		dto.Change = ChangeRequestDTO{
			Reason:       ch.Reason,
			ProposedText: ch.ProposedText,
			RequestedBy:  string(ch.RequestedBy),
			RequestedAt:  &at,
		}
	}
	if req, prov := c.SignatureSnapshot(); req != nil && prov != nil {
		dto.HasSnapshot = true
		dto.SnapshotRequester = signatureFromDomain(*req)
		dto.SnapshotProvider = signatureFromDomain(*prov)
	}
	for _, cl := range c.Clauses() {
		dto.Clauses = append(dto.Clauses, ClauseDTO{
			ID:         cl.ID().Bytes(),
			ContractID: contractID,
			Name:       cl.Name(),
			Content:    cl.Content(),
			Sort:       cl.Sort(),
		})
	}
	return dto
}

func signatureFromDomain(s contract.Signature) SignatureDTO {
	return SignatureDTO{Signed: s.Signed, URL: s.URL, SignedAt: s.SignedAt}
}

func fileRefFromDomain(ref kernel.FileRef) FileRefDTO {
	return FileRefDTO{Key: ref.Key(), Name: ref.Name(), URL: ref.URL()}
}

func cardFromDomain(orderID uuid.UUID, c *payment.Card) PaymentCardDTO {
	return PaymentCardDTO{
		ID:          c.ID().Bytes(),
		OrderID:     orderID,
		Installment: c.Installment(),
		Amount:      c.Amount().Decimal(),
		Status:      int(c.Status()),
		DueDate:     c.DueDate(),
		Receipt:     fileRefFromDomain(c.Receipt()),
		Invoice:     fileRefFromDomain(c.Invoice()),
		PaidAt:      c.PaidAt(),
		Extra:       c.IsExtra(),
	}
}

func itemFromDomain(orderID uuid.UUID, position int, it *delivery.Item) DeliveryItemDTO {
	itemID := it.ID().Bytes()
	dto := DeliveryItemDTO{
		ID:                  itemID,
		OrderID:             orderID,
		Position:            position,
		Description:         it.Description(),
		Status:              int(it.Status()),
		ModificationComment: it.ModificationComment(),
		DeliveredAt:         it.DeliveredAt(),
		UpdatedAt:           it.UpdatedAt(),
		IsFinal:             it.IsFinal(),
	}
	for _, f := range it.Files() {
		dto.Files = append(dto.Files, DeliveryFileDTO{
			ID:         f.ID().Bytes(),
			ItemID:     itemID,
			Ref:        fileRefFromDomain(f.Ref()),
			UploadedAt: f.UploadedAt(),
		})
	}
	return dto
}

func blockFromDomain(orderID uuid.UUID, b *confirmation.Block) ConfirmationDTO {
	dto := ConfirmationDTO{
		ID:       b.ID().Bytes(),
		OrderID:  orderID,
		Name:     b.Name(),
		Kind:     string(b.Kind()),
		Multiple: b.Multiple(),
		Sort:     b.Sort(),
		Content:  b.Content(),
		Items:    make([]ListItemDTO, 0, len(b.Items())),
	}
	for _, li := range b.Items() {
		dto.Items = append(dto.Items, ListItemDTO{
			ID:        li.ID.Bytes(),
			Name:      li.Name,
			UnitPrice: li.UnitPrice.Decimal(),
			Quantity:  li.Quantity,
			Selected:  li.Selected,
		})
	}
	return dto
}

func historyFromDomain(orderID uuid.UUID, h order.HistoryRecord) HistoryRecordDTO {
	dto := HistoryRecordDTO{
		ID:         h.ID.Bytes(),
		OrderID:    orderID,
		FromStatus: int(h.From),
		ToStatus:   int(h.To),
		Reason:     h.Reason,
		ActorRole:  string(h.ActorRole),
		At:         h.At,
	}
	if h.Price != nil {
		price := h.Price.Decimal()
		dto.Price = &price
	}
	// System transitions have no acting user.
	if !h.ActorID.IsZero() {
		actor := h.ActorID.Bytes()
		dto.ActorID = &actor
	}
	return dto
}

// toDomain converts a fully preloaded DTO back to an order aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	s := order.Snapshot{
		Number:        order.Number(dto.Number),
		Name:          dto.Name,
		Type:          dto.Type,
		Status:        order.Status(dto.Status),
		PaymentMethod: payment.Method(dto.PaymentMethod),
		Deliverables:  dto.Deliverables,
		Version:       dto.Version,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}

	var err error
	if s.ID, err = kernel.UUIDFromBytes(dto.ID[:]); err != nil {
		return nil, err
	}
	if s.RequesterID, err = kernel.UUIDFromBytes(dto.RequesterID[:]); err != nil {
		return nil, err
	}
	if s.ProviderID, err = kernel.UUIDFromBytes(dto.ProviderID[:]); err != nil {
		return nil, err
	}
	if dto.TemplateID != uuid.Nil {
		if s.TemplateID, err = kernel.UUIDFromBytes(dto.TemplateID[:]); err != nil {
			return nil, err
		}
	}
	if s.Price, err = kernel.NewMoney(dto.Price); err != nil {
		return nil, err
	}
	if s.StartingPrice, err = kernel.NewMoney(dto.StartingPrice); err != nil {
		return nil, err
	}

	if dto.Contract != nil {
		if s.Contract, err = contractToDomain(*dto.Contract); err != nil {
			return nil, err
		}
	}
	for _, c := range dto.Cards {
		card, cardErr := cardToDomain(c)
		if cardErr != nil {
			return nil, cardErr
		}
		s.Cards = append(s.Cards, card)
	}
	for _, it := range dto.Items {
		item, itemErr := itemToDomain(it)
		if itemErr != nil {
			return nil, itemErr
		}
		s.Items = append(s.Items, item)
	}
	for _, b := range dto.Blocks {
		block, blockErr := blockToDomain(b)
		if blockErr != nil {
			return nil, blockErr
		}
		s.Blocks = append(s.Blocks, block)
	}
	for _, h := range dto.History {
		record, historyErr := historyToDomain(h)
		if historyErr != nil {
			return nil, historyErr
		}
		s.History = append(s.History, record)
	}

	return order.Restore(s)
}

func contractToDomain(dto ContractDTO) (*contract.Contract, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	s := contract.Snapshot{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Price:       price,
		Requester:   signatureToDomain(dto.Requester),
		Provider:    signatureToDomain(dto.Provider),
		RevisedAt:   dto.RevisedAt,
		Status:      contract.Status(dto.Status),
	}
	if dto.Change.RequestedBy != "" {
		party, partyErr := kernel.ParseParty(dto.Change.RequestedBy)
		if partyErr != nil {
			return nil, partyErr
		}
		change := &contract.ChangeRequest{
			Reason:       dto.Change.Reason,
			ProposedText: dto.Change.ProposedText,
			RequestedBy:  party,
		}
		if dto.Change.RequestedAt != nil {
			change.RequestedAt = *dto.Change.RequestedAt
		}
		s.PendingChange = change
	}
	if dto.HasSnapshot {
		req := signatureToDomain(dto.SnapshotRequester)
		prov := signatureToDomain(dto.SnapshotProvider)
		s.RequesterSnapshot = &req
		s.ProviderSnapshot = &prov
	}
	for _, cl := range dto.Clauses {
		clauseID, idErr := kernel.UUIDFromBytes(cl.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		clause, clauseErr := contract.RestoreClause(clauseID, cl.Name, cl.Content, cl.Sort)
		if clauseErr != nil {
			return nil, clauseErr
		}
		s.Clauses = append(s.Clauses, clause)
	}
	return contract.Restore(s)
}

func signatureToDomain(dto SignatureDTO) contract.Signature {
	return contract.Signature{Signed: dto.Signed, URL: dto.URL, SignedAt: dto.SignedAt}
}

func fileRefToDomain(dto FileRefDTO) (kernel.FileRef, error) {
	if dto.Key == "" {
		return kernel.FileRef{}, nil
	}
	return kernel.NewFileRef(dto.Key, dto.Name, dto.URL)
}

func cardToDomain(dto PaymentCardDTO) (*payment.Card, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}
	receipt, err := fileRefToDomain(dto.Receipt)
	if err != nil {
		return nil, err
	}
	invoice, err := fileRefToDomain(dto.Invoice)
	if err != nil {
		return nil, err
	}
	return payment.RestoreCard(payment.CardSnapshot{
		ID:          id,
		Installment: dto.Installment,
		Amount:      amount,
		Status:      payment.Status(dto.Status),
		DueDate:     dto.DueDate,
		Receipt:     receipt,
		Invoice:     invoice,
		PaidAt:      dto.PaidAt,
		Extra:       dto.Extra,
	})
}

func itemToDomain(dto DeliveryItemDTO) (*delivery.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	files := make([]*delivery.File, 0, len(dto.Files))
	for _, f := range dto.Files {
		fileID, idErr := kernel.UUIDFromBytes(f.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		ref, refErr := kernel.NewFileRef(f.Ref.Key, f.Ref.Name, f.Ref.URL)
		if refErr != nil {
			return nil, refErr
		}
		file, fileErr := delivery.NewFile(fileID, ref, f.UploadedAt)
		if fileErr != nil {
			return nil, fileErr
		}
		files = append(files, file)
	}
	return delivery.RestoreItem(delivery.ItemSnapshot{
		ID:                  id,
		Description:         dto.Description,
		Files:               files,
		Status:              delivery.Status(dto.Status),
		ModificationComment: dto.ModificationComment,
		DeliveredAt:         dto.DeliveredAt,
		UpdatedAt:           dto.UpdatedAt,
		IsFinal:             dto.IsFinal,
	})
}

func blockToDomain(dto ConfirmationDTO) (*confirmation.Block, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	kind, err := confirmation.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}
	items := make([]confirmation.ListItem, 0, len(dto.Items))
	for _, li := range dto.Items {
		itemID, idErr := kernel.UUIDFromBytes(li.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		unit, moneyErr := kernel.NewMoney(li.UnitPrice)
		if moneyErr != nil {
			return nil, moneyErr
		}
		items = append(items, confirmation.ListItem{
			ID:        itemID,
			Name:      li.Name,
			UnitPrice: unit,
			Quantity:  li.Quantity,
			Selected:  li.Selected,
		})
	}
	return confirmation.RestoreBlock(confirmation.BlockSnapshot{
		ID:       id,
		Name:     dto.Name,
		Kind:     kind,
		Multiple: dto.Multiple,
		Sort:     dto.Sort,
		Content:  dto.Content,
		Items:    items,
	})
}

func historyToDomain(dto HistoryRecordDTO) (order.HistoryRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.HistoryRecord{}, err
	}
	record := order.HistoryRecord{
		ID:        id,
		From:      order.Status(dto.FromStatus),
		To:        order.Status(dto.ToStatus),
		Reason:    dto.Reason,
		ActorRole: kernel.Role(dto.ActorRole),
		At:        dto.At,
	}
	if dto.Price != nil {
		price, moneyErr := kernel.NewMoney(*dto.Price)
		if moneyErr != nil {
			return order.HistoryRecord{}, moneyErr
		}
		record.Price = &price
	}
	if dto.ActorID != nil {
		if record.ActorID, err = kernel.UUIDFromBytes(dto.ActorID[:]); err != nil {
			return order.HistoryRecord{}, err
		}
	}
	return record, nil
}
