package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/contract"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
}

type PriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type StatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type ContractChangeRequest struct {
	Reason       string `json:"reason"`
	ProposedText string `json:"proposed_text"`
}

type ClauseRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type PaymentCardRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	DueDate *time.Time      `json:"due_date"`
}

type PaymentStatusRequest struct {
	Status string `json:"status"`
}

type DeliveryItemRequest struct {
	Description string `json:"description"`
}

type DeliveryStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	IsFinal bool   `json:"is_final"`
}

type TextAnswerRequest struct {
	Content string `json:"content"`
}

// FileResponse is an attached file. It is omitted when nothing is attached.
type FileResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type SignatureResponse struct {
	Signed   bool       `json:"signed"`
	URL      string     `json:"url,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
}

type ChangeRequestResponse struct {
	Reason       string    `json:"reason"`
	ProposedText string    `json:"proposed_text,omitempty"`
	RequestedBy  string    `json:"requested_by"`
	RequestedAt  time.Time `json:"requested_at"`
}

type ClauseResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Content string    `json:"content"`
}

type ContractResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description,omitempty"`
	Price         string                 `json:"price"`
	Status        string                 `json:"status"`
	Requester     SignatureResponse      `json:"requester_signature"`
	Provider      SignatureResponse      `json:"provider_signature"`
	PendingChange *ChangeRequestResponse `json:"pending_change,omitempty"`
	RevisedAt     *time.Time             `json:"revised_at,omitempty"`
	Clauses       []ClauseResponse       `json:"clauses"`
}

type PaymentCardResponse struct {
	ID          uuid.UUID     `json:"id"`
	Installment int           `json:"installment"`
	Amount      string        `json:"amount"`
	Status      string        `json:"status"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty"`
	Receipt     *FileResponse `json:"receipt,omitempty"`
	Invoice     *FileResponse `json:"invoice,omitempty"`
	Extra       bool          `json:"extra"`
}

type DeliveryFileResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type DeliveryItemResponse struct {
	ID                  uuid.UUID              `json:"id"`
	Description         string                 `json:"description"`
	Status              string                 `json:"status"`
	ModificationComment string                 `json:"modification_comment,omitempty"`
	DeliveredAt         *time.Time             `json:"delivered_at,omitempty"`
	IsFinal             bool                   `json:"is_final"`
	Files               []DeliveryFileResponse `json:"files"`
}

type ListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Selected  bool      `json:"selected"`
}

type ConfirmationBlockResponse struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Kind     string             `json:"kind"`
	Multiple bool               `json:"multiple"`
	Content  string             `json:"content,omitempty"`
	Items    []ListItemResponse `json:"items,omitempty"`
}

type HistoryResponse struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Reason    string     `json:"reason,omitempty"`
	Price     *string    `json:"price,omitempty"`
	ActorID   *uuid.UUID `json:"actor_id,omitempty"`
	ActorRole string     `json:"actor_role,omitempty"`
	At        time.Time  `json:"at"`
}

type OrderResponse struct {
	ID            uuid.UUID                   `json:"id"`
	ShortCode     string                      `json:"short_code"`
	Number        string                      `json:"number"`
	Name          string                      `json:"name"`
	Type          string                      `json:"type,omitempty"`
	RequesterID   uuid.UUID                   `json:"requester_id"`
	ProviderID    uuid.UUID                   `json:"provider_id"`
	TemplateID    uuid.UUID                   `json:"template_id"`
	Status        string                      `json:"status"`
	Price         string                      `json:"price"`
	StartingPrice string                      `json:"starting_price"`
	PaymentMethod string                      `json:"payment_method"`
	Deliverables  []string                    `json:"deliverables"`
	Version       int64                       `json:"version"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
	Contract      *ContractResponse           `json:"contract,omitempty"`
	Payments      []PaymentCardResponse       `json:"payments"`
	Deliveries    []DeliveryItemResponse      `json:"deliveries"`
	Confirmations []ConfirmationBlockResponse `json:"confirmations"`
	History       []HistoryResponse           `json:"history"`
}

type OrderSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	ShortCode   string    `json:"short_code"`
	Number      string    `json:"number"`
	Name        string    `json:"name"`
	Type        string    `json:"type,omitempty"`
	RequesterID uuid.UUID `json:"requester_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Status      string    `json:"status"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID().Bytes(),
		ShortCode:     o.ShortCode(),
		Number:        o.Number().String(),
		Name:          o.Name(),
		Type:          o.Type(),
		RequesterID:   o.RequesterID().Bytes(),
		ProviderID:    o.ProviderID().Bytes(),
		TemplateID:    o.TemplateID().Bytes(),
		Status:        o.Status().String(),
		Price:         o.Price().String(),
		StartingPrice: o.StartingPrice().String(),
		PaymentMethod: o.PaymentMethod().String(),
		Deliverables:  o.Deliverables(),
		Version:       o.Version(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Payments:      make([]PaymentCardResponse, 0, len(o.PaymentCards())),
		Deliveries:    make([]DeliveryItemResponse, 0, len(o.DeliveryItems())),
		Confirmations: make([]ConfirmationBlockResponse, 0, len(o.ConfirmationBlocks())),
		History:       make([]HistoryResponse, 0, len(o.History())),
	}
	if resp.Deliverables == nil {
		resp.Deliverables = []string{}
	}

	if c := o.Contract(); c != nil {
		cr := toContractResponse(c)
		resp.Contract = &cr
	}

	for _, card := range o.PaymentCards() {
		resp.Payments = append(resp.Payments, PaymentCardResponse{
			ID:          card.ID().Bytes(),
			Installment: card.Installment(),
			Amount:      card.Amount().String(),
			Status:      card.Status().String(),
			DueDate:     card.DueDate(),
			PaidAt:      card.PaidAt(),
			Receipt:     toFileResponse(card.Receipt()),
			Invoice:     toFileResponse(card.Invoice()),
			Extra:       card.IsExtra(),
		})
	}

	for _, item := range o.DeliveryItems() {
		files := make([]DeliveryFileResponse, 0, len(item.Files()))
		for _, f := range item.Files() {
			files = append(files, DeliveryFileResponse{
				ID:         f.ID().Bytes(),
				Name:       f.Ref().Name(),
				URL:        f.Ref().URL(),
				UploadedAt: f.UploadedAt(),
			})
		}
		resp.Deliveries = append(resp.Deliveries, DeliveryItemResponse{
			ID:                  item.ID().Bytes(),
			Description:         item.Description(),
			Status:              item.Status().String(),
			ModificationComment: item.ModificationComment(),
			DeliveredAt:         item.DeliveredAt(),
			IsFinal:             item.IsFinal(),
			Files:               files,
		})
	}

	for _, b := range o.ConfirmationBlocks() {
		block := ConfirmationBlockResponse{
			ID:       b.ID().Bytes(),
			Name:     b.Name(),
			Kind:     string(b.Kind()),
			Multiple: b.Multiple(),
			Content:  b.Content(),
		}
		for _, li := range b.Items() {
			block.Items = append(block.Items, ListItemResponse{
				ID:        li.ID.Bytes(),
				Name:      li.Name,
				UnitPrice: li.UnitPrice.String(),
				Quantity:  li.Quantity,
				Selected:  li.Selected,
			})
		}
		resp.Confirmations = append(resp.Confirmations, block)
	}

	for _, h := range o.History() {
		resp.History = append(resp.History, toHistoryResponse(h))
	}

	return resp
}

func toContractResponse(c *contract.Contract) ContractResponse {
	resp := ContractResponse{
		ID:          c.ID().Bytes(),
		Name:        c.Name(),
		Description: c.Description(),
		Price:       c.Price().String(),
		Status:      c.Status().String(),
		Requester:   toSignatureResponse(c.RequesterSignature()),
		Provider:    toSignatureResponse(c.ProviderSignature()),
		RevisedAt:   c.RevisedAt(),
		Clauses:     make([]ClauseResponse, 0, len(c.Clauses())),
	}
	if pc := c.PendingChange(); pc != nil {
		resp.PendingChange = &ChangeRequestResponse{
			Reason:       pc.Reason,
			ProposedText: pc.ProposedText,
			RequestedBy:  string(pc.RequestedBy),
			RequestedAt:  pc.RequestedAt,
		}
	}
	for _, cl := range c.Clauses() {
		resp.Clauses = append(resp.Clauses, ClauseResponse{
			ID:      cl.ID().Bytes(),
			Name:    cl.Name(),
			Content: cl.Content(),
		})
	}
	return resp
}

func toSignatureResponse(s contract.Signature) SignatureResponse {
	return SignatureResponse{Signed: s.Signed, URL: s.URL, SignedAt: s.SignedAt}
}

func toFileResponse(ref kernel.FileRef) *FileResponse {
	if ref.IsZero() {
		return nil
	}
	return &FileResponse{Name: ref.Name(), URL: ref.URL()}
}

func toHistoryResponse(h order.HistoryRecord) HistoryResponse {
	resp := HistoryResponse{
		From:      h.From.String(),
		To:        h.To.String(),
		Reason:    h.Reason,
		ActorRole: string(h.ActorRole),
		At:        h.At,
	}
	if h.Price != nil {
		p := h.Price.String()
		resp.Price = &p
	}
	if !h.ActorID.IsZero() {
		id := h.ActorID.Bytes()
		resp.ActorID = &id
	}
	return resp
}

func toOrderSummaries(rows []queries.ListOrdersQueryResponse) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, OrderSummaryResponse{
			ID:          r.ID.Bytes(),
			ShortCode:   r.ShortCode,
			Number:      r.Number.String(),
			Name:        r.Name,
			Type:        r.Type,
			RequesterID: r.RequesterID.Bytes(),
			ProviderID:  r.ProviderID.Bytes(),
			Status:      r.Status.String(),
			Price:       r.Price.String(),
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out
}
