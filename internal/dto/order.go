package dto

import "time"

type CreateOrderDTO struct {
	ProductName string   `json:"product_name" validate:"required,max=255" example:"Phone case"`
	Description string   `json:"description" validate:"required" example:"Black, size M"`
	ImageURLs   []string `json:"image_urls" validate:"max=3,dive,url"`
}

// CreateOrdersRequestDTO creates one or more orders in a single call.
// Creation continues past individual failures; each entry reports its own outcome.
type CreateOrdersRequestDTO struct {
	Orders []CreateOrderDTO `json:"orders" validate:"required,min=1,dive"`
}

type OrderCreateResultDTO struct {
	Index int               `json:"index"`
	Order *OrderResponseDTO `json:"order,omitempty"`
	Error string            `json:"error,omitempty"`
}

type CreateOrdersResponseDTO struct {
	Results []OrderCreateResultDTO `json:"results"`
}

type ReportResponseDTO struct {
	UserAmount            int64    `json:"user_amount" example:"100"`
	PaymentLink           string   `json:"payment_link,omitempty"`
	AdditionalImages      []string `json:"additional_images,omitempty"`
	AdditionalDescription string   `json:"additional_description,omitempty"`
	Quantity              int      `json:"quantity" example:"1"`
	PayableYuan           float64  `json:"payable_yuan" example:"105"`
	PayableMNT            int64    `json:"payable_mnt" example:"52500"`
}

type OrderResponseDTO struct {
	ID                  int                `json:"id" example:"42"`
	OwnerID             int                `json:"owner_id"`
	AgentID             *int               `json:"agent_id,omitempty"`
	ProductName         string             `json:"product_name"`
	Description         string             `json:"description"`
	ImageURLs           []string           `json:"image_urls,omitempty"`
	Status              string             `json:"status" example:"niitlegdsen"`
	PaymentMethod       string             `json:"payment_method" example:"bank"`
	UserPaymentVerified bool               `json:"user_payment_verified"`
	AgentPaymentPaid    bool               `json:"agent_payment_paid"`
	TrackCode           *string            `json:"track_code,omitempty"`
	ArchivedByUser      bool               `json:"archived_by_user"`
	Report              *ReportResponseDTO `json:"report,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
}

type SubmitReportRequestDTO struct {
	UserAmount            int64    `json:"user_amount" validate:"required,gt=0" example:"100"`
	PaymentLink           string   `json:"payment_link" validate:"omitempty,url"`
	AdditionalImages      []string `json:"additional_images" validate:"max=3,dive,url"`
	AdditionalDescription string   `json:"additional_description"`
	Quantity              int      `json:"quantity" validate:"omitempty,gt=0" example:"1"`
}

type MarkPaidRequestDTO struct {
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=bank card" example:"bank"`
}

type TrackCodeRequestDTO struct {
	TrackCode string `json:"track_code" validate:"required,max=128" example:"CN1234567890"`
}
