package dto

import "time"

type CreateBundleItemDTO struct {
	ProductName string   `json:"product_name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	ImageURLs   []string `json:"image_urls" validate:"max=3,dive,url"`
}

type CreateBundleRequestDTO struct {
	Items []CreateBundleItemDTO `json:"items" validate:"required,min=1,dive"`
}

type BundleItemResponseDTO struct {
	ID          int                `json:"id"`
	Position    int                `json:"position"`
	ProductName string             `json:"product_name"`
	Description string             `json:"description"`
	ImageURLs   []string           `json:"image_urls,omitempty"`
	Report      *ReportResponseDTO `json:"report,omitempty"`
}

type BundleResponseDTO struct {
	ID                  int                     `json:"id"`
	OwnerID             int                     `json:"owner_id"`
	AgentID             *int                    `json:"agent_id,omitempty"`
	Status              string                  `json:"status" example:"niitlegdsen"`
	ReportMode          string                  `json:"report_mode,omitempty" example:"per_item"`
	PaymentMethod       string                  `json:"payment_method" example:"bank"`
	UserPaymentVerified bool                    `json:"user_payment_verified"`
	AgentPaymentPaid    bool                    `json:"agent_payment_paid"`
	TrackCode           *string                 `json:"track_code,omitempty"`
	ArchivedByUser      bool                    `json:"archived_by_user"`
	BundleReport        *ReportResponseDTO      `json:"bundle_report,omitempty"`
	Items               []BundleItemResponseDTO `json:"items"`
	TotalPayableMNT     int64                   `json:"total_payable_mnt,omitempty"`
	CreatedAt           time.Time               `json:"created_at"`
}
