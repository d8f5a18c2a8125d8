package dto

import "time"

type CardBalanceResponseDTO struct {
	Balance int64 `json:"balance" example:"3"`
}

type GiftCardsRequestDTO struct {
	RecipientPhone string `json:"recipient_phone" validate:"required,phone" example:"99112233"`
	Amount         int64  `json:"amount" validate:"required,gt=0" example:"1"`
}

type GrantAllRequestDTO struct {
	Amount int64 `json:"amount" validate:"required,gt=0" example:"1"`
}

type GrantFailureDTO struct {
	AccountID int    `json:"account_id"`
	Error     string `json:"error"`
}

type GrantAllResponseDTO struct {
	Granted int               `json:"granted"`
	Failed  []GrantFailureDTO `json:"failed,omitempty"`
}

type CardTransactionResponseDTO struct {
	ID             int       `json:"id"`
	Type           string    `json:"type" example:"admin_gift"`
	Amount         int64     `json:"amount" example:"1"`
	RecipientPhone *string   `json:"recipient_phone,omitempty"`
	OrderID        *int      `json:"order_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
