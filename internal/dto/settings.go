package dto

import "time"

type UpdateSettingsRequestDTO struct {
	AccountNumber     string  `json:"account_number" validate:"required,max=64"`
	AccountName       string  `json:"account_name" validate:"required,max=255"`
	Bank              string  `json:"bank" validate:"required,max=255"`
	ExchangeRate      float64 `json:"exchange_rate" validate:"required,gt=0" example:"500"`
	OrderLimitEnabled bool    `json:"order_limit_enabled"`
	MaxOrdersPerDay   int     `json:"max_orders_per_day" validate:"gte=0" example:"10"`
	MaxActiveOrders   int     `json:"max_active_orders" validate:"gte=0" example:"20"`
}

type SettingsResponseDTO struct {
	AccountNumber     string    `json:"account_number"`
	AccountName       string    `json:"account_name"`
	Bank              string    `json:"bank"`
	ExchangeRate      float64   `json:"exchange_rate" example:"500"`
	OrderLimitEnabled bool      `json:"order_limit_enabled"`
	MaxOrdersPerDay   int       `json:"max_orders_per_day"`
	MaxActiveOrders   int       `json:"max_active_orders"`
	UpdatedAt         time.Time `json:"updated_at"`
}
