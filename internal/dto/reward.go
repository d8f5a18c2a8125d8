package dto

import "time"

type RewardRequestResponseDTO struct {
	ID         int        `json:"id"`
	AgentID    int        `json:"agent_id"`
	Amount     int64      `json:"amount" example:"12000"`
	Status     string     `json:"status" example:"pending"`
	CreatedAt  time.Time  `json:"created_at"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}
