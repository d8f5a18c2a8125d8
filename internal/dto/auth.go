package dto

type RegisterRequestDTO struct {
	Phone    string `json:"phone" validate:"required,phone" example:"99112233"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=user agent" example:"user"`
}

type LoginRequestDTO struct {
	Phone    string `json:"phone" validate:"required,phone" example:"99112233"`
	Password string `json:"password" validate:"required,min=8"`
}

type AuthResponseDTO struct {
	Token string `json:"token"`
	Role  string `json:"role" example:"user"`
}
