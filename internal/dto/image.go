package dto

type UploadImageRequestDTO struct {
	Data string `json:"data" validate:"required"` // base64 payload
}

type UploadImageResponseDTO struct {
	URL string `json:"url"`
}
