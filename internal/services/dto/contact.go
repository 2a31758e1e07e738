package dto

type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Description string `json:"description" validate:"required,max=5000"`
}
