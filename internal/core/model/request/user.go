package request

type CreateUserRequest struct {
	FullName string `json:"full_name,omitempty" validate:"required,min=2,max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=72"`
}
