package dto

type RegisterUserRequest struct {
	Name       string  `json:"name" binding:"required"`
	Role       string  `json:"role" binding:"required"`
	PhotoPath  string  `json:"photoPath" binding:"required"`
	CardNumber *string `json:"cardNumber,omitempty"`
}

type RegisterUserResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// UserResponse keeps the legacy field order; cardNumber serializes as null
// when the user has no card.
type UserResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	PhotoPath        string  `json:"photoPath"`
	CardNumber       *string `json:"cardNumber"`
	RegistrationDate string  `json:"registrationDate"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

type UserFoundResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
