package dto

// CreateStudentRequest is the JSON body for student registration.
// Name must be at least 4 characters and the password at least 6.
type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=4"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the form-encoded login body. The username field
// carries the student's email.
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
