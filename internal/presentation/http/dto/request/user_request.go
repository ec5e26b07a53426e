package request

// CreateUserRequest represents a staff registration request
type CreateUserRequest struct {
	FirstName       string  `json:"first_name" binding:"required,min=2,max=255"`
	LastName        string  `json:"last_name" binding:"required,min=2,max=255"`
	Username        string  `json:"username" binding:"required,min=3,max=255"`
	Email           string  `json:"email" binding:"required,email"`
	Password        string  `json:"password" binding:"required,min=8"`
	PasswordConfirm string  `json:"password_confirm" binding:"required,eqfield=Password"`
	Phone           *string `json:"phone" binding:"omitempty,max=50"`
	Role            string  `json:"role" binding:"omitempty,oneof=admin staff"`
	UserLevel       int     `json:"user_level" binding:"omitempty,min=1"`
}

// UpdateUserRequest represents a staff update request
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName  *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Role      *string `json:"role" binding:"omitempty,oneof=admin staff"`
	UserLevel *int    `json:"user_level" binding:"omitempty,min=1"`
}
