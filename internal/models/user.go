package models

// User is the signed-in user's profile as served by the backend.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	Headline  string `json:"headline,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ProfileUpdate is the body for PUT /user. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Headline    *string `json:"headline,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty" binding:"omitempty,url"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	NewPassword *string `json:"newPassword,omitempty" binding:"omitempty,min=6"`
}

// Credentials is the login body.
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup is the account creation body.
type Signup struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Session is what the backend returns on login or signup.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}
