package models

// SignupRequest is the payload of POST /api/users/signup.
type SignupRequest struct {
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	Phone            string     `json:"phone"`
	Age              Age        `json:"age"`
	Gender           string     `json:"gender"`
	Institution      string     `json:"institution"`
	Skills           StringList `json:"skills,omitempty"`
	Interests        StringList `json:"interests,omitempty"`
	CompletedCourses StringList `json:"completedCourses,omitempty"`
}

// LoginRequest is the payload of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest is the payload of PUT /api/users/{id}/reset-password.
// The current password must be re-proved before the new one is stored.
type PasswordResetRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
