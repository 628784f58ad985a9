package models

// AuthResponse is returned by signup and login. Msg is only set on signup.
type AuthResponse struct {
	Msg   string      `json:"msg,omitempty"`
	Token string      `json:"token"`
	User  AccountView `json:"user"`
}

// MessageResponse carries a human-readable status message. Every error
// response of the REST API uses this shape.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// DashboardResponse is returned by the protected dashboard endpoint.
type DashboardResponse struct {
	Msg  string      `json:"msg"`
	User AccountView `json:"user"`
}
