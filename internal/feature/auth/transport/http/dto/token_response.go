package dto

// TokenRes represents the response for a successful login.
type TokenRes struct {
	Token string `json:"token"`
}

// MessageRes represents a simple confirmation message response.
type MessageRes struct {
	Message string `json:"message"`
}
