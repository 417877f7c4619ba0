package dto

// LoginRequest carries the admin panel credentials. The bot-challenge
// token arrives as cfToken here (the form widget field), unlike the lead
// endpoint which uses turnstileToken.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	CFToken  string `json:"cfToken"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
