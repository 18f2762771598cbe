package domain

// AuthPayload is the subset of token claims this service relies on
type AuthPayload struct {
	UserID     string   `json:"sub"`
	Username   string   `json:"username"`
	Permission []string `json:"permission"`
}
