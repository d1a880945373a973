package identity

// CheckAdminResponse is the admin-role lookup payload returned by the
// provider's check-admin endpoint.
type CheckAdminResponse struct {
	IsAdmin bool `json:"is_admin"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
