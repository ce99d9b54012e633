package domain

// Identity is the authenticated caller, reconstructed per request from the
// signed token payload by the auth middleware. Role is the canonical form.
type Identity struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}
