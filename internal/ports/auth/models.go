package auth

// Claims representa la información extraída del token.
// UserID es el ID del hogar dueño del botiquín.
type Claims struct {
	UserID string
	Email  string
}
