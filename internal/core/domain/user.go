package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the profile snapshot returned by the LawBot backend. The web
// tier never mutates it; a fresher server response replaces it wholesale.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
