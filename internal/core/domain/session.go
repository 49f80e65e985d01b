package domain

// Session is an immutable snapshot of a visitor's credentials. User is an
// advisory cache populated at login/registration and only meaningful while
// Token is set; nothing here enforces that pairing.
type Session struct {
	Token string
	User  *User
}

// HasToken reports whether a bearer token is stored.
func (s Session) HasToken() bool {
	return s.Token != ""
}

// WithCredentials returns a copy carrying the given token and user.
func (s Session) WithCredentials(token string, user *User) Session {
	s.Token = token
	s.User = cloneUser(user)
	return s
}

// WithUser returns a copy with the cached profile replaced.
func (s Session) WithUser(user *User) Session {
	s.User = cloneUser(user)
	return s
}

// Empty reports whether neither a token nor a user is stored.
func (s Session) Empty() bool {
	return s.Token == "" && s.User == nil
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
