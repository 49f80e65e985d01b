package session

import (
	"encoding/json"
	"fmt"

	"github.com/lawbot360/web/internal/core/domain"
)

// Fixed entry names under which a session is persisted.
const (
	TokenKey = "access_token"
	UserKey  = "user"
)

// Encode flattens a snapshot into its two string entries. Absent values are
// omitted from the map.
func Encode(s domain.Session) (map[string]string, error) {
	out := make(map[string]string, 2)
	if s.Token != "" {
		out[TokenKey] = s.Token
	}
	if s.User != nil {
		raw, err := json.Marshal(s.User)
		if err != nil {
			return nil, fmt.Errorf("encode user: %w", err)
		}
		out[UserKey] = string(raw)
	}
	return out, nil
}

// Decode rebuilds a snapshot from stored entries. A corrupt user entry is
// dropped; the token survives.
func Decode(entries map[string]string) domain.Session {
	var s domain.Session
	s.Token = entries[TokenKey]
	if raw, ok := entries[UserKey]; ok && raw != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.User = &u
		}
	}
	return s
}
