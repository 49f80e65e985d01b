package ports

import (
	"context"

	"github.com/lawbot360/web/internal/core/session"
)

// SessionStore persists session snapshots keyed by the visitor's session ID.
// Each session holds two entries: the access token and the serialized user.
// A missing session loads as an empty snapshot with a nil error.
type SessionStore interface {
	session.Store
	Ping(ctx context.Context) error
}
