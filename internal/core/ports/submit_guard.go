package ports

import "context"

// SubmitGuard detects a form posted twice within a short window.
type SubmitGuard interface {
	First(ctx context.Context, sessionID, form, fingerprint string) (bool, error)
}
