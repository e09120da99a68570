package remote

import "errors"

var (
	// ErrSessionExpired maps a 401 from the store of record. Callers must
	// stop syncing and send the user back through authentication.
	ErrSessionExpired = errors.New("session expired")

	// ErrRemoteUnavailable covers transport failures and 5xx responses.
	// Local state is kept; nothing retries automatically.
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	ErrNotFound = errors.New("not found on remote store")
	ErrRejected = errors.New("request rejected by remote store")
)
