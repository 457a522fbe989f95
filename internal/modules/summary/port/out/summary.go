package out

import (
	"context"

	sessiondomain "abaterm/internal/modules/session/domain"
)

// Summarizer turns a full session into narrative prose. Implementations may
// call a remote model or delegate to an external plugin process.
type Summarizer interface {
	// Name identifies the backend for diagnostics ("gemini", plugin name).
	Name() string
	// Available reports whether the backend can be used at all, without
	// performing a full generation.
	Available() bool
	Summarize(ctx context.Context, session sessiondomain.Session) (string, error)
}

// SessionSource exposes the session being summarized. The session module's
// interactor satisfies this through its port.
type SessionSource interface {
	Snapshot() sessiondomain.Session
}
