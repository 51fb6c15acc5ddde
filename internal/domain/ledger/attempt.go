package ledger

import "context"

type attemptKey struct{}

// WithAttempt tags ctx with a verification attempt id so the ledger and the
// verifier log lines of one check can be joined.
func WithAttempt(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptKey{}, id)
}

// AttemptID returns the attempt id carried by ctx, or "".
func AttemptID(ctx context.Context) string {
	id, _ := ctx.Value(attemptKey{}).(string)
	return id
}
