package web

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID returns a copy of ctx carrying the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// GetRequestID returns the request id stored by WithRequestID.
// Empty ids are reported as missing.
func GetRequestID(ctx context.Context) (string, bool) {
	id, _ := ctx.Value(requestIDKey).(string)
	return id, id != ""
}
