package logger

import "context"

type requestIDKey struct{}

// WithRequestID tags ctx with the id sent in the request's X-Request-ID
// header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ForRequest returns l with the request id of ctx attached, so every line
// about one API call can be correlated with the server's logs.
func ForRequest(ctx context.Context, l Logger) Logger {
	if id := RequestID(ctx); id != "" {
		return l.With("request_id", id)
	}
	return l
}
