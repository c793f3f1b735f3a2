package contextutil

import "context"

// Unexported type agar context key tidak bisa bentrok dengan paket lain
type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID mengambil Request ID dari context
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID menginjeksi ID ke context (juga dipakai di unit test)
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}
