package gateway

import "context"

type requestIDContextKey struct{}
type deviceIDContextKey struct{}

// WithRequestID attaches a correlation id to ctx; it is sent as X-Request-ID
// on the outbound call. When absent, the client generates one per request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// WithDeviceID attaches the installation's device identifier to ctx; it is
// sent as X-Device-ID on the outbound call.
func WithDeviceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, id)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(deviceIDContextKey{}).(string)
	return id
}
