package requestdata

import (
	"context"
)

type contextKey struct{}

var requestDataKey = contextKey{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData is the explicit per-request session context: every service and
// aggregator call receives it through ctx instead of consulting a global
// current-user singleton.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       string
	Role         string
}
