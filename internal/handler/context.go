package handler

import "context"

type ContextKey string

var RequestIDCtxKey ContextKey = "requestID"

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDCtxKey).(string)
	return id
}
