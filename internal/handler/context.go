package handler

type ContextKey string

var (
	PostCtx     ContextKey = "post"
	PlatformCtx ContextKey = "platform"
)
