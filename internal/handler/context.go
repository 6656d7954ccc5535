package handler

type ContextKey string

var (
	SubCtxKey          ContextKey = "sub"
	CoordinatorCtx     ContextKey = "coordinator"
	StaffingRequestCtx ContextKey = "staffingRequest"
)
