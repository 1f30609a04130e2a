package tracing

// Span names.
const (
	SpanHandle = "pairing.handle"
	SpanPlan   = "pairing.plan"
	SpanDrain  = "pairing.drain"
)

// Span attribute keys.
const (
	AttrGesture      = "gesture.kind"
	AttrGestureChar  = "gesture.char"
	AttrCursor       = "cursor.position"
	AttrAction       = "action.kind"
	AttrActionReason = "action.reason"
	AttrLanguage     = "syntax.language"
	AttrPending      = "scheduler.pending"
)
