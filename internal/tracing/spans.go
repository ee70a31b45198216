package tracing

// Span attribute keys for replay tracing.
const (
	AttrScriptName  = "script.name"
	AttrScriptSteps = "script.steps"

	AttrStepIndex  = "step.index"
	AttrStepOp     = "step.op"
	AttrStepRepeat = "step.repeat"

	AttrCursorLine      = "cursor.line"
	AttrCursorCharacter = "cursor.character"
	AttrRevision        = "document.revision"
	AttrLineCount       = "document.lines"
)

// Span names.
const (
	SpanReplay     = "script.replay"
	SpanStepPrefix = "step."
)

// Event names.
const (
	EventCodeChanged = "code.changed"
	EventCursorMoved = "cursor.moved"
)
