package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSpawn     Phase = "spawn"     // starting the engine process
	PhaseHandshake Phase = "handshake" // configuring a freshly started engine
	PhaseQuery     Phase = "query"     // talking to a running engine
	PhaseShutdown  Phase = "shutdown"  // terminating the engine
	PhaseEncode    Phase = "encode"    // writing the wire format
	PhaseDecode    Phase = "decode"    // reading the wire format
	PhaseConfig    Phase = "config"    // loading tool configuration
)

// Kind categorizes the error
type Kind string

const (
	KindExecutableMissing Kind = "executable_missing"
	KindEngineRejected    Kind = "engine_rejected"
	KindIO                Kind = "io_failure"
	KindInvalidData       Kind = "invalid_data"
	KindUnexpectedEOF     Kind = "unexpected_eof"
	KindClosed            Kind = "closed"
	KindInvalidTag        Kind = "invalid_tag"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
	KindOverflow          Kind = "overflow"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsSpawn reports whether err is an engine-spawn failure: the
// executable was missing, the engine rejected the theory, or the
// handshake failed. Decode of a live signature surfaces these too.
func IsSpawn(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Phase == PhaseSpawn || e.Phase == PhaseHandshake
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ExecutableMissing creates an error for an engine binary that could
// not be found or executed.
func ExecutableMissing(path string, cause error) *Error {
	return &Error{
		Phase:  PhaseSpawn,
		Kind:   KindExecutableMissing,
		Detail: fmt.Sprintf("engine executable %q", path),
		Cause:  cause,
	}
}

// EngineRejected creates an error for an engine that refused the
// supplied theory during the handshake.
func EngineRejected(path, response string) *Error {
	return &Error{
		Phase:  PhaseHandshake,
		Kind:   KindEngineRejected,
		Detail: fmt.Sprintf("engine %q rejected theory: %s", path, response),
		Value:  response,
	}
}

// SpawnIO creates an error for an I/O failure while starting or
// configuring the engine process.
func SpawnIO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseHandshake,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// QueryIO creates an error for an I/O failure while talking to a
// running engine.
func QueryIO(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}

// Closed creates an error for an operation on a handle that has been
// shut down.
func Closed(op string) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s on closed engine handle", op),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// UnexpectedEOF creates a truncated-input decode error
func UnexpectedEOF(path []string, cause error) *Error {
	return &Error{
		Phase: PhaseDecode,
		Kind:  KindUnexpectedEOF,
		Path:  path,
		Cause: cause,
	}
}

// Overflow creates an error for a length or count field beyond the
// decoder's bounds.
func Overflow(path []string, value uint64, limit uint64) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %d exceeds limit %d", value, limit),
		Value:  value,
	}
}

// InvalidTag creates an error for a malformed fact tag
func InvalidTag(input string, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidTag,
		Detail: fmt.Sprintf("tag %q: %s", input, detail),
		Value:  input,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
