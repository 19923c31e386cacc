// Package diagnostics defines the structured diagnostic record the core
// emits in place of exceptions: a `{level, code, span,
// arguments}` tuple, append-only and ordered by source position.
package diagnostics

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/larklang/compiler/internal/source"
)

// Level is the severity of a diagnostic record.
type Level int

const (
	Note Level = iota
	Warning
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code is a stable diagnostic identifier. The `E_*`/`W_*` ids are part
// of the tool's contract with drivers and test suites; renaming one is a
// breaking change.
type Code string

const (
	ErrUseOfUnresolvedIdentifier          Code = "E_USE_OF_UNRESOLVED_IDENTIFIER_1"
	ErrUseOfUndeclaredType                Code = "E_USE_OF_UNDECLARED_TYPE_1"
	ErrCannotAssignToAInB                 Code = "E_CANNOT_ASSIGN_TO_A_IN_B_2"
	ErrUseOfInitializingVariable          Code = "E_USE_OF_INITIALIZING_VARIABLE_1"
	ErrUseOfUninitializedVariable         Code = "E_USE_OF_UNINITIALIZED_VARIABLE_1"
	ErrInvalidRedeclaration               Code = "E_INVALID_REDECLARATION_1"
	ErrSuperclassMustAppearFirst           Code = "E_SUPERCLASS_MUST_APPEAR_FIRST_IN_INHERITANCE_CLAUSE_1"
	ErrCannotSpecializeNonGenericType      Code = "E_CANNOT_SPECIALIZE_NON_GENERIC_TYPE_1"
	ErrGenericTypeArgumentRequired         Code = "E_GENERIC_TYPE_ARGUMENT_REQUIRED_1"
	ErrTooManyTypeArguments                Code = "E_TOO_MANY_TYPE_ARGUMENTS_3"
	ErrInsufficientTypeArguments           Code = "E_INSUFFICIENT_TYPE_ARGUMENTS_3"
	ErrTuplePatternCannotMatchNonTuple     Code = "E_TUPLE_PATTERN_CANNOT_MATCH_VALUES_OF_THE_NON_TUPLE_TYPE_A_1"
	ErrDefaultArgNotPermittedInProtocol    Code = "E_DEFAULT_ARGUMENT_NOT_PERMITTED_IN_A_PROTOCOL_METHOD"
	ErrProtocolVarMustBeComputed           Code = "E_PROTOCOL_VAR_MUST_BE_COMPUTED_PROPERTY"
	ErrProtocolCannotDefineLetConstant     Code = "E_PROTOCOL_CANNOT_DEFINE_LET_CONSTANT"
	ErrTypeDoesNotConformUnimplementedFunc Code = "E_TYPE_DOES_NOT_CONFORM_TO_PROTOCOL_UNIMPLEMENTED_FUNCTION_3"
	ErrTypeDoesNotConformUnimplementedType Code = "E_TYPE_DOES_NOT_CONFORM_TO_PROTOCOL_UNIMPLEMENTED_TYPE_3"
	ErrTypeDoesNotConformUnimplementedProp Code = "E_TYPE_DOES_NOT_CONFORM_TO_PROTOCOL_UNIMPLEMENTED_PROPERTY_3"
	ErrFallthroughWithoutFollowingCase      Code = "E_FALLTHROUGH_WITHOUT_FOLLOWING_CASE"
	ErrAmbiguousUse                        Code = "E_AMBIGUOUS_USE_1"
	ErrOperatorRedeclaration                Code = "E_INVALID_OPERATOR_REDECLARATION_1"
	ErrUnresolvedOperator                  Code = "E_UNRESOLVED_OPERATOR_1"
	ErrUnexpectedToken                     Code = "E_UNEXPECTED_TOKEN_1"
	ErrExpectedToken                       Code = "E_EXPECTED_TOKEN_2"
	ErrInvalidNumberLiteral                Code = "E_INVALID_NUMBER_LITERAL_1"
	ErrUnterminatedString                  Code = "E_UNTERMINATED_STRING"
	ErrUnterminatedBlockComment            Code = "E_UNTERMINATED_BLOCK_COMMENT"
	ErrInvalidEscapeSequence               Code = "E_INVALID_ESCAPE_SEQUENCE_1"
	ErrStrayCharacter                      Code = "E_STRAY_CHARACTER_1"
	ErrRecursionLimitExceeded              Code = "E_RECURSION_LIMIT_EXCEEDED"

	WarnParamCanBeExpressedMoreSuccinctly Code = "W_PARAM_CAN_BE_EXPRESSED_MORE_SUCCINCTLY_1"
)

// Diagnostic is one structured record.
type Diagnostic struct {
	Level     Level
	Code      Code
	Span      source.Span
	Arguments []string
}

// Message renders the code followed by its arguments in brackets
// ("CODE[a b]"); there is no per-code message template. Formatting itself is a driver concern; this
// exists only so tests and a minimal CLI can print something reasonable
// without duplicating the argument list by hand.
func (d Diagnostic) Message() string {
	if len(d.Arguments) == 0 {
		return string(d.Code)
	}
	quoted := make([]any, len(d.Arguments))
	for i, a := range d.Arguments {
		quoted[i] = a
	}
	return fmt.Sprintf("%s%v", d.Code, quoted)
}

func New(level Level, code Code, span source.Span, args ...string) Diagnostic {
	return Diagnostic{Level: level, Code: code, Span: span, Arguments: args}
}

func NewError(code Code, span source.Span, args ...string) Diagnostic {
	return New(Error, code, span, args...)
}

func NewWarning(code Code, span source.Span, args ...string) Diagnostic {
	return New(Warning, code, span, args...)
}

// Sink accumulates diagnostics for one translation unit, append-only and
// ordered by source position within a pass.
type Sink struct {
	CompilationID uuid.UUID
	records       []Diagnostic
	aborted       bool
}

// NewSink mints a fresh sink stamped with a stable per-translation-unit
// id, so a driver running many units can correlate a diagnostics batch
// back to the unit that produced it.
func NewSink() *Sink {
	return &Sink{CompilationID: uuid.New()}
}

func (s *Sink) Add(d Diagnostic) {
	s.records = append(s.records, d)
	if d.Level == Fatal {
		s.aborted = true
	}
}

func (s *Sink) Error(code Code, span source.Span, args ...string) {
	s.Add(NewError(code, span, args...))
}

func (s *Sink) Warning(code Code, span source.Span, args ...string) {
	s.Add(NewWarning(code, span, args...))
}

func (s *Sink) Fatal(code Code, span source.Span, args ...string) {
	s.Add(New(Fatal, code, span, args...))
}

// Aborted reports whether a Fatal record was ever added, i.e. the driver's
// "abort current translation unit" signal has fired.
func (s *Sink) Aborted() bool { return s.aborted }

// Diagnostics returns the accumulated records in emission order.
func (s *Sink) Diagnostics() []Diagnostic { return s.records }

// HasErrors reports whether any Error or Fatal record was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.records {
		if d.Level == Error || d.Level == Fatal {
			return true
		}
	}
	return false
}
