package evtc

import "fmt"

// ErrorKind classifies a structural decode failure.
type ErrorKind uint8

const (
	UnsupportedContainer ErrorKind = iota + 1
	BadSignature
	TruncatedStream
	AgentTableCorrupt
	SkillTableCorrupt
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedContainer:
		return "unsupported_container"
	case BadSignature:
		return "bad_signature"
	case TruncatedStream:
		return "truncated_stream"
	case AgentTableCorrupt:
		return "agent_table_corrupt"
	case SkillTableCorrupt:
		return "skill_table_corrupt"
	default:
		return "unknown"
	}
}

// ParseError is the single error type returned for structural failures.
// Offset is the byte position where decoding stopped, Expected/Actual the
// size the decoder required versus what the buffer provided. Tolerated
// anomalies (unknown event subtypes, duplicate agents) never produce one;
// they surface through Diagnostics instead.
type ParseError struct {
	Kind     ErrorKind
	Offset   int
	Expected int
	Actual   int
	Detail   string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("evtc: %s at offset %d (expected %d bytes, have %d): %s",
			e.Kind, e.Offset, e.Expected, e.Actual, e.Detail)
	}
	return fmt.Sprintf("evtc: %s at offset %d (expected %d bytes, have %d)",
		e.Kind, e.Offset, e.Expected, e.Actual)
}

func structural(kind ErrorKind, offset, expected, actual int, detail string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Expected: expected, Actual: actual, Detail: detail}
}
