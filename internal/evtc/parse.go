// Package evtc decodes the binary combat-log format produced by the game
// instrumentation add-on into per-participant fight statistics.
//
// The decoder is a pure library: it performs no I/O, holds no state across
// calls, and is safe to run concurrently as long as callers do not share
// buffers. Structural failures (bad container, bad signature, truncated
// tables or stream) return a typed *ParseError and never a partial result;
// vocabulary drift in the event stream (unknown discriminators) is counted
// in Diagnostics and skipped.
package evtc

// ParsedPlayer is one player participant with cumulative fight statistics.
// Role is always empty here; role inference is a caller concern, injected
// after the fact, so game-balance churn never touches this package.
type ParsedPlayer struct {
	Name       string
	Account    string
	Profession uint32
	EliteSpec  uint32
	Team       uint16
	Subgroup   uint16
	Ally       bool
	Role       string
	Stats      PlayerStats
}

// Diagnostics carries the tolerated-anomaly counters for one parse. It is
// an explicit return value; the decoder keeps no ambient counters.
type Diagnostics struct {
	Events          int
	UnknownEvents   int
	DuplicateAgents int
	UnresolvedRefs  int
	Skills          int
}

// ParsedLog is the complete result of one parse.
type ParsedLog struct {
	BuildDate       string
	Revision        uint8
	FightID         uint16
	DurationSeconds int
	Allies          []ParsedPlayer
	Enemies         []ParsedPlayer
	Diagnostics     Diagnostics
}

const defaultDecompressionCeiling = 256 << 20

type options struct {
	decompressionCeiling int64
	killCredit           KillCreditPolicy
}

// Option adjusts parse behavior.
type Option func(*options)

// WithDecompressionCeiling caps the decompressed size accepted from a
// zip-wrapped payload.
func WithDecompressionCeiling(n int64) Option {
	return func(o *options) { o.decompressionCeiling = n }
}

// WithKillCredit selects the kill-attribution policy.
func WithKillCredit(p KillCreditPolicy) Option {
	return func(o *options) { o.killCredit = p }
}

// Parse decodes one combat log from an in-memory buffer. filenameHint is
// advisory only; container detection goes by content. The pass is strictly
// forward: container, header, agent table, skill table, then a streaming
// decode-and-fold over the event records, so peak memory stays
// O(agents + diagnostics) even for multi-hour fights.
func Parse(data []byte, filenameHint string, opts ...Option) (*ParsedLog, error) {
	o := options{
		decompressionCeiling: defaultDecompressionCeiling,
		killCredit:           KillCreditLastHit,
	}
	for _, opt := range opts {
		opt(&o)
	}

	buf, perr := unwrap(data, o.decompressionCeiling)
	if perr != nil {
		perr.Detail = withHint(perr.Detail, filenameHint)
		return nil, perr
	}

	header, off, perr := decodeHeader(buf)
	if perr != nil {
		perr.Detail = withHint(perr.Detail, filenameHint)
		return nil, perr
	}

	agents, off, duplicates, perr := decodeAgentTable(buf, off)
	if perr != nil {
		return nil, perr
	}

	skills, off, perr := decodeSkillTable(buf, off)
	if perr != nil {
		return nil, perr
	}

	remaining := len(buf) - off
	if remaining%eventRecordSize != 0 {
		return nil, structural(TruncatedStream, off,
			(remaining/eventRecordSize+1)*eventRecordSize, remaining,
			"event stream length not a multiple of record size")
	}

	agg := newAggregator(agents, o.killCredit)
	diag := Diagnostics{
		DuplicateAgents: duplicates,
		Skills:          len(skills),
	}
	for ; off < len(buf); off += eventRecordSize {
		ev, known := decodeEvent(buf[off : off+eventRecordSize])
		if !known {
			diag.UnknownEvents++
			continue
		}
		diag.Events++
		agg.fold(ev)
	}
	diag.UnresolvedRefs = agg.unresolved

	allies, enemies := agg.partition()
	return &ParsedLog{
		BuildDate:       header.BuildDate,
		Revision:        header.Revision,
		FightID:         header.FightID,
		DurationSeconds: agg.durationSeconds(),
		Allies:          allies,
		Enemies:         enemies,
		Diagnostics:     diag,
	}, nil
}

func withHint(detail, hint string) string {
	if hint == "" {
		return detail
	}
	return detail + " (upload: " + hint + ")"
}
