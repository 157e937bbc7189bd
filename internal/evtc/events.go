package evtc

import "encoding/binary"

// Combat events are fixed 64-byte records trailing the skill table, with no
// count prefix: record count = remaining length / 64, and a non-zero
// remainder is a structural error. Discriminators live in the tail bytes and
// are decoded before any value field is interpreted.
const eventRecordSize = 64

const (
	evOffTime        = 0
	evOffSrc         = 8
	evOffDst         = 16
	evOffValue       = 24
	evOffBuffDamage  = 28
	evOffSkillID     = 32
	evOffOverstack   = 36
	evOffStateChange = 40
	evOffBuffRemove  = 41
	evOffBuff        = 42
	evOffResult      = 43
	evOffIFF         = 44
	evOffShields     = 45
	evOffOffCycle    = 46
)

// StateChange codes the recorder emits. Values past stateKnownMax belong to
// newer recorder builds and are skipped, not rejected.
type StateChange uint8

const (
	StateNone StateChange = iota
	StateEnterCombat
	StateExitCombat
	StateChangeUp
	StateChangeDown
	StateChangeDead
	StateSpawn
	StateDespawn
	StateHealthUpdate
	StateLogStart
	StateLogEnd

	stateKnownMax = StateLogEnd
)

// Hit-result codes for damage events.
const (
	ResultNormal = iota
	ResultCritical
	ResultGlance
	ResultBlock
	ResultEvade
	ResultInterrupt
	ResultAbsorb
	ResultBlind
	ResultKillingBlow
	ResultDowned

	resultKnownMax = ResultDowned
)

// Buff-removal codes.
const (
	RemoveAll = iota + 1
	RemoveSingle
	RemoveManual

	removeKnownMax = RemoveManual
)

// Friend/foe marker on buff events, relative to the recording side.
const (
	IFFFriend = iota
	IFFFoe
	IFFUnknown
)

// EventKind tags the closed set of decoded event shapes.
type EventKind uint8

const (
	KindStateChange EventKind = iota
	KindDamage
	KindBuffApply
	KindBuffRemove
)

// Event is one decoded record. Kind selects which payload fields are
// meaningful; the rest are zero.
type Event struct {
	Time uint64
	Src  uint64
	Dst  uint64
	Kind EventKind

	State StateChange // KindStateChange

	SkillID   uint32
	Value     int32 // damage dealt, or buff duration applied
	Result    uint8 // KindDamage hit result
	Condition bool  // condition damage vs direct
	Shields   bool  // value applied to barrier, not health
	OffCycle  bool

	RemoveKind uint8 // KindBuffRemove
	IFF        uint8
}

// decodeEvent decodes one fixed-size record. ok is false for discriminator
// combinations this revision does not recognize; the caller counts and
// skips those, so a newer recorder never invalidates a whole log.
func decodeEvent(rec []byte) (ev Event, ok bool) {
	ev.Time = binary.LittleEndian.Uint64(rec[evOffTime:])
	ev.Src = binary.LittleEndian.Uint64(rec[evOffSrc:])
	ev.Dst = binary.LittleEndian.Uint64(rec[evOffDst:])
	ev.SkillID = binary.LittleEndian.Uint32(rec[evOffSkillID:])
	ev.Shields = rec[evOffShields] != 0
	ev.OffCycle = rec[evOffOffCycle] != 0
	ev.IFF = rec[evOffIFF]

	stateChange := StateChange(rec[evOffStateChange])
	buffRemove := rec[evOffBuffRemove]
	buff := rec[evOffBuff]

	switch {
	case stateChange != StateNone:
		if stateChange > stateKnownMax {
			return ev, false
		}
		ev.Kind = KindStateChange
		ev.State = stateChange

	case buffRemove != 0:
		if buffRemove > removeKnownMax || ev.IFF > IFFUnknown {
			return ev, false
		}
		ev.Kind = KindBuffRemove
		ev.RemoveKind = buffRemove

	case buff != 0:
		buffDamage := int32(binary.LittleEndian.Uint32(rec[evOffBuffDamage:]))
		if buffDamage != 0 {
			ev.Kind = KindDamage
			ev.Condition = true
			ev.Value = buffDamage
			ev.Result = rec[evOffResult]
			if ev.Result > resultKnownMax {
				return ev, false
			}
		} else {
			ev.Kind = KindBuffApply
			ev.Value = int32(binary.LittleEndian.Uint32(rec[evOffValue:]))
		}

	default:
		ev.Kind = KindDamage
		ev.Value = int32(binary.LittleEndian.Uint32(rec[evOffValue:]))
		ev.Result = rec[evOffResult]
		if ev.Result > resultKnownMax {
			return ev, false
		}
	}
	return ev, true
}
