package evtc

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"
)

// logBuilder assembles synthetic log buffers for tests: header, agent table,
// skill table, then raw event records in insertion order.
type logBuilder struct {
	buildDate string
	revision  byte
	fightID   uint16
	agents    []Agent
	skills    []Skill
	events    [][]byte
}

func newLogBuilder() *logBuilder {
	return &logBuilder{buildDate: "20250812", revision: 1, fightID: 1}
}

func (b *logBuilder) addAgent(a Agent) *logBuilder {
	b.agents = append(b.agents, a)
	return b
}

func (b *logBuilder) addSkill(id uint32, name string) *logBuilder {
	b.skills = append(b.skills, Skill{ID: id, Name: name})
	return b
}

func (b *logBuilder) event(t, src, dst uint64) []byte {
	rec := make([]byte, eventRecordSize)
	binary.LittleEndian.PutUint64(rec[evOffTime:], t)
	binary.LittleEndian.PutUint64(rec[evOffSrc:], src)
	binary.LittleEndian.PutUint64(rec[evOffDst:], dst)
	b.events = append(b.events, rec)
	return rec
}

func (b *logBuilder) addDamage(t, src, dst uint64, value int32, result uint8) *logBuilder {
	rec := b.event(t, src, dst)
	binary.LittleEndian.PutUint32(rec[evOffValue:], uint32(value))
	rec[evOffResult] = result
	return b
}

func (b *logBuilder) addConditionDamage(t, src, dst uint64, value int32) *logBuilder {
	rec := b.event(t, src, dst)
	rec[evOffBuff] = 1
	binary.LittleEndian.PutUint32(rec[evOffBuffDamage:], uint32(value))
	return b
}

func (b *logBuilder) addHealing(t, src, dst uint64, value int32, shields bool) *logBuilder {
	rec := b.event(t, src, dst)
	binary.LittleEndian.PutUint32(rec[evOffValue:], uint32(-value))
	if shields {
		rec[evOffShields] = 1
	}
	return b
}

func (b *logBuilder) addBuffApply(t, src, dst uint64, skill uint32, duration int32) *logBuilder {
	rec := b.event(t, src, dst)
	rec[evOffBuff] = 1
	binary.LittleEndian.PutUint32(rec[evOffValue:], uint32(duration))
	binary.LittleEndian.PutUint32(rec[evOffSkillID:], skill)
	return b
}

func (b *logBuilder) addBuffRemove(t, src, dst uint64, iff uint8) *logBuilder {
	rec := b.event(t, src, dst)
	rec[evOffBuffRemove] = RemoveAll
	rec[evOffIFF] = iff
	return b
}

func (b *logBuilder) addState(t, src, dst uint64, state StateChange) *logBuilder {
	rec := b.event(t, src, dst)
	rec[evOffStateChange] = byte(state)
	return b
}

// addUnknown appends a record with a state-change code no known revision
// emits.
func (b *logBuilder) addUnknown(t uint64) *logBuilder {
	rec := b.event(t, 999, 999)
	rec[evOffStateChange] = 0xC8
	return b
}

func (b *logBuilder) bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("EVTC")
	buf.WriteString(b.buildDate)
	buf.WriteByte(b.revision)
	var u16 [2]byte
	binary.LittleEndian.PutUint16(u16[:], b.fightID)
	buf.Write(u16[:])
	buf.WriteByte(0)

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(b.agents)))
	buf.Write(u32[:])
	for _, a := range b.agents {
		rec := make([]byte, agentRecordSize)
		binary.LittleEndian.PutUint64(rec[0:], a.ID)
		binary.LittleEndian.PutUint32(rec[8:], a.Profession)
		binary.LittleEndian.PutUint32(rec[12:], a.EliteSpec)
		binary.LittleEndian.PutUint16(rec[16:], a.Team)
		binary.LittleEndian.PutUint16(rec[18:], a.Subgroup)
		var flags uint16
		if a.IsPlayer {
			flags |= agentFlagPlayer
		}
		if a.IsSelf {
			flags |= agentFlagSelf
		}
		binary.LittleEndian.PutUint16(rec[20:], flags)
		name := a.Name + "\x00" + a.Account + "\x00"
		copy(rec[22:22+agentNameSize], name)
		buf.Write(rec)
	}

	binary.LittleEndian.PutUint32(u32[:], uint32(len(b.skills)))
	buf.Write(u32[:])
	for _, s := range b.skills {
		rec := make([]byte, skillRecordSize)
		binary.LittleEndian.PutUint32(rec[0:], s.ID)
		copy(rec[4:], s.Name)
		buf.Write(rec)
	}

	for _, ev := range b.events {
		buf.Write(ev)
	}
	return buf.Bytes()
}

func zipWrap(t *testing.T, members map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, payload := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip member: %v", err)
		}
		if _, err := w.Write(payload); err != nil {
			t.Fatalf("write zip member: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// threeAgentLog is the canonical small fixture: one ally player (the
// recorder), two enemy players.
func threeAgentLog() *logBuilder {
	return newLogBuilder().
		addAgent(Agent{ID: 1, Name: "Korrin", Account: "korrin.1234", Profession: 4, EliteSpec: 55, Team: 1, Subgroup: 1, IsPlayer: true, IsSelf: true}).
		addAgent(Agent{ID: 2, Name: "Vex", Account: "vex.5678", Profession: 9, EliteSpec: 62, Team: 2, Subgroup: 1, IsPlayer: true}).
		addAgent(Agent{ID: 3, Name: "Moor", Account: "moor.9012", Profession: 1, EliteSpec: 0, Team: 2, Subgroup: 2, IsPlayer: true})
}
