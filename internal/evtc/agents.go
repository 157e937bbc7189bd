package evtc

import (
	"encoding/binary"
	"strings"
)

// Agent table: uint32 count, then fixed-width records. The name field packs
// character name and account name as NUL-separated segments, NUL-padded to
// the full width.
const (
	agentNameSize   = 68
	agentRecordSize = 8 + 4 + 4 + 2 + 2 + 2 + agentNameSize
)

const (
	agentFlagPlayer = 1 << 0
	agentFlagSelf   = 1 << 1
)

// Agent is one combat participant: player character, NPC, or gadget.
// IDs are opaque and unique only within a single log.
type Agent struct {
	ID         uint64
	Name       string
	Account    string
	Profession uint32
	EliteSpec  uint32
	Team       uint16
	Subgroup   uint16
	IsPlayer   bool
	IsSelf     bool
}

// decodeAgentTable reads the participant directory starting at off.
// Duplicate ids keep the first occurrence and are counted, never fatal.
func decodeAgentTable(data []byte, off int) ([]Agent, int, int, *ParseError) {
	if len(data)-off < 4 {
		return nil, 0, 0, structural(AgentTableCorrupt, off, 4, len(data)-off, "missing agent count")
	}
	count := binary.LittleEndian.Uint32(data[off:])
	off += 4

	need := int64(count) * agentRecordSize
	if need > int64(len(data)-off) {
		return nil, 0, 0, structural(AgentTableCorrupt, off, int(need), len(data)-off, "agent table overruns buffer")
	}

	agents := make([]Agent, 0, count)
	seen := make(map[uint64]struct{}, count)
	duplicates := 0
	for i := uint32(0); i < count; i++ {
		rec := data[off : off+agentRecordSize]
		off += agentRecordSize

		a := Agent{
			ID:         binary.LittleEndian.Uint64(rec[0:8]),
			Profession: binary.LittleEndian.Uint32(rec[8:12]),
			EliteSpec:  binary.LittleEndian.Uint32(rec[12:16]),
			Team:       binary.LittleEndian.Uint16(rec[16:18]),
			Subgroup:   binary.LittleEndian.Uint16(rec[18:20]),
		}
		flags := binary.LittleEndian.Uint16(rec[20:22])
		a.IsPlayer = flags&agentFlagPlayer != 0
		a.IsSelf = flags&agentFlagSelf != 0
		a.Name, a.Account = splitAgentName(rec[22 : 22+agentNameSize])

		if _, dup := seen[a.ID]; dup {
			duplicates++
			continue
		}
		seen[a.ID] = struct{}{}
		agents = append(agents, a)
	}
	return agents, off, duplicates, nil
}

func splitAgentName(raw []byte) (name, account string) {
	parts := strings.SplitN(string(raw), "\x00", 3)
	if len(parts) > 0 {
		name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		account = strings.TrimSpace(strings.TrimPrefix(parts[1], ":"))
	}
	return name, account
}
