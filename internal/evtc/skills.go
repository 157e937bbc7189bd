package evtc

import (
	"encoding/binary"
	"strings"
)

const (
	skillNameSize   = 64
	skillRecordSize = 4 + skillNameSize
)

// Skill maps a skill id to its display name. The table exists for
// diagnostics and rendering; aggregation never keys on it.
type Skill struct {
	ID   uint32
	Name string
}

func decodeSkillTable(data []byte, off int) ([]Skill, int, *ParseError) {
	if len(data)-off < 4 {
		return nil, 0, structural(SkillTableCorrupt, off, 4, len(data)-off, "missing skill count")
	}
	count := binary.LittleEndian.Uint32(data[off:])
	off += 4

	need := int64(count) * skillRecordSize
	if need > int64(len(data)-off) {
		return nil, 0, structural(SkillTableCorrupt, off, int(need), len(data)-off, "skill table overruns buffer")
	}

	skills := make([]Skill, 0, count)
	for i := uint32(0); i < count; i++ {
		rec := data[off : off+skillRecordSize]
		off += skillRecordSize
		skills = append(skills, Skill{
			ID:   binary.LittleEndian.Uint32(rec[0:4]),
			Name: strings.TrimRight(string(rec[4:]), "\x00"),
		})
	}
	return skills, off, nil
}
