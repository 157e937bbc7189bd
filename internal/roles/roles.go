// Package roles infers a tactical role tag from profession and elite-spec
// ids. The mapping is rebalanced with the game far more often than the
// binary format changes, so it lives here as a pluggable capability and is
// never imported by the decoder.
package roles

// Role is a coarse tactical tag used by report rendering.
type Role string

const (
	RoleSupport Role = "support"
	RoleStriker Role = "striker"
	RoleBruiser Role = "bruiser"
	RoleRoamer  Role = "roamer"
	RoleUnknown Role = "unknown"
)

// Resolver maps profession/elite-spec ids to a Role. Services take a
// Resolver value so tests and future balance patches can swap the table.
type Resolver func(profession, eliteSpec uint32) Role

// Elite-spec ids as the recorder emits them. Only specs whose role
// assignment is unambiguous in large-scale play are listed; everything else
// falls through to the profession default.
var eliteSpecRoles = map[uint32]Role{
	// support lines
	27: RoleSupport, // druid
	62: RoleSupport, // firebrand
	69: RoleSupport, // scourge (barrier support in zerg play)
	// striker lines
	48: RoleStriker, // scrapper
	55: RoleStriker, // weaver
	56: RoleStriker, // holosmith
	63: RoleStriker, // spellbreaker
	// bruiser lines
	18: RoleBruiser, // berserker
	34: RoleBruiser, // reaper
	52: RoleBruiser, // daredevil
	// roaming lines
	5:  RoleRoamer, // soulbeast (trait line id family)
	58: RoleRoamer, // deadeye
	66: RoleRoamer, // mirage
}

var professionRoles = map[uint32]Role{
	1: RoleBruiser, // guardian
	2: RoleBruiser, // warrior
	3: RoleStriker, // engineer
	4: RoleRoamer,  // ranger
	5: RoleRoamer,  // thief
	6: RoleStriker, // elementalist
	7: RoleStriker, // mesmer
	8: RoleStriker, // necromancer
	9: RoleBruiser, // revenant
}

// Resolve is the default Resolver.
func Resolve(profession, eliteSpec uint32) Role {
	if eliteSpec != 0 {
		if r, ok := eliteSpecRoles[eliteSpec]; ok {
			return r
		}
	}
	if r, ok := professionRoles[profession]; ok {
		return r
	}
	return RoleUnknown
}
