package evtc

// KillCreditPolicy selects how a death is attributed to a killer. The
// recorder does not always stamp a source on death state-changes, so the
// attribution rule is a policy, not a constant.
type KillCreditPolicy uint8

const (
	// KillCreditLastHit credits the source of the last damage event that
	// struck the victim before the death state-change. Default.
	KillCreditLastHit KillCreditPolicy = iota
	// KillCreditStateSource only credits an explicit non-zero source on the
	// death event itself.
	KillCreditStateSource
)

// PlayerStats is the per-participant accumulator. All counters are plain
// integer sums over the event stream; two passes over the same buffer
// produce identical values.
type PlayerStats struct {
	DamageDealt  int64
	DamageTaken  int64
	Healing      int64
	Barrier      int64
	Cleanses     int64
	Strips       int64
	CrowdControl int64
	Kills        int64
	Deaths       int64
	Downs        int64
}

// aggregator folds the event stream into per-agent accumulators in a single
// forward pass. Agents are addressed by dense index, not by hashing the raw
// file id on every event.
type aggregator struct {
	agents []Agent
	index  map[uint64]int
	stats  []PlayerStats

	// lastHit[i] is the dense index of the agent whose damage last struck
	// agent i, or -1. Feeds the last-hit kill-credit policy.
	lastHit []int

	policy KillCreditPolicy

	firstTime  uint64
	lastTime   uint64
	sawEvent   bool
	unresolved int
}

func newAggregator(agents []Agent, policy KillCreditPolicy) *aggregator {
	a := &aggregator{
		agents:  agents,
		index:   make(map[uint64]int, len(agents)),
		stats:   make([]PlayerStats, len(agents)),
		lastHit: make([]int, len(agents)),
		policy:  policy,
	}
	for i, ag := range agents {
		a.index[ag.ID] = i
		a.lastHit[i] = -1
	}
	return a
}

func (a *aggregator) resolve(id uint64) (int, bool) {
	i, ok := a.index[id]
	return i, ok
}

func (a *aggregator) fold(ev Event) {
	if !a.sawEvent {
		a.firstTime = ev.Time
		a.sawEvent = true
	}
	a.lastTime = ev.Time

	// Id zero means "no agent on this side", not a dangling reference.
	src, srcOK := a.resolve(ev.Src)
	dst, dstOK := a.resolve(ev.Dst)
	if (!srcOK && ev.Src != 0) || (!dstOK && ev.Dst != 0) {
		a.unresolved++
	}

	switch ev.Kind {
	case KindDamage:
		a.foldDamage(ev, src, srcOK, dst, dstOK)
	case KindBuffRemove:
		if !srcOK {
			return
		}
		switch ev.IFF {
		case IFFFriend:
			a.stats[src].Cleanses++
		case IFFFoe:
			a.stats[src].Strips++
		}
	case KindStateChange:
		a.foldStateChange(ev, src, srcOK, dst, dstOK)
	case KindBuffApply:
		// Uptime is not aggregated here; applies only advance the clock.
	}
}

func (a *aggregator) foldDamage(ev Event, src int, srcOK bool, dst int, dstOK bool) {
	v := int64(ev.Value)
	if v < 0 {
		// Negative damage is outgoing healing, or barrier when the shields
		// flag is set.
		if srcOK {
			if ev.Shields {
				a.stats[src].Barrier += -v
			} else {
				a.stats[src].Healing += -v
			}
		}
		return
	}
	if srcOK {
		a.stats[src].DamageDealt += v
		if ev.Result == ResultInterrupt {
			a.stats[src].CrowdControl++
		}
	}
	if dstOK {
		a.stats[dst].DamageTaken += v
		if srcOK && v > 0 {
			a.lastHit[dst] = src
		}
	}
}

func (a *aggregator) foldStateChange(ev Event, src int, srcOK bool, dst int, dstOK bool) {
	switch ev.State {
	case StateChangeDown:
		if dstOK {
			a.stats[dst].Downs++
		}
	case StateChangeDead:
		if !dstOK {
			return
		}
		a.stats[dst].Deaths++
		killer := -1
		if srcOK && ev.Src != 0 && src != dst {
			killer = src
		} else if a.policy == KillCreditLastHit {
			if h := a.lastHit[dst]; h >= 0 && h != dst {
				killer = h
			}
		}
		if killer >= 0 {
			a.stats[killer].Kills++
		}
	}
}

// durationSeconds is floor((last − first) / 1000), never negative, zero for
// empty or single-event logs.
func (a *aggregator) durationSeconds() int {
	if !a.sawEvent || a.lastTime <= a.firstTime {
		return 0
	}
	return int((a.lastTime - a.firstTime) / 1000)
}

// partition materializes every player agent into a ParsedPlayer and splits
// them by team: the recorder's own team is ally, any other non-zero team is
// enemy, team zero is neither. Table order is preserved so output is
// deterministic.
func (a *aggregator) partition() (allies, enemies []ParsedPlayer) {
	allyTeam := a.allyTeam()
	for i, ag := range a.agents {
		if !ag.IsPlayer {
			continue
		}
		if ag.Team == 0 {
			continue
		}
		p := ParsedPlayer{
			Name:       ag.Name,
			Account:    ag.Account,
			Profession: ag.Profession,
			EliteSpec:  ag.EliteSpec,
			Team:       ag.Team,
			Subgroup:   ag.Subgroup,
			Stats:      a.stats[i],
		}
		if ag.Team == allyTeam {
			p.Ally = true
			allies = append(allies, p)
		} else {
			enemies = append(enemies, p)
		}
	}
	return allies, enemies
}

// allyTeam is the recorder agent's team id. Logs missing a self-marked agent
// fall back to the lowest non-zero player team, which keeps the partition
// deterministic for third-party captures.
func (a *aggregator) allyTeam() uint16 {
	for _, ag := range a.agents {
		if ag.IsSelf && ag.IsPlayer {
			return ag.Team
		}
	}
	var lowest uint16
	for _, ag := range a.agents {
		if !ag.IsPlayer || ag.Team == 0 {
			continue
		}
		if lowest == 0 || ag.Team < lowest {
			lowest = ag.Team
		}
	}
	return lowest
}
