package evtc

import "testing"

func TestAggregateHealingAndBarrier(t *testing.T) {
	b := threeAgentLog().
		addHealing(0, 1, 1, 300, false).
		addHealing(100, 1, 1, 200, false).
		addHealing(200, 1, 1, 150, true) // shields flag -> barrier

	ally := findPlayer(t, mustParse(t, b.bytes()).Allies, "korrin.1234")
	if ally.Stats.Healing != 500 {
		t.Errorf("healing = %d, want 500", ally.Stats.Healing)
	}
	if ally.Stats.Barrier != 150 {
		t.Errorf("barrier = %d, want 150", ally.Stats.Barrier)
	}
	if ally.Stats.DamageDealt != 0 {
		t.Errorf("healing leaked into damage: %d", ally.Stats.DamageDealt)
	}
}

func TestAggregateCleansesAndStrips(t *testing.T) {
	b := threeAgentLog().
		addBuffRemove(0, 1, 1, IFFFriend).
		addBuffRemove(10, 1, 1, IFFFriend).
		addBuffRemove(20, 1, 2, IFFFoe).
		addBuffRemove(30, 1, 3, IFFUnknown) // unattributable, counts as neither

	ally := findPlayer(t, mustParse(t, b.bytes()).Allies, "korrin.1234")
	if ally.Stats.Cleanses != 2 {
		t.Errorf("cleanses = %d, want 2", ally.Stats.Cleanses)
	}
	if ally.Stats.Strips != 1 {
		t.Errorf("strips = %d, want 1", ally.Stats.Strips)
	}
}

func TestAggregateCrowdControl(t *testing.T) {
	b := threeAgentLog().
		addDamage(0, 1, 2, 100, ResultInterrupt).
		addDamage(10, 1, 2, 100, ResultNormal)

	ally := findPlayer(t, mustParse(t, b.bytes()).Allies, "korrin.1234")
	if ally.Stats.CrowdControl != 1 {
		t.Errorf("cc = %d, want 1", ally.Stats.CrowdControl)
	}
	if ally.Stats.DamageDealt != 200 {
		t.Errorf("interrupt hits must still count damage: %d", ally.Stats.DamageDealt)
	}
}

func TestAggregateDowns(t *testing.T) {
	b := threeAgentLog().
		addState(0, 1, 2, StateChangeDown).
		addState(100, 1, 2, StateChangeDown)

	enemy := findPlayer(t, mustParse(t, b.bytes()).Enemies, "vex.5678")
	if enemy.Stats.Downs != 2 {
		t.Errorf("downs = %d, want 2", enemy.Stats.Downs)
	}
}

func TestAggregateKillCredit(t *testing.T) {
	t.Run("last hit", func(t *testing.T) {
		// Moor lands the last hit before Vex dies; the death event itself
		// carries no source.
		b := threeAgentLog().
			addDamage(0, 1, 2, 500, ResultNormal).
			addDamage(100, 3, 2, 500, ResultNormal).
			addState(200, 0, 2, StateChangeDead)

		log := mustParse(t, b.bytes())
		if k := findPlayer(t, log.Enemies, "moor.9012").Stats.Kills; k != 1 {
			t.Errorf("last-hit killer kills = %d, want 1", k)
		}
		if k := findPlayer(t, log.Allies, "korrin.1234").Stats.Kills; k != 0 {
			t.Errorf("earlier attacker kills = %d, want 0", k)
		}
	})

	t.Run("explicit source wins", func(t *testing.T) {
		b := threeAgentLog().
			addDamage(0, 3, 2, 500, ResultNormal).
			addState(100, 1, 2, StateChangeDead)

		log := mustParse(t, b.bytes())
		if k := findPlayer(t, log.Allies, "korrin.1234").Stats.Kills; k != 1 {
			t.Errorf("stamped source kills = %d, want 1", k)
		}
	})

	t.Run("state source policy ignores last hit", func(t *testing.T) {
		b := threeAgentLog().
			addDamage(0, 1, 2, 500, ResultNormal).
			addState(100, 0, 2, StateChangeDead)

		log := mustParse(t, b.bytes(), WithKillCredit(KillCreditStateSource))
		if k := findPlayer(t, log.Allies, "korrin.1234").Stats.Kills; k != 0 {
			t.Errorf("kills = %d, want 0 under state-source policy", k)
		}
		if d := findPlayer(t, log.Enemies, "vex.5678").Stats.Deaths; d != 1 {
			t.Errorf("deaths = %d, want 1 regardless of policy", d)
		}
	})
}

func TestAggregateBuffApplyOnlyAdvancesClock(t *testing.T) {
	b := threeAgentLog().
		addDamage(0, 1, 2, 10, ResultNormal).
		addBuffApply(4000, 1, 1, 717, 10000)

	log := mustParse(t, b.bytes())
	if log.DurationSeconds != 4 {
		t.Errorf("duration = %d, want 4", log.DurationSeconds)
	}
	ally := findPlayer(t, log.Allies, "korrin.1234")
	if ally.Stats.DamageDealt != 10 {
		t.Errorf("buff apply perturbed damage: %d", ally.Stats.DamageDealt)
	}
}

func TestAllyTeamFallbackWithoutSelf(t *testing.T) {
	b := newLogBuilder().
		addAgent(Agent{ID: 1, Name: "Blue", Account: "blue.1111", Team: 2, IsPlayer: true}).
		addAgent(Agent{ID: 2, Name: "Red", Account: "red.2222", Team: 5, IsPlayer: true})

	log := mustParse(t, b.bytes())
	if len(log.Allies) != 1 || log.Allies[0].Account != "blue.1111" {
		t.Fatalf("lowest non-zero team must become ally, got %+v", log.Allies)
	}
	if len(log.Enemies) != 1 || log.Enemies[0].Account != "red.2222" {
		t.Fatalf("other team must become enemy, got %+v", log.Enemies)
	}
}
