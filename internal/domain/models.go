package domain

import (
	"time"

	"wvw-tracker/internal/evtc"
)

// Fight is one persisted combat report.
type Fight struct {
	ID              string // nanoid
	Fingerprint     string
	FightID         int
	BuildDate       string
	Revision        int
	DurationSeconds int
	AllyCount       int
	EnemyCount      int
	UnknownEvents   int
	UploadedBy      string
	UploadedAt      time.Time
	CreatedAt       time.Time
}

// FightPlayer is one participant row of a persisted fight, allies and
// enemies alike. Role is filled by the role resolver at ingest time, never
// by the decoder.
type FightPlayer struct {
	FightID    string
	Name       string
	Account    string
	Profession int
	EliteSpec  int
	Team       int
	Subgroup   int
	Ally       bool
	Role       string
	Stats      evtc.PlayerStats
	CreatedAt  time.Time
}

// Report is a fight with its participants, as served to clients.
type Report struct {
	Fight   Fight
	Allies  []FightPlayer
	Enemies []FightPlayer
}

// LinkedAccount ties an uploader to a verified game account.
type LinkedAccount struct {
	AccountName string
	DisplayName string
	World       int
	LinkedAt    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
