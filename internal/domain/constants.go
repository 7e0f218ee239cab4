package domain

// Player defaults
const (
	DefaultPhase = 1
	MaxHealth    = 100
)

// Arena phase display
const (
	ArenaInitialMonstersPerPhase = 300
	ArenaMonsterIncreaseFactor   = 1.25
)

// Display symbol for the in-game currency
const CurrencySymbol = "DOOF"
