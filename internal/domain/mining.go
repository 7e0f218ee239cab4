package domain

// MiningSession is the payload of /api/mining/status and the "session" field
// of the start/stop responses.
type MiningSession struct {
	IsMining        bool       `json:"is_mining"`
	StartTime       *Timestamp `json:"start_time"`
	EndTime         *Timestamp `json:"end_time"`
	DurationMinutes int        `json:"duration_minutes"`
	EstimatedReward Decimal    `json:"estimated_reward"`
}

// Active reports whether the session is mining and has a deadline to count
// down to.
func (s *MiningSession) Active() bool {
	return s != nil && s.IsMining && s.EndTime != nil
}

// MiningStats is the payload of /api/mining/statistics.
type MiningStats struct {
	TotalSessions     int     `json:"total_sessions"`
	TotalMined        Decimal `json:"total_mined"`
	TotalTimeMinutes  int     `json:"total_time_minutes"`
	AveragePerSession Decimal `json:"average_per_session"`
}

// SessionsPerMiningLevel is how many finished sessions advance the mining level.
const SessionsPerMiningLevel = 10

// Level is the cosmetic mining level derived from finished sessions.
func (s *MiningStats) Level() int {
	if s == nil {
		return 1
	}
	return s.TotalSessions/SessionsPerMiningLevel + 1
}

// LevelProgress returns sessions completed towards the next level.
func (s *MiningStats) LevelProgress() int {
	if s == nil {
		return 0
	}
	return s.TotalSessions % SessionsPerMiningLevel
}

// MiningReward is the "reward" field of the stop response.
type MiningReward struct {
	Amount Decimal `json:"amount"`
}
