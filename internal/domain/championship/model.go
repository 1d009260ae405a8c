package championship

// Record captures the outcome of one season's championship game.
type Record struct {
	LeagueID          string
	Season            string
	ChampionID        string
	RunnerUpID        string
	ChampionshipScore float64
	RunnerUpScore     float64
}
