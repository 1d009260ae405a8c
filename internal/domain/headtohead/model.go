package headtohead

// Record is the all-time aggregate for one unordered team pair. The pair is
// stored canonically with Team1ID < Team2ID so a matchup and its mirror row
// land on the same key.
type Record struct {
	LeagueID          string
	Team1ID           string
	Team2ID           string
	Team1Wins         int
	Team2Wins         int
	Ties              int
	Team1Points       float64
	Team2Points       float64
	PlayoffGames      int
	ChampionshipGames int
}

// CanonicalPair orders two team ids lexicographically. The returned bool
// reports whether the input was swapped to reach canonical order.
func CanonicalPair(a, b string) (string, string, bool) {
	if a <= b {
		return a, b, false
	}
	return b, a, true
}
