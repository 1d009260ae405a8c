package alltimerecord

// Type identifies one independent extremal metric. Each type is a separate
// row keyed by (league, type, holder type), never a combined blob.
type Type string

const (
	TypeHighestSingleGameScore Type = "HIGHEST_SINGLE_GAME_SCORE"
	TypeLongestWinStreak       Type = "LONGEST_WIN_STREAK"
	TypeMostPointsSeason       Type = "MOST_POINTS_SEASON"
)

type HolderType string

const HolderTeam HolderType = "TEAM"

type Record struct {
	LeagueID    string
	RecordType  Type
	HolderType  HolderType
	HolderID    string
	Value       float64
	Season      string
	Week        int
	Description string
}
