package performancetrend

type Direction string

const (
	DirectionUp     Direction = "UP"
	DirectionDown   Direction = "DOWN"
	DirectionStable Direction = "STABLE"
)

// Trend classifies a team's short-term form from its most recent games,
// comparing the newer half of the sample window against the older half.
type Trend struct {
	LeagueID        string
	TeamID          string
	Direction       Direction
	Strength        float64
	SampleSize      int
	RecentAvgPoints float64
	PriorAvgPoints  float64
	RecentWinRatio  float64
	PriorWinRatio   float64
}
