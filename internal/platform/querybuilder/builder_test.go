package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Run("where and order by", func(t *testing.T) {
		sql, args, err := Select("*").
			From("weekly_results").
			Where(Eq("league_id", "lg"), Eq("season", "2024")).
			OrderBy("week ASC").
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL() error = %v", err)
		}

		want := "SELECT * FROM weekly_results WHERE league_id = $1 AND season = $2 ORDER BY week ASC"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if !reflect.DeepEqual(args, []any{"lg", "2024"}) {
			t.Errorf("args = %v, want [lg 2024]", args)
		}
	})

	t.Run("in condition", func(t *testing.T) {
		sql, args, err := Select("team_id").
			From("season_statistics").
			Where(In("season", []any{"2023", "2024"})).
			Limit(10).
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL() error = %v", err)
		}

		want := "SELECT team_id FROM season_statistics WHERE season IN ($1, $2) LIMIT 10"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 2 {
			t.Errorf("args = %v, want 2 values", args)
		}
	})

	t.Run("empty in never matches", func(t *testing.T) {
		sql, _, err := Select("*").From("t").Where(In("season", nil)).ToSQL()
		if err != nil {
			t.Fatalf("ToSQL() error = %v", err)
		}
		if sql != "SELECT * FROM t WHERE 1=0" {
			t.Errorf("sql = %q", sql)
		}
	})

	t.Run("missing table fails", func(t *testing.T) {
		if _, _, err := Select("*").ToSQL(); err == nil {
			t.Fatal("ToSQL() without table succeeded")
		}
	})
}

func TestInsertBuilder(t *testing.T) {
	t.Run("multi row with suffix", func(t *testing.T) {
		sql, args, err := InsertInto("championship_records").
			Columns("league_id", "season", "champion_id").
			Values("lg", "2023", "cobras").
			Values("lg", "2024", "ants").
			Suffix("ON CONFLICT (league_id, season) DO NOTHING").
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL() error = %v", err)
		}

		want := "INSERT INTO championship_records (league_id, season, champion_id) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (league_id, season) DO NOTHING"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
		if len(args) != 6 {
			t.Errorf("args = %v, want 6 values", args)
		}
	})

	t.Run("column count mismatch fails", func(t *testing.T) {
		_, _, err := InsertInto("t").Columns("a", "b").Values("only-one").ToSQL()
		if err == nil {
			t.Fatal("ToSQL() with short row succeeded")
		}
	})
}

func TestInsertModel(t *testing.T) {
	type row struct {
		LeagueID string  `db:"league_id"`
		TeamID   string  `db:"team_id"`
		Wins     int     `db:"wins"`
		Ratio    float64 `db:"-"`
		Note     string
	}

	sql, args, err := InsertModel("season_statistics", row{LeagueID: "lg", TeamID: "ants", Wins: 3}, "")
	if err != nil {
		t.Fatalf("InsertModel() error = %v", err)
	}

	want := "INSERT INTO season_statistics (league_id, team_id, wins) VALUES ($1, $2, $3)"
	if sql != want {
		t.Errorf("sql = %q, want %q", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"lg", "ants", 3}) {
		t.Errorf("args = %v", args)
	}

	if _, _, err := InsertModel("t", (*row)(nil), ""); err == nil {
		t.Fatal("InsertModel() with nil pointer succeeded")
	}
}
