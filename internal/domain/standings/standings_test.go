package standings_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a standings export with home and away columns", t, func() {
		recs := []model.Record{
			{"Rank": "2", "Team": "Lyon", "MP": "10", "W": "6", "D": "2", "L": "2", "GF": "18", "GA": "9", "Pts": "20",
				"home_matches": "5", "home_wins": "4", "home_points": "13", "home_goals_for": "10", "home_goals_against": "3", "home_rank": "1"},
			{"Rank": "1", "Team": "Paris S-G", "MP": "10", "W": "8", "D": "1", "L": "1", "GF": "25", "GA": "8", "Pts": "25",
				"away_matches": "5", "away_points": "12"},
			{"Rank": "", "Team": "Trophée des Champions (Choc)", "MP": "1", "Pts": "3"},
			{"Rank": "", "Team": "Nice", "MP": "0", "Pts": ""},
		}
		tbl := standings.Parse(recs, standings.DefaultExclude)

		Convey("Then the general view is sorted by rank with excluded rows dropped", func() {
			So(len(tbl.General), ShouldEqual, 3)
			So(tbl.General[0].Team, ShouldEqual, "Paris S-G")
			So(tbl.General[1].Team, ShouldEqual, "Lyon")
			So(tbl.General[2].Team, ShouldEqual, "Nice")
			So(tbl.General[2].Rank, ShouldEqual, 3)
		})

		Convey("Then venue views only hold rows that carry their columns", func() {
			So(len(tbl.Home), ShouldEqual, 1)
			So(tbl.Home[0].Team, ShouldEqual, "Lyon")
			So(tbl.Home[0].Points, ShouldEqual, 13)
			So(len(tbl.Away), ShouldEqual, 1)
			So(tbl.View(standings.Away)[0].Team, ShouldEqual, "Paris S-G")
		})

		Convey("Then derived ratios are computed and safe on zero matches", func() {
			lyon, ok := tbl.Find(standings.General, " lyon ")
			So(ok, ShouldBeTrue)
			So(lyon.GoalDifference(), ShouldEqual, 9)
			So(lyon.PointsPerMatch(), ShouldEqual, 2)
			So(lyon.WinRate(), ShouldEqual, 60)
			So(lyon.GoalsForPerMatch(), ShouldEqual, 1.8)
			So(lyon.GoalsAgainstPerMatch(), ShouldEqual, 0.9)

			nice, _ := tbl.Find(standings.General, "Nice")
			So(nice.PointsPerMatch(), ShouldEqual, 0)
			So(nice.WinRate(), ShouldEqual, 0)
		})
	})

	Convey("Given no rows", t, func() {
		tbl := standings.Parse(nil, nil)

		Convey("Then the table is empty", func() {
			So(tbl.Empty(), ShouldBeTrue)
			_, ok := tbl.Find(standings.General, "Lyon")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestParseView(t *testing.T) {
	Convey("Given view names", t, func() {
		v, ok := standings.ParseView("")
		So(ok, ShouldBeTrue)
		So(v, ShouldEqual, standings.General)
		v, _ = standings.ParseView("HOME")
		So(v, ShouldEqual, standings.Home)
		_, ok = standings.ParseView("neutral")
		So(ok, ShouldBeFalse)
	})
}
