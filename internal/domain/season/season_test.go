package season_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/season"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given a cleaned summary", t, func() {
		s := season.Summarize([]model.Record{
			{"result": "W", "points": "3", "match_rating": "4.0"},
			{"result": "d", "points": "1", "match_rating": "3.0"},
			{"result": "L", "points": "0", "match_rating": ""},
			{"result": "", "points": "n/a", "match_rating": "2"},
		})

		Convey("Then results, points and the average rating are totalled", func() {
			So(s.Matches, ShouldEqual, 4)
			So(s.Wins, ShouldEqual, 1)
			So(s.Draws, ShouldEqual, 1)
			So(s.Losses, ShouldEqual, 1)
			So(s.Points, ShouldEqual, 4)
			So(s.AverageRating, ShouldEqual, 2.25)
		})
	})

	Convey("Given no rows", t, func() {
		So(season.Summarize(nil), ShouldResemble, season.Summary{})
	})
}
