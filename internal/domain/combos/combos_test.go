package combos_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/combos"
	"github.com/okian/touchline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBestBySize(t *testing.T) {
	Convey("Given combinations of several sizes", t, func() {
		best := combos.BestBySize([]model.Record{
			{"combo": "Lopes|Lovren|Mata", "size": "3", "matches": "12", "avg_points": "1.9", "avg_score_final": "0.8"},
			{"combo": "Tolisso|Cherki|Lacazette", "size": "3", "matches": "8", "avg_points": "2.1", "avg_score_final": "1.1"},
			{"combo": "Tolisso|Cherki|Nuamah", "size": "3", "matches": "6", "avg_points": "2.1", "avg_score_final": "1.4"},
			{"players": "Cherki|Lacazette", "combo_size": "2", "matches": "20", "avg_points": "1.7", "avg_score": "0.5"},
			{"combo": "Lacazette", "size": "1", "avg_points": "3"},
			{"combo": "", "size": "4", "avg_points": "3"},
			{"combo": "Everyone", "size": "12", "avg_points": "3"},
		})

		Convey("Then each size keeps its best row in ascending size order", func() {
			So(len(best), ShouldEqual, 2)
			So(best[0].Size, ShouldEqual, 2)
			So(best[0].Combo.Players, ShouldEqual, "Cherki|Lacazette")
			So(best[0].Combo.AvgScore, ShouldEqual, 0.5)
			So(best[1].Size, ShouldEqual, 3)
		})

		Convey("Then average score breaks an average points tie", func() {
			So(best[1].Combo.Players, ShouldEqual, "Tolisso|Cherki|Nuamah")
			So(best[1].Combo.Matches, ShouldEqual, 6)
		})
	})

	Convey("Given a full tie", t, func() {
		best := combos.BestBySize([]model.Record{
			{"combo": "A|B", "size": "2", "avg_points": "2", "avg_score_final": "1"},
			{"combo": "C|D", "size": "2", "avg_points": "2", "avg_score_final": "1"},
		})

		Convey("Then the earlier row wins", func() {
			So(best[0].Combo.Players, ShouldEqual, "A|B")
		})
	})

	Convey("Given no rows", t, func() {
		So(combos.BestBySize(nil), ShouldBeEmpty)
	})
}
