package squad_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/squad"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKeyPlayers(t *testing.T) {
	Convey("Given a key players export", t, func() {
		players := squad.KeyPlayers([]model.Record{
			{"player": "Tolisso", "pos": "MF", "Playing Time_Min": "1800", "rating": "6.9", "importance": "0.61"},
			{"player": "Lacazette", "pos": "FW", "Playing Time_Min": "2100.0", "rating": "7.4", "importance": "0.92"},
			{"player": "", "pos": "DF", "importance": "0.99"},
			{"player": "Caqueret", "pos": "MF", "Playing Time_Min": "", "rating": "n/a", "importance": "0.61"},
			{"player": "Riou", "pos": "GK"},
		})

		Convey("Then unnamed rows are dropped and the rest sorted by importance", func() {
			So(len(players), ShouldEqual, 4)
			So(players[0].Name, ShouldEqual, "Lacazette")
			So(players[0].Minutes, ShouldEqual, 2100)
			So(players[0].Rating, ShouldEqual, 7.4)
			So(players[1].Name, ShouldEqual, "Tolisso")
			So(players[2].Name, ShouldEqual, "Caqueret")
			So(players[3].Name, ShouldEqual, "Riou")
		})

		Convey("Then missing numbers read as zero", func() {
			So(players[2].Minutes, ShouldEqual, 0)
			So(players[2].Rating, ShouldEqual, 0)
			So(players[3].Importance, ShouldEqual, 0)
		})
	})

	Convey("Given no rows", t, func() {
		So(squad.KeyPlayers(nil), ShouldBeEmpty)
	})
}
