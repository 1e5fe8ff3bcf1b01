package tabular_test

import (
	"strings"
	"testing"

	"github.com/okian/touchline/internal/adapters/tabular"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given a lineup export", t, func() {
		text := "match_key,player,pos,minutes_played\n" +
			"2324_2023-08-13 Lyon-Strasbourg,Anthony Lopes,GK,90\n" +
			"2324_2023-08-13 Lyon-Strasbourg,\"Tagliafico, Nicolás\",\"DF,MF\",75\n" +
			"\n" +
			"2324_2023-08-13 Lyon-Strasbourg,Short Row\n"

		recs, err := tabular.Parse(strings.NewReader(text))

		Convey("Then each data row becomes a record keyed by header", func() {
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 3)
			So(recs[0]["player"], ShouldEqual, "Anthony Lopes")
			So(recs[0]["minutes_played"], ShouldEqual, "90")
		})

		Convey("Then quoted fields keep their commas", func() {
			So(recs[1]["player"], ShouldEqual, "Tagliafico, Nicolás")
			So(recs[1]["pos"], ShouldEqual, "DF,MF")
		})

		Convey("Then short rows get empty values", func() {
			So(recs[2]["pos"], ShouldEqual, "")
			So(recs[2]["minutes_played"], ShouldEqual, "")
		})
	})

	Convey("Given an empty document", t, func() {
		recs, err := tabular.ParseBytes([]byte("  \n"))

		Convey("Then there are no records and no error", func() {
			So(err, ShouldBeNil)
			So(recs, ShouldBeEmpty)
		})
	})

	Convey("Given a document with a byte order mark", t, func() {
		recs, err := tabular.ParseBytes([]byte("\xEF\xBB\xBFteam,points\nLyon,12\n"))

		Convey("Then the first header is clean", func() {
			So(err, ShouldBeNil)
			So(recs[0]["team"], ShouldEqual, "Lyon")
		})
	})
}
