package matchkey_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given a normalizer for Lyon", t, func() {
		n := matchkey.New("Lyon", "Olympique Lyonnais")

		Convey("When the club is the left operand", func() {
			res, ok := n.Normalize("2324_2023-08-13 Lyon-Strasbourg")

			Convey("Then the fixture is a home match against the right operand", func() {
				So(ok, ShouldBeTrue)
				So(res.Venue, ShouldEqual, model.VenueHome)
				So(res.Date, ShouldEqual, "2023-08-13")
				So(res.Opponent, ShouldEqual, "Strasbourg")
				So(res.Key, ShouldNotBeNil)
				So(res.Key.String(), ShouldEqual, "2023-08-13_strasbourg")
				So(res.Label, ShouldEqual, "13/08/2023 · Lyon vs Strasbourg")
			})
		})

		Convey("When the club is the right operand", func() {
			res, ok := n.Normalize("2324_2023-09-03 Paris S-G-Lyon")

			Convey("Then the fixture is an away match and hyphenated names survive", func() {
				So(ok, ShouldBeTrue)
				So(res.Venue, ShouldEqual, model.VenueAway)
				So(res.Opponent, ShouldEqual, "Paris S-G")
				So(res.Key.Opponent, ShouldEqual, "paris s-g")
				So(res.Label, ShouldEqual, "03/09/2023 · Paris S-G vs Lyon")
			})
		})

		Convey("When the club is written with different case or an alias", func() {
			home, _ := n.Normalize("2324_2023-10-01 LYON-Nice")
			away, _ := n.Normalize("2324_2023-10-08 Lens-Olympique Lyonnais")

			Convey("Then attribution still succeeds", func() {
				So(home.Venue, ShouldEqual, model.VenueHome)
				So(away.Venue, ShouldEqual, model.VenueAway)
				So(away.Key.Opponent, ShouldEqual, "lens")
			})
		})

		Convey("When the input is empty", func() {
			_, ok := n.Normalize("   ")

			Convey("Then there is no match identity", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the key has no space separator", func() {
			res, ok := n.Normalize("2324_2023-08-13")

			Convey("Then a degenerate key carrying the raw string is returned", func() {
				So(ok, ShouldBeTrue)
				So(res.Key, ShouldBeNil)
				So(res.LookupKey(), ShouldEqual, "2324_2023-08-13")
				So(res.Label, ShouldEqual, "2324_2023-08-13")
			})
		})

		Convey("When neither side is the club", func() {
			res, ok := n.Normalize("2324_2023-08-13 Nice-Monaco")

			Convey("Then the fixture is unattributed", func() {
				So(ok, ShouldBeTrue)
				So(res.Key, ShouldBeNil)
				So(res.Venue, ShouldEqual, model.VenueUnknown)
				So(res.LookupKey(), ShouldEqual, "2324_2023-08-13 Nice-Monaco")
			})
		})

		Convey("When the fixture references the club on both sides", func() {
			res, _ := n.Normalize("2324_2023-08-13 Lyon-Lyon")

			Convey("Then no match key is derived", func() {
				So(res.Key, ShouldBeNil)
				So(res.Venue, ShouldEqual, model.VenueUnknown)
			})
		})

		Convey("When the key uses the secondary dialect without a season prefix", func() {
			res, _ := n.Normalize("2023-08-13 Lyon-Strasbourg")

			Convey("Then it resolves to the same match key as the primary dialect", func() {
				primary, _ := n.Normalize("2324_2023-08-13 Lyon-Strasbourg")
				So(*res.Key, ShouldResemble, *primary.Key)
			})
		})
	})
}

func TestVenueProperty(t *testing.T) {
	Convey("Given many opponents", t, func() {
		n := matchkey.New("Lyon")
		opponents := []string{"Nice", "Marseille", "Saint-Étienne", "Clermont Foot", "Le Havre"}

		Convey("Then Club-Opponent is always Home and Opponent-Club always Away", func() {
			for _, opp := range opponents {
				h, _ := n.Normalize("2324_2024-01-01 Lyon-" + opp)
				a, _ := n.Normalize("2324_2024-01-01 " + opp + "-Lyon")
				So(h.Venue, ShouldEqual, model.VenueHome)
				So(a.Venue, ShouldEqual, model.VenueAway)
				So(h.Key.Opponent, ShouldEqual, a.Key.Opponent)
			}
		})
	})
}

func TestKeyFromColumns(t *testing.T) {
	Convey("Given explicit date and opponent columns", t, func() {
		n := matchkey.New("Lyon")

		Convey("Then whitespace and case do not change the key", func() {
			k, ok := n.Key("2023-08-13", "  Strasbourg ")
			So(ok, ShouldBeTrue)
			So(k.String(), ShouldEqual, "2023-08-13_strasbourg")
		})

		Convey("Then timestamps are cut to the calendar date", func() {
			k, ok := n.Key("2023-08-13 21:00:00", "Nice")
			So(ok, ShouldBeTrue)
			So(k.Date, ShouldEqual, "2023-08-13")
		})

		Convey("Then self references are filtered", func() {
			_, ok := n.Key("2023-08-13", "lyon")
			So(ok, ShouldBeFalse)
		})

		Convey("Then a missing date is rejected", func() {
			_, ok := n.Key("", "Nice")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestContainsClub(t *testing.T) {
	Convey("Given a club with long and short aliases", t, func() {
		n := matchkey.New("Lyon", "Olympique Lyonnais", "OL")

		Convey("Then the club name matches inside longer names", func() {
			So(n.ContainsClub("Olympique Lyonnais"), ShouldBeTrue)
			So(n.ContainsClub("AS Lyon-Duchère"), ShouldBeTrue)
		})

		Convey("Then aliases only match whole words", func() {
			So(n.ContainsClub("OL"), ShouldBeTrue)
			So(n.ContainsClub("OL Reign"), ShouldBeTrue)
			So(n.ContainsClub("Olympique de Marseille"), ShouldBeFalse)
			So(n.ContainsClub("Nice"), ShouldBeFalse)
			So(n.ContainsClub(""), ShouldBeFalse)
		})
	})
}

func TestFormatDate(t *testing.T) {
	Convey("Given date strings", t, func() {
		So(matchkey.FormatDate("2024-02-29"), ShouldEqual, "29/02/2024")
		So(matchkey.FormatDate("not a date"), ShouldEqual, "not a date")
		So(matchkey.CalendarDate("2023-08-13_lyon"), ShouldEqual, "2023-08-13")
	})
}
