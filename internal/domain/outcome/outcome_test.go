package outcome_test

import (
	"testing"

	"github.com/okian/touchline/internal/domain/matchkey"
	"github.com/okian/touchline/internal/domain/model"
	"github.com/okian/touchline/internal/domain/outcome"
	"github.com/okian/touchline/internal/domain/standings"
	. "github.com/smartystreets/goconvey/convey"
)

func table() standings.Table {
	return standings.Parse([]model.Record{
		{"rank": "3", "team": "Lyon", "matches": "10", "points": "18", "goals_for": "15", "goals_against": "10"},
		{"rank": "3", "team": "Nice", "matches": "10", "points": "18", "goals_for": "12", "goals_against": "8"},
		{"rank": "1", "team": "Marseille", "matches": "10", "points": "30", "goals_for": "20", "goals_against": "6"},
		{"rank": "9", "team": "Lens", "matches": "10", "points": "12", "goals_for": "9", "goals_against": "14",
			"home_rank": "2", "home_matches": "5", "home_points": "12", "home_goals_for": "8", "home_goals_against": "2"},
	}, nil)
}

func simulation() []model.Record {
	return []model.Record{
		{"opponent": "Marseille", "venue": "Home", "proba_win": "72", "ol_gf": "2", "opp_gf": "1", "h2h_bonus": "3.5", "rivalry_penalty": "-2", "injury_penalty": ""},
		{"opponent": "Nice", "venue": "home", "proba_win": "0.4", "ol_gf": "1.2", "opp_gf": "1.4"},
	}
}

func externalModel() []model.Record {
	return []model.Record{
		{"home_team": "Olympique Lyonnais", "away_team": "nice", "proba_home_win": "1.7"},
		{"home_team": "Lyon", "away_team": "nice", "proba_home_win": "0.55"},
		{"home_team": "Lyon", "away_team": "nice", "proba_home_win": "0.9"},
		{"home_team": "Nice", "away_team": "Lyon", "proba_home_win": "0.8"},
	}
}

func TestBaseline(t *testing.T) {
	Convey("Given a club and opponent level on rank and form", t, func() {
		b := outcome.New(matchkey.New("Lyon"), table(), nil, nil)

		Convey("When playing at home", func() {
			est := b.Estimate("Nice", model.VenueHome)

			Convey("Then the baseline is 50 plus the home bonus", func() {
				So(est.WinProbability, ShouldEqual, 60)
				So(est.WinPercent, ShouldEqual, 60)
				So(est.Source, ShouldEqual, model.SourceHeuristic)
				So(est.Adjustments, ShouldBeEmpty)
			})

			Convey("Then expected goals average attack and concede rates", func() {
				So(est.ExpectedFor, ShouldAlmostEqual, 1.15, 1e-9)
				So(est.ExpectedAgainst, ShouldAlmostEqual, 1.1, 1e-9)
				So(est.ScoreFor, ShouldEqual, 1)
				So(est.ScoreAgainst, ShouldEqual, 1)
			})
		})

		Convey("When playing away", func() {
			est := b.Estimate("Nice", model.VenueAway)

			Convey("Then the away shift applies", func() {
				So(est.WinProbability, ShouldEqual, 40)
			})
		})
	})

	Convey("Given a much weaker club", t, func() {
		b := outcome.New(matchkey.New("Lens"), table(), nil, nil)
		est := b.Estimate("Marseille", model.VenueAway)

		Convey("Then the probability is clamped to the lower bound", func() {
			So(est.WinProbability, ShouldEqual, 5)
		})
	})

	Convey("Given venue specific standings", t, func() {
		b := outcome.New(matchkey.New("Lens"), table(), nil, nil)
		est := b.Estimate("Lyon", model.VenueHome)

		Convey("Then the home table is used for the club", func() {
			// 50 + 10 + 1.5*(3-2) + 15*(12/5 - 18/10)
			So(est.WinProbability, ShouldAlmostEqual, 70.5, 1e-9)
		})
	})

	Convey("Given custom weights", t, func() {
		b := outcome.New(matchkey.New("Lyon"), table(), nil, nil,
			outcome.WithWeights(0, 0), outcome.WithVenueAdjustments(5, -5))
		est := b.Estimate("Marseille", model.VenueHome)

		Convey("Then only the venue shift remains", func() {
			So(est.WinProbability, ShouldEqual, 55)
		})
	})
}

func TestOverrides(t *testing.T) {
	Convey("Given simulation and model tables", t, func() {
		b := outcome.New(matchkey.New("Lyon"), table(), simulation(), externalModel())

		Convey("When a simulation row matches", func() {
			est := b.Estimate("Marseille", model.VenueHome)

			Convey("Then it replaces probability and score and adds adjustments", func() {
				So(est.WinProbability, ShouldEqual, 72)
				So(est.ScoreFor, ShouldEqual, 2)
				So(est.ScoreAgainst, ShouldEqual, 1)
				So(est.Source, ShouldEqual, model.SourceSimulation)
				So(est.Adjustments, ShouldResemble, []model.Adjustment{
					{Name: "h2h_bonus", Value: 3.5},
					{Name: "rivalry_penalty", Value: -2},
				})
			})
		})

		Convey("When the simulation venue differs", func() {
			est := b.Estimate("Marseille", model.VenueAway)

			Convey("Then the heuristic stands", func() {
				So(est.Source, ShouldEqual, model.SourceHeuristic)
			})
		})

		Convey("When the model has a valid home row", func() {
			est := b.Estimate("Nice", model.VenueHome)

			Convey("Then only the probability is overridden by the first valid row", func() {
				So(est.WinProbability, ShouldAlmostEqual, 55, 1e-9)
				So(est.WinPercent, ShouldEqual, 55)
				So(est.Source, ShouldEqual, model.SourceModel)
				So(est.ExpectedFor, ShouldEqual, 1.2)
				So(est.ScoreAgainst, ShouldEqual, 1)
			})
		})

		Convey("When the club plays away", func() {
			est := b.Estimate("Nice", model.VenueAway)

			Convey("Then the model is ignored", func() {
				So(est.Source, ShouldNotEqual, model.SourceModel)
			})
		})
	})
}

func TestModelClubMatching(t *testing.T) {
	Convey("Given the club with a short alias and a model row for another club", t, func() {
		club := matchkey.New("Lyon", "Olympique Lyonnais", "OL")
		rows := []model.Record{
			{"home_team": "Olympique de Marseille", "away_team": "Nice", "proba_home_win": "0.9"},
		}
		b := outcome.New(club, table(), nil, rows)

		Convey("Then the row does not override the club's estimate", func() {
			est := b.Estimate("Nice", model.VenueHome)
			So(est.Source, ShouldEqual, model.SourceHeuristic)
			So(est.WinPercent, ShouldEqual, 60)
		})

		Convey("Then a row naming the club by its alias still applies", func() {
			rows = append(rows, model.Record{"home_team": "OL", "away_team": "Nice", "proba_home_win": "0.7"})
			est := outcome.New(club, table(), nil, rows).Estimate("Nice", model.VenueHome)
			So(est.Source, ShouldEqual, model.SourceModel)
			So(est.WinPercent, ShouldEqual, 70)
		})
	})
}

func TestEmptyInputs(t *testing.T) {
	Convey("Given no data at all", t, func() {
		b := outcome.New(matchkey.New("Lyon"), standings.Table{}, nil, nil)

		Convey("Then a bounded estimate is still returned", func() {
			for _, v := range []model.Venue{model.VenueHome, model.VenueAway, model.VenueUnknown} {
				est := b.Estimate("", v)
				So(est.WinProbability, ShouldBeBetweenOrEqual, 5, 95)
				So(est.ScoreFor, ShouldEqual, 0)
			}
			So(b.Estimate("Nice", model.VenueUnknown).WinProbability, ShouldEqual, 50)
		})
	})
}
