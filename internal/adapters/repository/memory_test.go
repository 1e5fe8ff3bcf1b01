package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/touchline/internal/adapters/repository"
	"github.com/okian/touchline/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshot(id string, keys ...string) *repository.Snapshot {
	s := &repository.Snapshot{CycleID: id, LoadedAt: time.Unix(1700000000, 0)}
	for _, k := range keys {
		s.Rosters = append(s.Rosters, model.Roster{
			Key:     k,
			Players: []model.PlayerEntry{{Name: "Lopes", Position: "GK"}, {Name: "Tolisso", Position: "CM"}},
		})
	}
	return s
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore(repository.WithHistory(2))

		Convey("Then reads are empty and lookups miss", func() {
			So(store.Current(ctx), ShouldBeNil)
			So(store.Count(ctx), ShouldEqual, 0)
			So(store.Current(ctx).Empty(), ShouldBeTrue)
			_, err := store.Roster(ctx, "2024-08-18 Lyon vs Rennes")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(store.Publish(ctx, nil), repository.ErrNilSnapshot), ShouldBeTrue)
		})

		Convey("When a snapshot is published", func() {
			So(store.Publish(ctx, snapshot("c1", "a", "b")), ShouldBeNil)

			Convey("Then rosters are found by key", func() {
				So(store.Count(ctx), ShouldEqual, 2)
				r, err := store.Roster(ctx, "b")
				So(err, ShouldBeNil)
				So(r.Key, ShouldEqual, "b")
				So(store.Current(ctx).Players(), ShouldEqual, 4)
			})

			Convey("Then callers cannot mutate the published rosters", func() {
				r, err := store.Roster(ctx, "a")
				So(err, ShouldBeNil)
				r.Players[0].Name = "Riou"
				r.Players = append(r.Players, model.PlayerEntry{Name: "Matic"})

				all := store.Rosters(ctx)
				all[1].Players[1].Minutes = 90
				all[0].Key = "z"

				again, _ := store.Roster(ctx, "a")
				So(again.Players[0].Name, ShouldEqual, "Lopes")
				So(len(again.Players), ShouldEqual, 2)
				So(store.Current(ctx).Rosters[1].Players[1].Minutes, ShouldEqual, 0)
				So(store.Rosters(ctx)[0].Key, ShouldEqual, "a")
			})

			Convey("Then a later publish replaces it as a whole", func() {
				So(store.Publish(ctx, snapshot("c2", "c")), ShouldBeNil)
				So(store.Publish(ctx, snapshot("c3")), ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 0)
				So(store.Current(ctx).CycleID, ShouldEqual, "c3")
				So(store.History(), ShouldResemble, []string{"c2", "c3"})
			})
		})
	})
}

func TestMemoryStore_ConcurrentReaders(t *testing.T) {
	Convey("Given readers racing a publisher", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()
		So(store.Publish(ctx, snapshot("seed", "k0", "k1")), ShouldBeNil)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			partial int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 200; j++ {
					s := store.Current(ctx)
					// every published snapshot has exactly two rosters
					if len(s.Rosters) != 2 {
						mu.Lock()
						partial++
						mu.Unlock()
					}
				}
			}()
		}
		for i := 0; i < 50; i++ {
			_ = store.Publish(ctx, snapshot(fmt.Sprintf("c%d", i), "x", "y"))
		}
		wg.Wait()

		Convey("Then no reader ever sees a partial cycle", func() {
			So(partial, ShouldEqual, 0)
			So(store.Current(ctx).CycleID, ShouldEqual, "c49")
		})
	})
}
