package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/touchline/internal/config"
	"github.com/okian/touchline/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const lineupsCSV = `match_key,player,pos,minutes_played
2324_2023-08-13 Lyon-Strasbourg,Lopes,GK,90
2324_2023-08-13 Lyon-Strasbourg,Lacazette,ST,90
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lineups.csv"), []byte(lineupsCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := config.New(context.Background())
	cfg.DataDir = dir
	cfg.Sources = map[string]string{config.SourceLineups: "lineups.csv"}
	return cfg
}

func TestLoadDotEnv(t *testing.T) {
	convey.Convey("Given dotenv files", t, func() {
		convey.Convey("When the file does not exist", func() {
			err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env"))

			convey.Convey("Then it is ignored", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file sets a variable", func() {
			path := filepath.Join(t.TempDir(), ".env")
			convey.So(os.WriteFile(path, []byte("TOUCHLINE_TEST_DOTENV=marseille\n"), 0o600), convey.ShouldBeNil)
			defer func() { _ = os.Unsetenv("TOUCHLINE_TEST_DOTENV") }()

			err := loadDotEnv(path)

			convey.Convey("Then the environment carries it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(os.Getenv("TOUCHLINE_TEST_DOTENV"), convey.ShouldEqual, "marseille")
			})
		})
	})
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given a config pointing at a single lineups file", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)

		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		mux := newMux(ctx, cfg, svc)

		convey.Convey("Then health and docs respond", func() {
			for _, path := range []string{"/healthz", "/openapi.yaml", "/api-docs"} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			}
		})

		convey.Convey("Then the loaded roster is served", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rosters", nil))
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

			var body map[string]any
			convey.So(json.Unmarshal(rec.Body.Bytes(), &body), convey.ShouldBeNil)
			convey.So(body["count"], convey.ShouldEqual, 1.0)
		})

		convey.Convey("Then the MCP endpoint is mounted at the configured path", func() {
			_, pattern := mux.Handler(httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{}")))
			convey.So(pattern, convey.ShouldEqual, "/mcp")
		})
	})

	convey.Convey("Given an empty MCP path", t, func() {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.MCPPath = ""
		svc := newService(cfg, logger.Get())

		convey.Convey("Then no MCP route is registered", func() {
			mux := newMux(ctx, cfg, svc)
			_, pattern := mux.Handler(httptest.NewRequest(http.MethodPost, "/mcp", nil))
			convey.So(pattern, convey.ShouldEqual, "")
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("Then the loop exits when the context is done", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given an unknown log format in the environment", t, func() {
		_ = os.Setenv("TOUCHLINE_LOG_FORMAT", "xml")
		defer func() { _ = os.Unsetenv("TOUCHLINE_LOG_FORMAT") }()

		convey.Convey("Then configuration loading fails", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}
