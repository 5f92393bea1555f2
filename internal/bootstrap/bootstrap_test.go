package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
	"github.com/honeycarbs/jobapply-gateway/pkg/shutdown"
)

func testConfig() config.Config {
	return config.Config{
		HTTP:           config.HTTP{Host: "127.0.0.1", Port: "0", AllowOrigins: []string{"*"}},
		TrackerTimeout: config.DefaultTrackerTimeout,
		Profile: config.Profile{
			Source:   config.SourceLinkedIn,
			LinkedIn: config.LinkedIn{Username: "me@example.com", Password: "pw"},
			JobPreferences: config.JobPreferences{
				ExperienceLevel: "Mid-Senior",
			},
		},
	}
}

func invoke(t *testing.T, h http.Handler, name string, params map[string]any) int {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"name": name, "parameters": params})
	req := httptest.NewRequest(http.MethodPost, "/mcp/v1/invoke", bytes.NewReader(body))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp.Code
}

func TestInitializeAppServesTools(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, cleanup, err := InitializeApp(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	h := app.Server.Handler()
	if code := invoke(t, h, "search_jobs", map[string]any{"title": "DevOps"}); code != http.StatusOK {
		t.Fatalf("search status %d", code)
	}
	if code := invoke(t, h, "apply_to_job", map[string]any{"job_id": "3123456789"}); code != http.StatusOK {
		t.Fatalf("apply status %d", code)
	}

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "ok" {
		t.Fatalf("healthz: %d %q", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !bytes.Contains(resp.Body.Bytes(), []byte(`tool_invocations_total{tool="apply_to_job",outcome="ok"} 1`)) {
		t.Fatalf("metrics missing apply counter:\n%s", resp.Body.String())
	}
}

func TestGeneratedProfileLeavesSourceUninitialized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.Generated = true

	app, cleanup, err := InitializeApp(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	defer cleanup()

	if code := invoke(t, app.Server.Handler(), "search_jobs", map[string]any{"title": "DevOps"}); code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a source, got %d", code)
	}
}

func TestMissingCredentialsLeaveSourceUninitialized(t *testing.T) {
	cfg := testConfig()
	cfg.Profile.LinkedIn.Password = ""
	if src := provideJobSource(cfg, logging.NewNop()); src != nil {
		t.Fatalf("expected nil source, got %s", src.Name())
	}

	cfg.Profile.Source = config.SourceAdzuna
	if src := provideJobSource(cfg, logging.NewNop()); src != nil {
		t.Fatalf("expected nil adzuna source without keys")
	}
}

func TestRunWaitsForShutdownTargets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app, _, err := InitializeApp(context.Background(), testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}

	var closed atomic.Bool
	slowCleanup := func() {
		time.Sleep(100 * time.Millisecond)
		closed.Store(true)
	}

	stopped := shutdown.Graceful([]os.Signal{syscall.SIGUSR2}, 2*time.Second, logging.NewNop(), app.Targets(slowCleanup)...)

	result := make(chan error, 1)
	go func() { result <- app.Run(stopped) }()

	time.Sleep(20 * time.Millisecond)
	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR2); err != nil {
		t.Fatalf("kill: %v", err)
	}

	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return after shutdown")
	}
	if !closed.Load() {
		t.Fatalf("Run returned before the tracker cleanup finished")
	}
}
