package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// CleanupDatabase truncates all test tables.
func CleanupDatabase(t *testing.T, db *database.DB) {
	t.Helper()

	tables := []string{
		"backtest_records",
		"calibration_records",
		"simulation_batches",
		"market_lines",
		"games",
		"team_week_stats",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, table := range tables {
		_, err := db.Pool().Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Logf("Warning: failed to truncate table %s: %v", table, err)
		}
	}
}

// LoadFixture loads test data from a JSON fixture file.
func LoadFixture(t *testing.T, filename string, target interface{}) {
	t.Helper()

	fixturePath := filepath.Join("test", "fixtures", filename)
	data, err := os.ReadFile(fixturePath)
	require.NoError(t, err, "failed to read fixture file: %s", filename)

	err = json.Unmarshal(data, target)
	require.NoError(t, err, "failed to unmarshal fixture: %s", filename)
}

// MockStatsFeedServer creates a mock HTTP server for stats feed testing.
// It serves one week of team stats, lines, and results and returns 404
// for any other path the way the real feed does for unplayed weeks.
func MockStatsFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/seasons/2025/weeks/1/team-stats":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"team_id":          "KC",
					"season":           2025,
					"week":             1,
					"off_epa_per_play": 0.12,
					"def_epa_per_play": -0.04,
					"off_success_rate": 0.47,
					"def_success_rate": 0.41,
					"giveaway_rate":    0.10,
					"takeaway_rate":    0.13,
					"red_zone_td_rate": 0.62,
					"field_goal_pct":   0.88,
					"seconds_per_play": 27.5,
					"pass_rate":        0.61,
				},
			})

		case "/seasons/2025/weeks/1/lines":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"season":    2025,
					"week":      1,
					"home_team": "KC",
					"away_team": "BUF",
					"spread":    "-2.5",
					"total":     "48.5",
				},
			})

		case "/seasons/2025/weeks/1/results":
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode([]map[string]interface{}{
				{
					"season":     2025,
					"week":       1,
					"home_team":  "KC",
					"away_team":  "BUF",
					"home_score": 27,
					"away_score": 24,
					"kickoff_at": time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
				},
			})

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	return httptest.NewServer(handler)
}

// WaitForCondition waits for a condition to become true or times out.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool, message string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	require.Fail(t, "condition not met within timeout", message)
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
