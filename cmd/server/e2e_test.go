package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
	"github.com/wadjakorntonsri/go-click-counter/pkg/core/services"
)

func TestIntegration(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	// 1. Setup DB (modernc sqlite supports shared in-memory databases)
	dbURL := "file:memdb1?mode=memory&cache=shared"
	repo, err := sqlite.NewSQLiteRepository(dbURL)
	if err != nil {
		t.Fatalf("Failed to init db: %v", err)
	}
	defer repo.Close()

	// 2. Setup Service with a fixed clock so events without ts land on a known day
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	service := services.NewClickService(repo, services.WithClock(func() time.Time { return now }))

	// 3. Setup Router
	cfg := &config.Config{StatsToken: "e2e-token"}
	server := httptest.NewServer(handler.NewRouter(cfg, service, nil))
	defer server.Close()

	client := server.Client()
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	// TEST 1: Log clicks
	events := []map[string]interface{}{
		{"ad_id": "a1", "genre": "Dev/Tools", "page_id": "p1"},
		{"ad_id": "a1", "ts": today + "T01:02:03Z"},
		{"ad_id": "b2", "ts": yesterday + "T23:59:59Z"},
		{"ad_id": "b2", "ts": "2001-01-01T00:00:00Z"},
	}
	for _, ev := range events {
		body, _ := json.Marshal(ev)
		resp, err := client.Post(server.URL+"/log", "application/json", bytes.NewBuffer(body))
		if err != nil {
			t.Fatalf("Failed JSON POST: %v", err)
		}
		got, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || string(got) != "ok" {
			t.Errorf("Log expected 200 ok, got %d %q", resp.StatusCode, got)
		}
	}

	// TEST 2: Rejected payloads
	resp, err := client.Post(server.URL+"/log", "application/json", bytes.NewBufferString("{nope"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Bad json expected 400, got %d", resp.StatusCode)
	}

	// TEST 3: Stats requires the token
	resp, err = client.Get(server.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Stats without token expected 401, got %d", resp.StatusCode)
	}

	// TEST 4: Stats over two days
	req, _ := http.NewRequest(http.MethodGet, server.URL+"/stats?days=2", nil)
	req.Header.Set("Authorization", "Bearer e2e-token")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Stats expected 200, got %d: %s", resp.StatusCode, string(body))
	}

	var stats struct {
		Days   int              `json:"days"`
		ByAdID map[string]int64 `json:"by_ad_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Days != 2 {
		t.Errorf("Expected days=2, got %d", stats.Days)
	}
	if stats.ByAdID["a1"] != 2 || stats.ByAdID["b2"] != 1 {
		t.Errorf("Unexpected totals: %v", stats.ByAdID)
	}

	// TEST 5: Unknown route
	resp, err = client.Get(server.URL + "/log")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /log expected 404, got %d", resp.StatusCode)
	}
}
