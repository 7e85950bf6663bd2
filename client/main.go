// Manual smoke-test client: walks every API endpoint against a running
// server and prints what comes back.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

var base = flag.String("base", "http://localhost:8000", "server base URL")

var httpClient = &http.Client{Timeout: 10 * time.Second}

func call(method, path string, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("Marshal failed: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, *base+path, reader)
	if err != nil {
		log.Fatalf("Request build failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Read body failed: %v", err)
	}

	log.Printf("%s %s -> %d %s", method, path, resp.StatusCode, data)
	return resp.StatusCode, data
}

func main() {
	flag.Parse()
	log.Printf("Smoke testing %s", *base)

	call("GET", "/api/", nil)
	call("GET", "/api/levels", nil)

	gameState := map[string]interface{}{
		"player_x":      400.0,
		"player_y":      500.0,
		"player_health": 3,
		"score":         1200,
		"current_level": 2,
		"enemies":       []map[string]interface{}{{"type": "drone", "x": 100.0, "y": 80.0}},
		"bullets":       []map[string]interface{}{{"x": 405.0, "y": 480.0}},
	}

	status, body := call("POST", "/api/game/save", map[string]interface{}{
		"game_name":  "smoke test run",
		"game_state": gameState,
	})
	if status != http.StatusOK {
		log.Fatalf("Save failed with status %d", status)
	}

	var saved struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &saved); err != nil {
		log.Fatalf("Unmarshal saved game failed: %v", err)
	}

	call("GET", "/api/game/saves", nil)
	call("GET", "/api/game/load/"+saved.ID, nil)
	call("DELETE", "/api/game/delete/"+saved.ID, nil)

	// Second load must 404 now.
	if status, _ := call("GET", "/api/game/load/"+saved.ID, nil); status != http.StatusNotFound {
		log.Fatalf("Expected 404 after delete, got %d", status)
	}

	call("POST", "/api/leaderboard", map[string]interface{}{
		"player_name":   "Ace",
		"score":         2500,
		"level_reached": 3,
	})
	call("GET", "/api/leaderboard?limit=5", nil)

	fmt.Println("Smoke test complete.")
}
