package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8081" // e2e окружение
	rps        = 5
	duration   = 3 * time.Minute
)

type FeatureRow struct {
	Feature        string `json:"feature"`
	ScreenFunction string `json:"screen_function"`
	InCharge       string `json:"in_charge"`
}

type ProjectCreateRequest struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
}

var (
	projects []string
	httpc    = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any) (int, []byte, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: creating projects with feature registries...")

	for p := 1; p <= 20; p++ {
		reqBody := ProjectCreateRequest{
			GroupID: fmt.Sprintf("group-%02d", p),
			Name:    fmt.Sprintf("Project %02d", p),
		}

		status, raw, err := postJSON(targetHost+"/api/projects", reqBody)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN projects returned %d\n", status)
			continue
		}

		var created struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &created); err != nil || created.ID == "" {
			log.Printf("WARN cannot parse created project: %v\n", err)
			continue
		}

		var rows []FeatureRow
		for f := 1; f <= 10; f++ {
			rows = append(rows, FeatureRow{
				Feature:        fmt.Sprintf("Feature %d-%d", p, f),
				ScreenFunction: fmt.Sprintf("Screen %d", f),
				InCharge:       fmt.Sprintf("student-%d-%d", p, f%4),
			})
		}

		status, _, err = postJSON(targetHost+"/api/projects/"+created.ID+"/features", map[string]any{"features": rows})
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN features returned %d\n", status)
		}

		projects = append(projects, created.ID)
		time.Sleep(20 * time.Millisecond)
	}

	// Первичная синхронизация, чтобы GET loc было что читать
	log.Println("Seeding: initial sync-loc for each project...")
	for _, id := range projects {
		status, _, err := postJSON(targetHost+"/api/projects/"+id+"/sync-loc", nil)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN sync-loc returned %d\n", status)
		}
		time.Sleep(15 * time.Millisecond)
	}

	log.Printf("Seed completed: projects=%d\n", len(projects))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		project := projects[rand.Intn(len(projects))]
		r := rand.Float64()

		// 55% GET loc
		if r < 0.55 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects/%s/loc", targetHost, project)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 30% GET evaluation
		if r < 0.85 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects/%s/evaluation", targetHost, project)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 10% GET features
		if r < 0.95 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/projects/%s/features", targetHost, project)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 5% POST sync-loc; 409 при конкурентной синхронизации того же
		// проекта считается ошибкой vegeta, но при rps=5 это редкость
		t.Method = http.MethodPost
		t.URL = fmt.Sprintf("%s/api/projects/%s/sync-loc", targetHost, project)
		t.Body = nil
		t.Header = map[string][]string{"Content-Type": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack()
}
