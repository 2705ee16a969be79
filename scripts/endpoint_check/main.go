// Command endpoint_check probes the public endpoints of a running instance
// and verifies the JSON envelope contract. Exit code 1 means at least one
// critical endpoint broke.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method       string
	Path         string
	WantStatus   int
	Critical     bool
	WantEnvelope bool
}

var targets = []target{
	{Method: http.MethodGet, Path: "/api/health", WantStatus: http.StatusOK, Critical: true},
	{Method: http.MethodGet, Path: "/api/health/ready", WantStatus: http.StatusOK},
	{Method: http.MethodGet, Path: "/api/public/alumni", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/public/testimoni", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/public/articles", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/public/articles/categories", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/calendar/public/events", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/public/calendar/events", WantStatus: http.StatusOK, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/contact/info", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/spmb/school-info", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/spmb/form-config", WantStatus: http.StatusOK, Critical: true, WantEnvelope: true},
	{Method: http.MethodGet, Path: "/api/admin/profile", WantStatus: http.StatusUnauthorized, Critical: true, WantEnvelope: true},
}

type result struct {
	Target   target
	Status   int
	Envelope bool
	Err      error
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	var breaking, warnings int
	var results []result

	for _, t := range targets {
		res := probe(client, base, t)
		if !passed(res) {
			if t.Critical {
				breaking++
			} else {
				warnings++
			}
		}
		results = append(results, res)
	}

	printReport(results)
	fmt.Printf("Breaking: %d, Warnings: %d\n", breaking, warnings)
	if breaking > 0 {
		os.Exit(1)
	}
}

func probe(client *http.Client, base string, tgt target) result {
	res := result{Target: tgt}

	url := strings.TrimRight(base, "/") + tgt.Path
	req, err := http.NewRequest(tgt.Method, url, nil)
	if err != nil {
		res.Err = err
		return res
	}
	resp, err := client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read body: %w", err)
		return res
	}
	res.Envelope = !tgt.WantEnvelope || validEnvelope(body, resp.StatusCode)
	return res
}

// validEnvelope checks the {success, message} contract: success must be a
// boolean matching the status class, message a non-empty string.
func validEnvelope(body []byte, status int) bool {
	var env struct {
		Success *bool   `json:"success"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return false
	}
	if env.Success == nil || env.Message == nil || *env.Message == "" {
		return false
	}
	return *env.Success == (status < 400)
}

func passed(res result) bool {
	return res.Err == nil && res.Status == res.Target.WantStatus && res.Envelope
}

func printReport(results []result) {
	fmt.Println("Endpoint Check Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		if !passed(res) {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d (want %d) | Envelope: %t | Critical: %t\n",
			res.Status, res.Target.WantStatus, res.Envelope, res.Target.Critical)
	}
}
