//go:build integration

package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

const recentTracksBody = `{"recenttracks":{"track":[
	{"name":"Song A","artist":{"#text":"Artist A"},"@attr":{"nowplaying":"true"},
	 "image":[{"size":"small","#text":"http://img/small.jpg"},{"size":"extralarge","#text":"http://img/hi.jpg"}]},
	{"name":"Song B","artist":{"#text":"Artist B"},"date":{"uts":"1700000000"}}
],"@attr":{"user":"alice","page":"1","perPage":"2","totalPages":"1","total":"2"}}}`

func buildBinary(t testing.TB) string {
	t.Helper()

	bin := "./nowplaying_test"
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	t.Cleanup(func() { os.Remove(bin) })
	return bin
}

func fakeLastFM(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("method") != "user.getrecenttracks" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("user") == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, recentTracksBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testEnv(t *testing.T, lastfmURL string) []string {
	return append(os.Environ(),
		"HOME="+t.TempDir(),
		"NOWPLAYING_LASTFM_API_KEY=test_key",
		"NOWPLAYING_LASTFM_BASE_URL="+lastfmURL+"/2.0/",
		"NOWPLAYING_LASTFM_USERNAME=alice",
	)
}

func freeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// TestServeLifecycle starts the server against a fake Last.fm and stops it with SIGINT
func TestServeLifecycle(t *testing.T) {
	bin := buildBinary(t)
	lastfm := fakeLastFM(t)
	addr := freeAddr(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "serve", "--listen", addr, "--log-level", "debug")
	cmd.Env = testEnv(t, lastfm.URL)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}

	base := "http://" + addr
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Server did not become ready: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}

	status, body := get(t, base+"/now-playing")
	if status != http.StatusOK {
		t.Errorf("/now-playing: expected 200, got %d", status)
	}
	if !strings.Contains(body, "Song A") || strings.Count(body, `class="bar"`) != 37 {
		t.Errorf("/now-playing: unexpected badge:\n%s", body)
	}
	if !strings.Contains(body, "http://img/hi.jpg") {
		t.Error("/now-playing: expected linked cover")
	}

	status, body = get(t, base+"/user/broken")
	if status != http.StatusOK || !strings.Contains(body, "Error fetching data") {
		t.Errorf("/user/broken: unexpected response %d:\n%s", status, body)
	}

	status, _ = get(t, base+"/user/1")
	if status != http.StatusBadRequest {
		t.Errorf("/user/1: expected 400, got %d", status)
	}

	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		t.Fatalf("Failed to signal server: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Server exited with error: %v", err)
		}
	case <-time.After(15 * time.Second):
		t.Error("Server did not stop within 15 seconds")
	}
}

// TestNowCommand runs "now" against a fake Last.fm
func TestNowCommand(t *testing.T) {
	bin := buildBinary(t)
	lastfm := fakeLastFM(t)

	cmd := exec.Command(bin, "now", "--format", "{{.Title}} by {{.Artist}}")
	cmd.Env = testEnv(t, lastfm.URL)
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("now command failed: %v", err)
	}
	if got := strings.TrimSpace(string(output)); got != "Song A by Artist A" {
		t.Errorf("unexpected output %q", got)
	}

	cmd = exec.Command(bin, "now", "--svg", "bob")
	cmd.Env = testEnv(t, lastfm.URL)
	output, err = cmd.Output()
	if err != nil {
		t.Fatalf("now --svg failed: %v", err)
	}
	if !strings.HasPrefix(string(output), "<svg") {
		t.Errorf("expected SVG output, got %q", output)
	}
}
