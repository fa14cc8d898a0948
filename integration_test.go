//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const playingBody = `{"recenttracks":{"track":[{"artist":{"#text":"Aphex Twin"},"name":"Xtal","album":{"#text":"Selected Ambient Works 85-92"},"@attr":{"nowplaying":"true"}}],"@attr":{"user":"mielsense"}}}`

// buildBinary compiles the command into a temp dir and returns its path.
func buildBinary(t testing.TB) string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "nowplaying_test")
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}
	return bin
}

// fakeLastfm serves body with status for every request.
func fakeLastfm(t testing.TB, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("method") != "user.getrecenttracks" {
			t.Errorf("unexpected method %q", r.URL.Query().Get("method"))
		}
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// commandEnv isolates the binary from the developer's config and .env.
func commandEnv(t testing.TB, baseURL string) []string {
	home := t.TempDir()
	return append(os.Environ(),
		"HOME="+home,
		"LASTFM_APIKEY=integration-key",
		"NOWPLAYING_LASTFM_BASE_URL="+baseURL,
	)
}

// TestNowCommand runs "now" against a fake upstream
func TestNowCommand(t *testing.T) {
	bin := buildBinary(t)

	tests := []struct {
		name     string
		status   int
		body     string
		want     string
		wantExit bool
	}{
		{
			name:   "playing",
			status: http.StatusOK,
			body:   playingBody,
			want:   "Aphex Twin - Xtal",
		},
		{
			name:     "upstream error",
			status:   http.StatusForbidden,
			body:     `{"error":10,"message":"Invalid API key"}`,
			wantExit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := fakeLastfm(t, tt.status, tt.body)

			cmd := exec.Command(bin, "now")
			cmd.Dir = t.TempDir()
			cmd.Env = commandEnv(t, upstream.URL)
			output, err := cmd.Output()

			if tt.wantExit {
				if err == nil {
					t.Fatalf("expected non-zero exit, got output %q", output)
				}
				return
			}
			if err != nil {
				t.Fatalf("now failed: %v", err)
			}
			if got := strings.TrimSpace(string(output)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestServeCommand starts the server, queries the API, and stops it
func TestServeCommand(t *testing.T) {
	bin := buildBinary(t)
	upstream := fakeLastfm(t, http.StatusOK, playingBody)

	addr := freeAddr(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, "serve", "--addr", addr)
	cmd.Dir = t.TempDir()
	cmd.Env = commandEnv(t, upstream.URL)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	defer func() {
		cmd.Process.Signal(os.Interrupt)
		cmd.Wait()
	}()

	base := fmt.Sprintf("http://%s", addr)
	waitForHealth(t, base+"/health")

	resp, err := http.Get(base + "/api/now-playing")
	if err != nil {
		t.Fatalf("GET /api/now-playing: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(string(body), `"name":"Xtal"`) {
		t.Errorf("expected raw track in response, got %s", body)
	}
}

func freeAddr(t testing.TB) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().String()
}

func waitForHealth(t testing.TB, url string) {
	t.Helper()

	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not become healthy at %s", url)
}

// BenchmarkNowCommand measures one full "now" invocation
func BenchmarkNowCommand(b *testing.B) {
	bin := buildBinary(b)
	upstream := fakeLastfm(b, http.StatusOK, playingBody)
	env := commandEnv(b, upstream.URL)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cmd := exec.Command(bin, "now")
		cmd.Env = env
		if err := cmd.Run(); err != nil {
			b.Fatalf("now failed: %v", err)
		}
	}
}
