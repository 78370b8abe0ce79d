package main

import (
	"bytes"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// run executes the CLI with an isolated HOME so no user config is read.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"CLUE_HOST", "CLUE_PORT", "CLUE_ASYNC", "CLUE_LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	var out bytes.Buffer
	root := newApp().rootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func hostPort(t *testing.T, addr net.Addr) (string, string) {
	t.Helper()
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		t.Fatalf("split %s: %v", addr, err)
	}
	return host, port
}

func TestPingCommand(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	host, port := hostPort(t, ln.Addr())
	out, err := run(t, "--host", host, "--port", port, "ping")
	if err != nil {
		t.Fatalf("ping: unexpected error: %v", err)
	}
	ms, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil || ms < 0 {
		t.Errorf("ping output = %q, want a non-negative latency", out)
	}
}

func TestPingCommand_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, port := hostPort(t, ln.Addr())
	ln.Close()

	out, err := run(t, "--host", host, "--port", port, "--ping-timeout", "1s", "ping")
	if !errors.Is(err, errUnreachable) {
		t.Errorf("ping error = %v, want errUnreachable", err)
	}
	if strings.TrimSpace(out) != "unreachable" {
		t.Errorf("ping output = %q, want unreachable", out)
	}
}

func TestExecCommand(t *testing.T) {
	var (
		mu   sync.Mutex
		path string
	)
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		path = r.URL.Path
		mu.Unlock()
		if r.URL.Path == "/api/clue/broken" {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer ts.Close()

	host, port := hostPort(t, ts.Listener.Addr())

	if _, err := run(t, "--host", host, "--port", port, "exec", "front-door"); err != nil {
		t.Fatalf("exec: unexpected error: %v", err)
	}
	mu.Lock()
	got := path
	mu.Unlock()
	if got != "/api/clue/front-door" {
		t.Errorf("path = %q, want /api/clue/front-door", got)
	}

	if _, err := run(t, "--host", host, "--port", port, "exec", "broken"); err == nil {
		t.Error("exec broken: expected error for 502")
	}
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("host = \"256.0.0.1\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := run(t, "--config", cfgPath, "ping"); err == nil {
		t.Error("expected invalid host from config file to be rejected")
	}

	// The flag wins over the file.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, port := hostPort(t, ln.Addr())
	ln.Close()

	_, err = run(t, "--config", cfgPath, "--host", host, "--port", port, "--ping-timeout", "1s", "ping")
	if !errors.Is(err, errUnreachable) {
		t.Errorf("ping error = %v, want errUnreachable", err)
	}
}

func TestMissingHost(t *testing.T) {
	if _, err := run(t, "ping"); err == nil {
		t.Error("expected error without --host")
	}
}

func TestGetVersion(t *testing.T) {
	v := getVersion()
	if v == "" || v == "(devel)" {
		t.Errorf("getVersion() = %q, want a release version", v)
	}
}
