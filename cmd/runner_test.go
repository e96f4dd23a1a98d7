package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
	tu "github.com/desertthunder/wayfarer/internal/testing"
)

func testConfig(t *testing.T) *shared.Config {
	t.Helper()

	config := shared.DefaultConfig()
	config.Auth.TokenPath = filepath.Join(t.TempDir(), "token")
	config.Database.Path = filepath.Join(t.TempDir(), "wayfarer.db")
	return config
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("wires all dependencies", func(t *testing.T) {
			config := testConfig(t)
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: &http.Client{},
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.api == nil || runner.pipeline == nil || runner.creds == nil {
				t.Error("expected API surface wired")
			}
			if runner.store == nil || runner.tracker == nil || runner.exporter == nil {
				t.Error("expected cache, tracker, and exporter wired")
			}
			if runner.notifier == nil {
				t.Error("expected notifier wired")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("refresh endpoint is wired", func(t *testing.T) {
			transport := tu.NewMockRoundTripper(
				tu.EnvelopeResponse(http.StatusOK, true, map[string]string{"access_token": "fresh"}, ""), nil)
			runner := NewRunner(RunnerOpts{
				Config:     testConfig(t),
				HTTPClient: &http.Client{Transport: transport},
				Output:     &bytes.Buffer{},
			})

			if err := runner.creds.Persist("old"); err != nil {
				t.Fatalf("persist failed: %v", err)
			}

			fresh, err := runner.creds.Refresh(t.Context())
			if err != nil {
				t.Fatalf("expected wired refresh to succeed, got %v", err)
			}
			if fresh != "fresh" {
				t.Errorf("expected fresh token, got %q", fresh)
			}
		})
	})

	t.Run("SetLogger", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &bytes.Buffer{}})
		replacement := shared.NewLogger(&bytes.Buffer{})

		runner.SetLogger(replacement)
		if runner.logger != replacement {
			t.Error("expected logger swapped")
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &bytes.Buffer{}})
		commands := runner.register()

		if len(commands) == 0 {
			t.Fatal("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}
		for _, want := range []string{"auth", "itinerary", "user", "ai", "maps", "status", "setup", "cache", "watch"} {
			if !names[want] {
				t.Errorf("expected command %q registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("handles marshal error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limited := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &limited})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: output})

		if err := runner.writePlain("hello %s", "world"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.String() != "hello world" {
			t.Errorf("expected 'hello world', got %q", output.String())
		}

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})
}

func TestCLINotifier(t *testing.T) {
	t.Run("Notify Renders Prefixed Lines", func(t *testing.T) {
		output := &bytes.Buffer{}
		notifier := newCLINotifier(output, shared.NewLogger(&bytes.Buffer{}))

		notifier.Notify(services.LevelSuccess, "done")
		notifier.Notify(services.LevelWarning, "careful")
		notifier.Notify(services.LevelError, "broke")

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0] != "✓ done" || lines[1] != "! careful" || lines[2] != "✗ broke" {
			t.Errorf("unexpected rendering: %v", lines)
		}
	})

	t.Run("BusyChanged Prints Only On Activation", func(t *testing.T) {
		output := &bytes.Buffer{}
		notifier := newCLINotifier(output, shared.NewLogger(&bytes.Buffer{}))

		notifier.BusyChanged(true)
		notifier.BusyChanged(false)

		if strings.Count(output.String(), "working") != 1 {
			t.Errorf("expected one working line, got %q", output.String())
		}
	})

	t.Run("RedirectToLogin Prints Hint", func(t *testing.T) {
		output := &bytes.Buffer{}
		notifier := newCLINotifier(output, shared.NewLogger(&bytes.Buffer{}))

		notifier.RedirectToLogin()
		if !strings.Contains(output.String(), "wayfarer auth login") {
			t.Errorf("expected login hint, got %q", output.String())
		}
	})

	t.Run("Quiet Suppresses Rendering", func(t *testing.T) {
		output := &bytes.Buffer{}
		notifier := newCLINotifier(output, shared.NewLogger(&bytes.Buffer{}))
		notifier.SetQuiet(true)

		notifier.Notify(services.LevelError, "broke")
		notifier.BusyChanged(true)
		notifier.RedirectToLogin()

		if output.Len() != 0 {
			t.Errorf("expected no output in quiet mode, got %q", output.String())
		}
	})
}
