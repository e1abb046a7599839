// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows
// +build !windows

// Package ollama is the gateway to the Ollama HTTP API.
package ollama

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

// findOllamaExecutable searches for ollama in common installation paths
// on Unix, falling back to PATH lookup.
func findOllamaExecutable() (string, error) {
	if path, err := exec.LookPath("ollama"); err == nil {
		return path, nil
	}

	possiblePaths := []string{
		"/usr/local/bin/ollama",
		"/usr/bin/ollama",
		"/opt/ollama/ollama",
	}

	if home := os.Getenv("HOME"); home != "" {
		possiblePaths = append(possiblePaths,
			filepath.Join(home, ".local", "bin", "ollama"),
			filepath.Join(home, "bin", "ollama"),
		)
	}

	// macOS application bundle location
	possiblePaths = append(possiblePaths,
		"/Applications/Ollama.app/Contents/Resources/ollama",
	)

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("ollama not found in PATH or common installation directories. " +
		"Please ensure Ollama is installed. Checked: PATH, /usr/local/bin, /usr/bin, ~/.local/bin")
}

// startOllamaProcess starts the Ollama server on Unix/macOS as a detached
// background process and waits for it to become reachable.
func (c *Client) startOllamaProcess(ctx context.Context) error {
	ollamaPath, err := findOllamaExecutable()
	if err != nil {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "failed to find Ollama executable",
			Cause:   err,
		}
	}

	cmd := exec.Command(ollamaPath, "serve")
	cmd.Env = os.Environ()

	// New process group so the server outlives this process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: fmt.Sprintf("failed to start Ollama (path: %s)", ollamaPath),
			Cause:   err,
		}
	}

	if cmd.Process != nil {
		// Non-fatal if release fails; the server keeps running either way
		_ = cmd.Process.Release()
	}

	// Poll for readiness for up to 10 seconds
	deadline := time.Now().Add(10 * time.Second)
	var lastErr error
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return &ClientError{
				Type:    ErrTypeConnection,
				Message: "Ollama startup cancelled",
				Cause:   ctx.Err(),
			}
		default:
		}

		checkCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		lastErr = c.CheckRunning(checkCtx)
		cancel()

		if lastErr == nil {
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}

	return &ClientError{
		Type:    ErrTypeConnection,
		Message: "Ollama did not become ready in time",
		Cause:   lastErr,
	}
}
