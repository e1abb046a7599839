// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows
// +build windows

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

// Windows-specific process creation flags
const (
	// CREATE_NO_WINDOW prevents a console window from being created
	CREATE_NO_WINDOW = 0x08000000
	// DETACHED_PROCESS creates a new process detached from the console
	DETACHED_PROCESS = 0x00000008
)

// findOllamaExecutable searches for ollama.exe in common installation
// paths on Windows, falling back to PATH lookup.
func findOllamaExecutable() (string, error) {
	if path, err := exec.LookPath("ollama.exe"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("ollama"); err == nil {
		return path, nil
	}

	possiblePaths := []string{}

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		possiblePaths = append(possiblePaths, filepath.Join(localAppData, "Programs", "Ollama", "ollama.exe"))
	}

	possiblePaths = append(possiblePaths,
		`C:\Program Files\Ollama\ollama.exe`,
		`C:\Program Files (x86)\Ollama\ollama.exe`,
	)

	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		possiblePaths = append(possiblePaths,
			filepath.Join(userProfile, "Ollama", "ollama.exe"),
			filepath.Join(userProfile, ".ollama", "ollama.exe"),
		)
	}

	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("ollama.exe not found in PATH or common installation directories. " +
		"Please ensure Ollama is installed. Checked: PATH, %%LOCALAPPDATA%%\\Programs\\Ollama, " +
		"C:\\Program Files\\Ollama")
}

// startOllamaProcess starts the Ollama server on Windows as a detached
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

	// New process group, no console window, detached from parent
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | CREATE_NO_WINDOW | DETACHED_PROCESS,
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
