// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for mathrun.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides, in order of precedence:
//
//   - MATHRUN_* environment variables
//   - ~/.mathrun/config.toml
//   - Built-in defaults
//
// A process-wide config is available through Global()/SetGlobal() for the
// places (TUI bootstrap, CLI handlers) that share one; both are safe for
// concurrent use.
package config
