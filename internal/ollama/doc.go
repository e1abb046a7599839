// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama is the gateway to the Ollama HTTP API.
//
// The pipeline and chat paths only need three things from the backend:
// a liveness probe (IsAvailable, GET /api/tags), single-shot text
// generation (Generate, POST /api/generate with stream:false), and the
// model list for the status view (ListModels).
//
// Failure policy is deliberately simple: probe failures are swallowed
// into a false return, generation failures surface immediately as typed
// *ClientError values. There are no retries and no backoff - the caller
// renders the failure and the next query starts fresh.
//
// The client keeps no per-call state beyond its base URL and defaults,
// so one instance is safe for concurrent use.
package ollama
