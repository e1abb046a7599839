// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline implements the deterministic math-solving pipeline.
//
// Arithmetic questions are answered in three strictly sequential stages:
//
//  1. Extraction: the language model turns the question into a bare
//     arithmetic expression, which is then sanitized down to the
//     character class [0-9+-*/().].
//  2. Evaluation: the expression is computed locally. Expressions with a
//     digit run of ten or more use exact big-integer arithmetic; everything
//     else goes through a shunting-yard float evaluator. No code is ever
//     executed - the evaluator understands numbers, the four operators,
//     and parentheses, nothing more.
//  3. Formatting: the language model phrases the computed value as a
//     natural-language answer.
//
// Each stage records its input, output, and status in a Run, so the UI can
// show exactly what happened. An evaluation failure ends the run with an
// error stage; a transport failure from the model backend propagates to
// the caller.
//
// The package also contains the classifier that decides whether a query
// should enter the pipeline at all (see IsMathQuery).
package pipeline
