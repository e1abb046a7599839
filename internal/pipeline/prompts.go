// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompts.go - Prompt builders for the extraction and formatting stages.
package pipeline

import "fmt"

// extractionPromptTemplate turns a natural-language question into a bare
// arithmetic expression. The worked examples keep small models on track;
// the low sampling temperature does the rest. Whatever comes back is
// sanitized before use, so stray prose is harmless.
const extractionPromptTemplate = `You extract arithmetic expressions from questions.
Reply with ONLY the expression. No words, no explanation, no equals sign.

Examples:
Question: what is 2 plus 2?
Expression: 2+2
Question: calculate 100 minus 37
Expression: 100-37
Question: how much is 12.5 times 3?
Expression: 12.5*3
Question: divide 10 by 4
Expression: 10/4
Question: what is (3 plus 5) times 2?
Expression: (3+5)*2

Question: %s
Expression:`

// ExtractionPrompt builds the stage-1 prompt for a user question.
func ExtractionPrompt(query string) string {
	return fmt.Sprintf(extractionPromptTemplate, query)
}

// formattingPromptTemplate phrases a computed result as a reply. The value
// is already final; the model only supplies the wording.
const formattingPromptTemplate = `The user asked: %s
The expression %s evaluates to %s.

Reply to the user in one short, friendly sentence that states the answer.
Include the value %s exactly as written. Do not recompute anything.`

// FormattingPrompt builds the stage-3 prompt from the original question,
// the extracted expression, and the formatted result.
func FormattingPrompt(query, expr, result string) string {
	return fmt.Sprintf(formattingPromptTemplate, query, expr, result, result)
}
