package provider

import "strings"

// DefaultFallbackMessage is served in place of an analysis when the gateway
// fails and fallback is enabled.
const DefaultFallbackMessage = "AI analysis is temporarily unavailable. Please try again later."

// SystemPrompt frames every analysis request.
const SystemPrompt = "You are an experienced contract lawyer. You review contracts for the party " +
	"that will sign them and explain your findings in plain language."

// userPromptHeader lists the five sections the answer must contain.
const userPromptHeader = `Analyze the following contract and answer with exactly these five sections:

1. Executive Summary: a short overview of what the contract does.
2. Key Clauses: the most important clauses (payment, term, termination, liability, confidentiality).
3. Risk Score: a single number from 0 (no risk) to 100 (extreme risk) for the signing party.
4. Risky Clauses: clauses that are unusual, one-sided or dangerous, and why.
5. Suggested Improvements: concrete changes that would reduce the risk.

Contract:
`

// UserPrompt renders the analysis request for text.
func UserPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(userPromptHeader) + len(text))
	b.WriteString(userPromptHeader)
	b.WriteString(text)
	return b.String()
}
