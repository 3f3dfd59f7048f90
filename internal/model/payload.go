// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strconv"

// =============================================================================
// ANALYSIS PAYLOAD
// =============================================================================

// Payload is the structured analysis an assistant may embed in its reply.
//
// Values are taken as decoded. Percentages are expected to lie in [0,100]
// and sum to at most 100 per question, but nothing here checks that.
type Payload struct {
	Questions []Question `json:"questions"`
}

// Question is one analysed question with its answer distribution.
type Question struct {
	Question string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

// Answer is a labelled share of a question.
type Answer struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

// IsEmpty returns true if the payload has no questions to show.
func (p *Payload) IsEmpty() bool {
	return p == nil || len(p.Questions) == 0
}

// Total returns the sum of all answer percentages for the question.
func (q Question) Total() float64 {
	var sum float64
	for _, a := range q.Answers {
		sum += a.Percentage
	}
	return sum
}

// PercentString formats the percentage with the shortest exact decimal
// representation ("60", "33.3", "-5").
func (a Answer) PercentString() string {
	return FormatPercent(a.Percentage)
}

// FormatPercent formats a percentage value without a trailing "%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
