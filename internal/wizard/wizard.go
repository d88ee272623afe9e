// Package wizard holds the offline clarification-question machinery: the
// topical question bank, the fixed default question set, and the answer
// formatter that merges wizard answers back into a description.
package wizard

import (
	"sort"
	"strings"

	"github.com/mwhitfield/lendintake/pkg/models"
)

const additionalDetailsHeading = "**Additional Details from Clarification:**"

// DefaultQuestions is the fixed fallback set used whenever the model-backed
// generator fails or returns nothing. Always exactly three questions.
func DefaultQuestions() []models.WizardQuestion {
	return []models.WizardQuestion{
		{
			Question:    "What specific systems or processes are affected by this change?",
			Placeholder: "e.g., Encompass LOS, underwriting workflow, payment processing...",
			Key:         "affected_systems",
		},
		{
			Question:    "What is the desired timeline or deadline for this change?",
			Placeholder: "e.g., End of Q1 2024, before regulatory deadline, ASAP...",
			Key:         "timeline",
		},
		{
			Question:    "Who are the key stakeholders that need to be involved or informed?",
			Placeholder: "e.g., Underwriting team, IT department, compliance officer...",
			Key:         "stakeholders",
		},
	}
}

// DetermineQuestions picks a question set from the offline topic bank by
// scoring each bucket on keyword-pattern match counts in title+description.
// The highest score wins; ties and all-zero scores fall back to the "policy"
// bucket. Unlike the scenario classifier this is a best-match search, not a
// membership test.
func DetermineQuestions(title, description string) []models.WizardQuestion {
	combined := strings.ToLower(title + " " + description)

	best := questionSets[len(questionSets)-1] // policy default
	highest := 0
	for _, qs := range questionSets {
		score := len(qs.Pattern.FindAllString(combined, -1))
		if score > highest {
			highest = score
			best = qs
		}
	}
	return best.Questions
}

// FormatAnswers appends each non-empty wizard answer to the original
// description as a labeled block under a fixed heading. The description comes
// back unchanged when no answer has content. Answer keys are processed in
// sorted order so the output is deterministic.
func FormatAnswers(originalDescription string, answers map[string]string) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var blocks []string
	for _, key := range keys {
		answer := strings.TrimSpace(answers[key])
		if answer == "" {
			continue
		}
		if q, ok := questionByKey(key); ok {
			blocks = append(blocks, "**"+q.Question+"**\n"+answer)
		} else {
			blocks = append(blocks, answer)
		}
	}

	if len(blocks) == 0 {
		return originalDescription
	}

	return originalDescription + "\n\n---\n\n" + additionalDetailsHeading + "\n\n" + strings.Join(blocks, "\n\n")
}

// questionByKey looks up a bank question by its stable key. Keys from the
// fixed default set resolve too, since they overlap with the bank.
func questionByKey(key string) (models.WizardQuestion, bool) {
	for _, qs := range questionSets {
		for _, q := range qs.Questions {
			if q.Key == key {
				return q, true
			}
		}
	}
	for _, q := range DefaultQuestions() {
		if q.Key == key {
			return q, true
		}
	}
	return models.WizardQuestion{}, false
}
