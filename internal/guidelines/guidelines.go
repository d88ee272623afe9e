// Package guidelines maps free text to mortgage change-management scenario
// categories and derives department, risk, and follow-up question hints from
// them. Everything here is pure and total: no I/O, no failure modes.
package guidelines

import "strings"

// RiskLevel is the derived risk tier for a set of matched scenarios.
// There is no LOW tier: an unrecognized request still gets MEDIUM.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
)

// Profile carries the hints derived from a set of matched scenario types.
type Profile struct {
	SuggestedDepartments []string
	RiskLevel            string
	CandidateQuestions   []string
}

// Classify returns every scenario category whose keyword list matches
// anywhere in text, case-insensitively, in table order. This is a membership
// test, not a best-match search: multiple categories may match, and no match
// is a valid state. Empty text matches nothing.
func Classify(text string) []ScenarioType {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []ScenarioType
	for _, tree := range decisionTrees {
		for _, kw := range tree.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matched = append(matched, tree.Type)
				break
			}
		}
	}
	return matched
}

// Resolve derives the guideline profile for a set of scenario types.
// Departments are deduplicated in table order; risk is HIGH iff any matched
// category is flagged high-risk; candidate questions are deduplicated
// first-occurrence-wins across categories in table order.
func Resolve(types []ScenarioType) Profile {
	matched := make(map[ScenarioType]bool, len(types))
	for _, t := range types {
		matched[t] = true
	}

	profile := Profile{RiskLevel: RiskMedium}
	seenDept := make(map[string]bool)
	seenQuestion := make(map[string]bool)

	for _, tree := range decisionTrees {
		if !matched[tree.Type] {
			continue
		}
		if tree.HighRisk {
			profile.RiskLevel = RiskHigh
		}
		if tree.Department != "" && !seenDept[tree.Department] {
			seenDept[tree.Department] = true
			profile.SuggestedDepartments = append(profile.SuggestedDepartments, tree.Department)
		}
		for _, q := range tree.FollowUpQuestions {
			if !seenQuestion[q] {
				seenQuestion[q] = true
				profile.CandidateQuestions = append(profile.CandidateQuestions, q)
			}
		}
	}
	return profile
}
