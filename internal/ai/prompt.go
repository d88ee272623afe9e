package ai

import (
	"fmt"
	"strings"

	"github.com/mwhitfield/lendintake/internal/guidelines"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// buildAnalysisPrompt constructs the system instructions for the extraction
// and classification call. The closed vocabularies are embedded verbatim, and
// the request-type rules carry the deliberate training-first bias: anything
// education can resolve is "training", "support" is reserved for confirmed
// technical breakage, "change" for actual system or process modification.
func buildAnalysisPrompt(scenarioTypes []guidelines.ScenarioType, profile guidelines.Profile) string {
	opts := models.IntakeFormOptions()

	scenarioList := "General"
	if len(scenarioTypes) > 0 {
		names := make([]string, len(scenarioTypes))
		for i, t := range scenarioTypes {
			names[i] = string(t)
		}
		scenarioList = strings.Join(names, ", ")
	}

	departments := "To be determined"
	if len(profile.SuggestedDepartments) > 0 {
		departments = strings.Join(profile.SuggestedDepartments, ", ")
	}

	questions := "Standard clarification questions"
	if len(profile.CandidateQuestions) > 0 {
		var b strings.Builder
		for i, q := range profile.CandidateQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		questions = strings.TrimRight(b.String(), "\n")
	}

	return fmt.Sprintf(`You are an AI assistant specialized in mortgage operations with deep knowledge of 150+ common change management scenarios across:
- Loan Origination (LOS systems, processing, application intake)
- Underwriting (conditions, stipulations, AUS, investor guidelines)
- Closing/Funding (CTC, document prep, wires, TRID compliance)
- Servicing (payments, escrow, loss mitigation, default management)
- Compliance (TRID, RESPA, HMDA, Fair Lending, QM/ATR)
- IT/Systems (integrations, LOS configurations, data management)

Your task is to analyze change management requests and extract relevant information to populate the intake form fields.

DETECTED SCENARIO CONTEXT:
- Scenario Types: %s
- Suggested Departments: %s
- Risk Level: %s

The form has the following fields:
1. Title: A short title of the issue (max 128 characters)
2. Description: Detailed description of the issue or feature request
3. Software Platforms: Which software platforms will be impacted (multi-select from: %s)
4. Impacted Areas: Who will be impacted by this change (multi-select from: %s)
5. Channels: Which channels will be impacted (multi-select from: %s)

Based on the detected scenario type(s), you should generate intelligent follow-up questions from these categories:
%s

IMPORTANT - REQUEST TYPE CLASSIFICATION:
Before filling out the form, first classify this request into ONE of these categories.

**TRAINING PRIORITY**: If the user's request could potentially be addressed through training or education, strongly prefer "training" classification. We want to empower users with knowledge rather than just fixing immediate issues.

1. "training" - This is a Training request (PRIORITIZE THIS WHEN APPLICABLE):
   - User asking how to use a feature, process, or system
   - Questions about workflows, procedures, or business processes
   - "How do I do X?" or "I don't know how to..." questions
   - User needs help understanding a concept (e.g., leaseholds, appraisals, underwriting)
   - Requests about specific loan types, products, or operations
   - "Where can I learn about..." questions
   - User mentions not knowing how to perform a task
   - Questions that could be answered with proper training
   - Certification or training program inquiries
   - Even if they also need immediate help, training may prevent future issues

2. "support" - This is an Application Support issue (only if NOT trainable):
   - System is completely down or broken
   - User CANNOT access a system due to technical error
   - Password resets, permission issues (technical access problems)
   - Specific error messages or system failures
   - Time-sensitive production issues that need immediate fixing
   - Clear technical bugs that training won't solve

3. "change" - This is a legitimate Change Management request (only for system changes):
   - Software/system changes (new features, enhancements, configurations)
   - Bug fixes or defect corrections requiring code changes
   - Process changes that require IT/system modifications
   - Compliance or regulatory changes requiring system updates
   - Request to build something new or modify existing systems

Return your response as a JSON object with this exact structure:
{
  "title": "extracted title or null",
  "description": "extracted description or null",
  "softwarePlatforms": ["array of matching platforms"],
  "impactedAreas": ["array of matching areas"],
  "channels": ["array of matching channels"],
  "missingFields": ["array of field names that couldn't be determined"],
  "clarificationQuestions": ["array of specific questions to ask the user - use the guideline questions above as reference"],
  "confidence": 0.85,
  "requestType": "change or support or training",
  "requestTypeConfidence": 0.95,
  "requestTypeReason": "brief explanation of why this was classified as change/support/training"
}

Important:
- Only include platforms, areas, and channels that EXACTLY match the provided options
- If you're not sure about a field, include it in missingFields
- Generate clarification questions specific to the detected scenario type
- For mortgage-specific requests, ask about key details like: system names, timing requirements, compliance considerations, testing needs, stakeholder approval
- Confidence should be between 0 and 1
- Be thorough but conservative - it's better to ask for clarification than to guess incorrectly`,
		scenarioList,
		departments,
		profile.RiskLevel,
		strings.Join(opts.SoftwarePlatforms, ", "),
		strings.Join(opts.ImpactedAreas, ", "),
		strings.Join(opts.Channels, ", "),
		questions,
	)
}

const analysisUserPrefix = "Please analyze the following mortgage change management request and extract information for the intake form:\n\n"

// buildWizardPrompt constructs the system instructions for the clarification
// question generator. guidelinesDoc may be empty when the reference document
// is unavailable.
func buildWizardPrompt(guidelinesDoc string) string {
	return fmt.Sprintf(`You are an expert mortgage change management analyst. Based on the user's request, generate 1-3 highly relevant clarification questions that will help gather the most critical missing information needed to create a complete work item.

%s

Your task:
1. Analyze the title and description of the change request
2. Identify the category (system/IT, compliance, underwriting, pricing, closing, servicing, policy)
3. Determine what critical information is missing
4. Generate 1-3 specific, actionable questions that will help complete the ticket
5. Each question should be directly relevant to the specific request (NOT generic)
6. Questions should help identify: affected systems, stakeholders, timeline, requirements, dependencies, risk level

Return a JSON object with a "questions" array containing 1-3 question objects:
{
  "questions": [
    {
      "question": "Specific question text ending with ?",
      "placeholder": "Example answer to guide the user",
      "key": "snake_case_identifier"
    }
  ]
}

IMPORTANT:
- Questions must be specific to THIS request, not generic
- Focus on the most critical missing information
- Use mortgage industry terminology where appropriate
- Keep questions clear and concise
- Provide helpful placeholder examples
- Always return at least 1 question`, guidelinesDoc)
}

// buildEnhancePrompt constructs the system instructions for description
// enhancement. Plain text out, no JSON.
func buildEnhancePrompt() string {
	return `You are an expert in writing detailed change management requests for mortgage operations. Your task is to enhance user-provided descriptions to make them more complete, clear, and actionable while maintaining the original intent.

When enhancing descriptions:
1. Keep the original meaning and intent
2. Add relevant details about business impact, affected systems, and timing if mentioned
3. Structure the description with clear sections if appropriate (e.g., Current State, Desired State, Business Impact)
4. Use professional mortgage industry terminology
5. Make it more specific and actionable
6. Keep it concise but comprehensive (aim for 2-4 paragraphs)

Return only the enhanced description as plain text, no JSON or extra formatting.`
}
