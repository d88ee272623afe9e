package wizard

import (
	"regexp"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// questionSet is one topical bucket of the offline question bank.
type questionSet struct {
	Category   string
	Department string
	Pattern    *regexp.Regexp
	Questions  []models.WizardQuestion
}

// questionSets is the fixed topic bank, in scoring order. The last entry
// ("policy") doubles as the tie-break default.
var questionSets = []questionSet{
	{
		Category:   "system",
		Department: "IT",
		Pattern:    regexp.MustCompile(`(?i)system|integration|LOS|platform|API|software|application|database|encompass|calyx|bytepro|interface`),
		Questions: []models.WizardQuestion{
			{
				Question:    "Which specific systems or platforms are affected by this change?",
				Placeholder: "e.g., Encompass LOS, credit bureau integration, appraisal ordering system...",
				Key:         "affected_systems",
			},
			{
				Question:    "What are the current limitations and what specific functionality do you need?",
				Placeholder: "Describe what the system does now vs. what you need it to do...",
				Key:         "functionality_needs",
			},
			{
				Question:    "Are there any integration points, data mapping requirements, or testing needs?",
				Placeholder: "e.g., APIs to connect, data fields to map, user acceptance testing requirements...",
				Key:         "technical_requirements",
			},
		},
	},
	{
		Category:   "compliance",
		Department: "Compliance",
		Pattern:    regexp.MustCompile(`(?i)compliance|regulatory|regulation|TRID|RESPA|HMDA|ECOA|FCRA|fair lending|audit|exam|QM|ATR`),
		Questions: []models.WizardQuestion{
			{
				Question:    "Which regulation or compliance requirement is driving this change?",
				Placeholder: "e.g., TRID, RESPA, HMDA, Fair Lending, ECOA, state-specific regulation...",
				Key:         "regulation_reference",
			},
			{
				Question:    "What is the effective date and are there any deadline constraints?",
				Placeholder: "e.g., Regulatory deadline, business target date, exam finding remediation timeline...",
				Key:         "compliance_timeline",
			},
			{
				Question:    "What training, documentation, or system changes will be required?",
				Placeholder: "e.g., Staff training, policy updates, disclosure changes, system configuration...",
				Key:         "compliance_implementation",
			},
		},
	},
	{
		Category:   "underwriting",
		Department: "Underwriting",
		Pattern:    regexp.MustCompile(`(?i)underwriting|condition|stipulation|documentation|income|asset|credit|appraisal|employment|VOE|VOD|gift|UW`),
		Questions: []models.WizardQuestion{
			{
				Question:    "What specific documentation or condition types are involved?",
				Placeholder: "e.g., Income verification, asset documentation, employment verification, credit supplements...",
				Key:         "documentation_types",
			},
			{
				Question:    "Which loan products or borrower scenarios are affected?",
				Placeholder: "e.g., All conventional loans, FHA only, self-employed borrowers, investment properties...",
				Key:         "product_scope",
			},
			{
				Question:    "Are there investor guideline requirements or approval needed?",
				Placeholder: "e.g., Fannie Mae guideline update, FHA policy change, investor-specific requirement...",
				Key:         "investor_requirements",
			},
		},
	},
	{
		Category:   "pricing",
		Department: "Origination",
		Pattern:    regexp.MustCompile(`(?i)rate|pricing|lock|margin|rate sheet|pricing engine|lock desk|yield spread|basis points`),
		Questions: []models.WizardQuestion{
			{
				Question:    "How will this impact rate sheets, margins, or lock desk operations?",
				Placeholder: "e.g., Margin adjustments, rate sheet import changes, lock period modifications...",
				Key:         "pricing_impact",
			},
			{
				Question:    "Which loan products and lock periods are affected?",
				Placeholder: "e.g., 30-year fixed, ARM products, specific lock periods (15, 30, 45, 60 days)...",
				Key:         "pricing_scope",
			},
			{
				Question:    "Does this require Secondary Markets approval or coordination?",
				Placeholder: "e.g., Investor pricing approval, warehouse line impact, hedging considerations...",
				Key:         "secondary_coordination",
			},
		},
	},
	{
		Category:   "closing",
		Department: "Closing",
		Pattern:    regexp.MustCompile(`(?i)closing|funding|wire|CTC|clear to close|document|disclosure|settlement|title|escrow setup|CD`),
		Questions: []models.WizardQuestion{
			{
				Question:    "What stage of the closing process is affected (CTC, document prep, funding, post-closing)?",
				Placeholder: "e.g., Clear to Close criteria, closing disclosure preparation, wire authorization, final docs...",
				Key:         "closing_stage",
			},
			{
				Question:    "Are there any timing, authorization, or documentation requirements?",
				Placeholder: "e.g., Sign-off authority, 3-day waiting periods, final condition clearance, funding limits...",
				Key:         "closing_requirements",
			},
			{
				Question:    "How will this impact investor delivery or warehouse lending?",
				Placeholder: "e.g., Document delivery timing, investor quality control, warehouse line compliance...",
				Key:         "investor_delivery",
			},
		},
	},
	{
		Category:   "servicing",
		Department: "Servicing",
		Pattern:    regexp.MustCompile(`(?i)servicing|payment|escrow|delinquency|default|modification|forbearance|loss mitigation|PMI|payoff`),
		Questions: []models.WizardQuestion{
			{
				Question:    "What aspect of servicing is affected (payments, escrow, insurance, customer service)?",
				Placeholder: "e.g., Payment processing, escrow analysis, insurance tracking, borrower communications...",
				Key:         "servicing_area",
			},
			{
				Question:    "How should payments, escrow, or borrower accounts be handled differently?",
				Placeholder: "e.g., Payment application order, escrow calculation method, notice generation...",
				Key:         "servicing_process",
			},
			{
				Question:    "Are there investor servicing guidelines or regulatory requirements?",
				Placeholder: "e.g., CFPB servicing rules, investor reporting requirements, RESPA compliance...",
				Key:         "servicing_requirements",
			},
		},
	},
	{
		Category:   "policy",
		Department: "Operations",
		Pattern:    regexp.MustCompile(`(?i)policy|process|procedure|workflow|guideline|standard|requirement|protocol`),
		Questions: []models.WizardQuestion{
			{
				Question:    "What is the current policy/process and what specifically needs to change?",
				Placeholder: "Describe how things work now vs. how they should work after this change...",
				Key:         "policy_change",
			},
			{
				Question:    "Who is affected by this change (roles, departments, external partners)?",
				Placeholder: "e.g., Loan officers, processors, underwriters, brokers, title companies...",
				Key:         "stakeholders",
			},
			{
				Question:    "What training, documentation, or system updates are needed to support this?",
				Placeholder: "e.g., Training materials, procedure manuals, system configuration, communication plan...",
				Key:         "implementation_needs",
			},
		},
	},
}
