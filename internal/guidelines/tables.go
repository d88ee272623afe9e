package guidelines

// ScenarioType is one of a fixed set of topical tags used to steer department
// suggestions, risk tiers, and prompt context.
type ScenarioType string

const (
	ScenarioConditions     ScenarioType = "conditions"
	ScenarioSystemChanges  ScenarioType = "systemChanges"
	ScenarioCompliance     ScenarioType = "compliance"
	ScenarioPricing        ScenarioType = "pricing"
	ScenarioInvestor       ScenarioType = "investor"
	ScenarioClosing        ScenarioType = "closing"
	ScenarioEscrow         ScenarioType = "escrow"
	ScenarioLossMitigation ScenarioType = "lossMitigation"
	ScenarioAudit          ScenarioType = "audit"
)

// decisionTree is one row of the scenario table: keywords that trigger the
// category, the department that usually owns it, and the follow-up questions
// worth asking when it matches.
type decisionTree struct {
	Type              ScenarioType
	Keywords          []string
	Department        string
	HighRisk          bool
	FollowUpQuestions []string
}

// decisionTrees is the fixed scenario table. Order matters: department and
// question deduplication iterate in declaration order.
var decisionTrees = []decisionTree{
	{
		Type:       ScenarioConditions,
		Keywords:   []string{"condition", "stipulation", "documentation requirement", "PTD", "PTF"},
		Department: "Underwriting or Closing",
		FollowUpQuestions: []string{
			"What triggers this condition?",
			"Who provides the required documentation?",
			"What validates clearance of this condition?",
			"Is this Prior to Document (PTD) or Prior to Funding (PTF)?",
		},
	},
	{
		Type:       ScenarioSystemChanges,
		Keywords:   []string{"system", "integration", "LOS", "platform", "API", "software"},
		Department: "IT",
		FollowUpQuestions: []string{
			"Which specific systems are affected?",
			"What is the current behavior vs desired behavior?",
			"Are there data mapping requirements?",
			"Is user training needed?",
			"What is the downtime window tolerance?",
		},
	},
	{
		Type:       ScenarioCompliance,
		Keywords:   []string{"compliance", "regulatory", "TRID", "RESPA", "HMDA", "FCRA", "ECOA", "QM", "ATR"},
		Department: "Compliance",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"What regulation or rule drives this change?",
			"What is the effective date or deadline?",
			"Is compliance/legal review required?",
			"What are the training requirements?",
			"Are system changes needed to support compliance?",
		},
	},
	{
		Type:       ScenarioPricing,
		Keywords:   []string{"rate", "pricing", "lock", "margin", "rate sheet", "pricing engine"},
		Department: "Origination / Secondary Markets",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"How will this impact rate sheets?",
			"Are margin calculations changing?",
			"What are the lock period implications?",
			"Is investor or secondary markets approval required?",
			"How will loan officers be notified?",
		},
	},
	{
		Type:       ScenarioInvestor,
		Keywords:   []string{"investor", "guideline", "agency", "Fannie", "Freddie", "FHA", "VA", "USDA", "Ginnie"},
		Department: "Underwriting",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"Which investor or agency is this for?",
			"What is the guideline or announcement reference?",
			"Which product types are affected?",
			"What is the effective date?",
			"Does the AUS system need configuration updates?",
		},
	},
	{
		Type:       ScenarioClosing,
		Keywords:   []string{"closing", "funding", "wire", "CTC", "clear to close", "closing disclosure"},
		Department: "Closing",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"What are the document requirements?",
			"What authorization levels are involved?",
			"What are the timing requirements?",
			"How does this impact investor delivery?",
			"Are there TRID compliance considerations?",
		},
	},
	{
		Type:       ScenarioEscrow,
		Keywords:   []string{"escrow", "taxes", "insurance", "impound", "escrow analysis"},
		Department: "Servicing or Closing",
		FollowUpQuestions: []string{
			"Which items are escrowed (taxes, insurance, HOA)?",
			"How is the calculation methodology changing?",
			"What is the payment timing?",
			"What notice requirements apply?",
			"Are there cushion or shortage handling changes?",
		},
	},
	{
		Type:       ScenarioLossMitigation,
		Keywords:   []string{"delinquency", "default", "modification", "forbearance", "loss mitigation"},
		Department: "Servicing / Loss Mitigation",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"What are the eligibility criteria?",
			"What is the timeline for this process?",
			"Is investor approval required?",
			"What are the regulatory requirements (CFPB servicing rules)?",
			"How are borrowers notified?",
		},
	},
	{
		Type:       ScenarioAudit,
		Keywords:   []string{"audit", "exam", "finding", "violation", "remediation", "QC"},
		Department: "Compliance",
		HighRisk:   true,
		FollowUpQuestions: []string{
			"What is the specific finding or violation?",
			"What is the remediation timeline?",
			"What is the root cause analysis?",
			"Is regulatory reporting required?",
			"What process changes are needed to prevent recurrence?",
		},
	},
}
