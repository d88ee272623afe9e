package models

// RequestType is the three-way classification of an intake request.
type RequestType string

const (
	RequestTypeChange   RequestType = "change"
	RequestTypeSupport  RequestType = "support"
	RequestTypeTraining RequestType = "training"
)

// Valid reports whether t is one of the three known request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeChange, RequestTypeSupport, RequestTypeTraining:
		return true
	}
	return false
}

// FormData holds the intake form fields the extraction stage can pre-fill.
// Values in the three multi-select fields must exactly match an entry in the
// corresponding closed vocabulary; anything else is dropped before the data
// reaches the form layer.
type FormData struct {
	Title             string   `json:"title,omitempty"`
	Description       string   `json:"description,omitempty"`
	SoftwarePlatforms []string `json:"softwarePlatforms"`
	ImpactedAreas     []string `json:"impactedAreas"`
	Channels          []string `json:"channels"`
}

// AnalysisResult is the structured output of one analysis call.
// Immutable once returned.
type AnalysisResult struct {
	ExtractedData          FormData    `json:"extractedData"`
	MissingFields          []string    `json:"missingFields"`
	Confidence             float64     `json:"confidence"`
	ClarificationQuestions []string    `json:"clarificationQuestions"`
	RequestType            RequestType `json:"requestType"`
	RequestTypeConfidence  float64     `json:"requestTypeConfidence"`
	RequestTypeReason      string      `json:"requestTypeReason"`
	ScenarioTypes          []string    `json:"scenarioTypes"`
	SuggestedDepartments   []string    `json:"suggestedDepartments"`
	RiskLevel              string      `json:"riskLevel"`
	Provider               string      `json:"provider"`
}

// WizardQuestion is one clarification question shown by the wizard step.
// Generated fresh per analysis; never persisted beyond the session.
type WizardQuestion struct {
	Question    string `json:"question"`
	Placeholder string `json:"placeholder"`
	Key         string `json:"key"`
}
