package models

// FormOptions are the closed vocabularies for the three multi-select intake
// form fields. Matching is exact and case-sensitive everywhere; the analysis
// pipeline must never invent values outside these lists.
type FormOptions struct {
	SoftwarePlatforms []string `json:"softwarePlatforms"`
	ImpactedAreas     []string `json:"impactedAreas"`
	Channels          []string `json:"channels"`
}

// IntakeFormOptions returns the fixed form vocabularies.
func IntakeFormOptions() FormOptions {
	return FormOptions{
		SoftwarePlatforms: []string{
			"AIO Portal",
			"Automation",
			"Build and Lock Portal",
			"Byte",
			"Clear",
			"Clear Docs",
			"CMG/JV Websites",
			"Document Vendor",
			"Home Portal",
			"HomeFundIt",
			"List and Lock (MySite)",
			"Marketing Hub",
			"Optical Character Recognition",
			"Salesforce",
			"Secure Doc Upload",
			"Servicing Docs",
			"SmartApp",
		},
		ImpactedAreas: []string{
			"Loan Origination  (Sales)",
			"Disclosures",
			"Processing",
			"Underwriting",
			"Closing",
			"Post Closing",
			"Servicing",
			"Product",
			"Risk/Compliance/QC/QA",
			"Secondary/Pricing",
		},
		Channels: []string{
			"Bank",
			"Consumer Direct",
			"Correspondent",
			"JV",
			"Retail",
			"Select Partner",
			"Wholesale",
		},
	}
}
