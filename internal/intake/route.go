package intake

import "github.com/mwhitfield/lendintake/pkg/models"

// RouteTarget tells the client where to send the user after analysis.
type RouteTarget string

const (
	// RouteForm continues the standard intake form flow.
	RouteForm RouteTarget = "FORM"
	// RouteSupport redirects the user to the support contact flow.
	RouteSupport RouteTarget = "SUPPORT_REDIRECT"
	// RouteTraining redirects the user to training resources.
	RouteTraining RouteTarget = "TRAINING_REDIRECT"

	// redirectThreshold is the minimum classification confidence required
	// before redirecting away from the form. Confidence at or below the
	// threshold keeps the user on the form.
	redirectThreshold = 0.7
)

// Route maps a request type classification to a navigation target. Only
// support and training classifications with confidence strictly above the
// threshold leave the form flow.
func Route(requestType models.RequestType, confidence float64) RouteTarget {
	if confidence <= redirectThreshold {
		return RouteForm
	}
	switch requestType {
	case models.RequestTypeSupport:
		return RouteSupport
	case models.RequestTypeTraining:
		return RouteTraining
	default:
		return RouteForm
	}
}
