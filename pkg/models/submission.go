package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a finalized intake request as persisted after the user
// reviewed and submitted the pre-filled form.
type Submission struct {
	ID                uuid.UUID   `db:"id"                 json:"id"`
	Title             string      `db:"title"              json:"title"`
	Description       string      `db:"description"        json:"description"`
	SoftwarePlatforms []string    `db:"software_platforms" json:"softwarePlatforms"`
	ImpactedAreas     []string    `db:"impacted_areas"     json:"impactedAreas"`
	Channels          []string    `db:"channels"           json:"channels"`
	RequestType       RequestType `db:"request_type"       json:"requestType"`
	RequestorName     string      `db:"requestor_name"     json:"requestorName"`
	RequestorEmail    string      `db:"requestor_email"    json:"requestorEmail"`
	Stakeholder       string      `db:"stakeholder"        json:"stakeholder"`
	WorkItemID        *int        `db:"work_item_id"       json:"workItemId,omitempty"`
	WorkItemURL       *string     `db:"work_item_url"      json:"workItemUrl,omitempty"`
	TicketError       *string     `db:"ticket_error"       json:"ticketError,omitempty"`
	CreatedAt         time.Time   `db:"created_at"         json:"createdAt"`
}
