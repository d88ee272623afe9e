// Package ticket creates work items in Azure DevOps for submitted requests.
package ticket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// Sentinel errors for ticket client failures.
var (
	ErrTicketUnreachable = errors.New("work item service unreachable")
	ErrTicketRejected    = errors.New("work item request rejected")
	ErrTicketTimeout     = errors.New("work item request timeout")
)

// WorkItem is the created Azure DevOps work item.
type WorkItem struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Client is the interface for creating work items.
type Client interface {
	CreateWorkItem(ctx context.Context, form models.FormData) (*WorkItem, error)
	TestConnection(ctx context.Context) error
}

// Config holds Azure DevOps connection settings.
type Config struct {
	Organization        string
	Project             string
	PersonalAccessToken string
	AreaPath            string
	IterationPath       string
}

// HTTPClient implements Client using the Azure DevOps REST API.
type HTTPClient struct {
	baseURL       string
	authHeader    string
	areaPath      string
	iterationPath string
	client        *http.Client
	now           func() time.Time
}

// NewHTTPClient creates a new Azure DevOps work item client.
func NewHTTPClient(cfg Config, timeout time.Duration) *HTTPClient {
	token := base64.StdEncoding.EncodeToString([]byte(":" + cfg.PersonalAccessToken))
	return &HTTPClient{
		baseURL:       fmt.Sprintf("https://dev.azure.com/%s/%s", cfg.Organization, url.PathEscape(cfg.Project)),
		authHeader:    "Basic " + token,
		areaPath:      cfg.AreaPath,
		iterationPath: cfg.IterationPath,
		client:        &http.Client{Timeout: timeout},
		now:           time.Now,
	}
}

// patchOp is a single JSON Patch operation.
type patchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value string `json:"value"`
}

// CreateWorkItem creates a User Story work item populated from the form.
func (c *HTTPClient) CreateWorkItem(ctx context.Context, form models.FormData) (*WorkItem, error) {
	patch := []patchOp{
		{Op: "add", Path: "/fields/System.Title", Value: form.Title},
		{Op: "add", Path: "/fields/System.Description", Value: c.buildDescription(form)},
		{Op: "add", Path: "/fields/System.Tags", Value: buildTags(form)},
	}
	if c.areaPath != "" {
		patch = append(patch, patchOp{Op: "add", Path: "/fields/System.AreaPath", Value: c.areaPath})
	}
	if c.iterationPath != "" {
		patch = append(patch, patchOp{Op: "add", Path: "/fields/System.IterationPath", Value: c.iterationPath})
	}

	body, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encoding patch document: %w", err)
	}

	u := c.baseURL + "/_apis/wit/workitems/$User%20Story?api-version=7.1"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json-patch+json")
	httpReq.Header.Set("Authorization", c.authHeader)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d", ErrTicketRejected, resp.StatusCode)
	}

	var item WorkItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("decoding work item response: %w", err)
	}

	return &item, nil
}

// TestConnection verifies that the project is reachable with the configured
// credentials.
func (c *HTTPClient) TestConnection(ctx context.Context) error {
	u := c.baseURL + "/_apis/projects?api-version=7.1"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.authHeader)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return classifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrTicketRejected, resp.StatusCode)
	}

	return nil
}

// buildDescription renders the form as the HTML description body.
func (c *HTTPClient) buildDescription(form models.FormData) string {
	var parts []string

	parts = append(parts,
		"<div>",
		"<h3>Description</h3>",
		fmt.Sprintf("<p>%s</p>", escapeHTML(form.Description)),
		"</div>",
	)

	appendList := func(heading string, values []string) {
		if len(values) == 0 {
			return
		}
		parts = append(parts, "<div>", fmt.Sprintf("<h3>%s</h3>", heading), "<ul>")
		for _, v := range values {
			parts = append(parts, fmt.Sprintf("<li>%s</li>", escapeHTML(v)))
		}
		parts = append(parts, "</ul>", "</div>")
	}

	appendList("Software Platforms", form.SoftwarePlatforms)
	appendList("Impacted Areas", form.ImpactedAreas)
	appendList("Channels", form.Channels)

	parts = append(parts,
		`<div style="margin-top: 20px; padding-top: 10px; border-top: 1px solid #ccc;">`,
		"<p><em>Submitted via Intake Assistant</em></p>",
		fmt.Sprintf("<p><em>Submission Date: %s</em></p>", c.now().Format(time.RFC1123)),
		"</div>",
	)

	return strings.Join(parts, "\n")
}

// buildTags derives the work item tags from the form selections.
func buildTags(form models.FormData) string {
	tags := []string{"Intake", "AI-Submitted"}
	if len(form.SoftwarePlatforms) > 0 {
		tags = append(tags, strings.Join(strings.Fields(form.SoftwarePlatforms[0]), "-"))
	}
	if len(form.ImpactedAreas) > 0 {
		tags = append(tags, strings.Join(strings.Fields(form.ImpactedAreas[0]), "-"))
	}
	return strings.Join(tags, "; ")
}

// escapeHTML escapes markup characters and converts newlines to line breaks.
func escapeHTML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
		"\n", "<br>",
	)
	return r.Replace(text)
}

// classifyError maps transport-level errors to sentinel errors.
func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTicketTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTicketTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrTicketUnreachable, err)
	}

	return fmt.Errorf("%w: %v", ErrTicketUnreachable, err)
}

// Compile-time check that HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)
