// Package mock provides a configurable fake text provider for tests.
package mock

import (
	"context"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// MockProvider satisfies models.TextProvider for testing.
type MockProvider struct {
	Name_        string
	GenerateFunc func(ctx context.Context, req models.GenerateRequest) (string, error)
	DescribeFunc func(ctx context.Context, content []byte, mediaType string) (string, error)
}

func (m *MockProvider) Name() string { return m.Name_ }

func (m *MockProvider) Generate(ctx context.Context, req models.GenerateRequest) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return "", nil
}

func (m *MockProvider) Describe(ctx context.Context, content []byte, mediaType string) (string, error) {
	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, content, mediaType)
	}
	return "", nil
}

// NewMockProvider returns a MockProvider with a sensible default analysis
// response.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock",
		GenerateFunc: func(_ context.Context, _ models.GenerateRequest) (string, error) {
			return `{
				"title": "Mock intake request",
				"description": "Simulated extraction from the mock provider",
				"softwarePlatforms": ["Byte"],
				"impactedAreas": ["Underwriting"],
				"channels": ["Retail"],
				"missingFields": [],
				"clarificationQuestions": ["Which loan products are affected?"],
				"confidence": 0.85,
				"requestType": "change",
				"requestTypeConfidence": 0.9,
				"requestTypeReason": "Requires a system modification"
			}`, nil
		},
		DescribeFunc: func(_ context.Context, _ []byte, _ string) (string, error) {
			return "Mock extraction: processed attachment content for testing", nil
		},
	}
}

// NewFailingProvider returns a MockProvider that always returns the given error.
func NewFailingProvider(err error) *MockProvider {
	return &MockProvider{
		Name_: "mock-failing",
		GenerateFunc: func(_ context.Context, _ models.GenerateRequest) (string, error) {
			return "", err
		},
		DescribeFunc: func(_ context.Context, _ []byte, _ string) (string, error) {
			return "", err
		},
	}
}

// NewTimeoutProvider returns a MockProvider that blocks until context is cancelled.
func NewTimeoutProvider() *MockProvider {
	return &MockProvider{
		Name_: "mock-timeout",
		GenerateFunc: func(ctx context.Context, _ models.GenerateRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		DescribeFunc: func(ctx context.Context, _ []byte, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}

// Compile-time check that MockProvider implements TextProvider.
var _ models.TextProvider = (*MockProvider)(nil)
