package testutil

import (
	"context"

	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/feedback"
	"github.com/founderlink/founderlink/internal/vectors"
)

// MockSearchClient implements a mock similarity-search client for testing.
type MockSearchClient struct {
	SearchFunc func(ctx context.Context, q vectors.Query) ([]vectors.Hit, error)
}

// Search calls the mock function if set.
func (m *MockSearchClient) Search(ctx context.Context, q vectors.Query) ([]vectors.Hit, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, q)
	}
	return nil, nil
}

// MockSink implements a mock feedback sink for testing.
type MockSink struct {
	RecordFunc func(ctx context.Context, in feedback.Interaction) (string, error)
}

// Record calls the mock function if set.
func (m *MockSink) Record(ctx context.Context, in feedback.Interaction) (string, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, in)
	}
	return "interaction-1", nil
}

// MockSignalSource implements a mock signal source for testing.
type MockSignalSource struct {
	ActiveByOwnerFunc func(ownerID core.UserID) ([]core.Signal, error)
}

// ActiveByOwner calls the mock function if set.
func (m *MockSignalSource) ActiveByOwner(ownerID core.UserID) ([]core.Signal, error) {
	if m.ActiveByOwnerFunc != nil {
		return m.ActiveByOwnerFunc(ownerID)
	}
	return nil, nil
}

// MockProfileSource implements a mock profile source for testing.
type MockProfileSource struct {
	GetByIDFunc func(id core.UserID) (*core.Profile, error)
}

// GetByID calls the mock function if set.
func (m *MockProfileSource) GetByID(id core.UserID) (*core.Profile, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, core.ErrRecordNotFound
}
