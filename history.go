package routine

import "context"

// HistoryStore is the hand-off point between the runner and an external
// stats collector: finished run summaries go in, past summaries come out.
// The engine itself never touches storage; whoever owns the run saves the
// summary when it ends.
type HistoryStore interface {
	// SaveSummary persists the summary of a finished run.
	SaveSummary(ctx context.Context, summary *Summary) error

	// LoadSummary retrieves the summary for a run, or nil if none exists.
	LoadSummary(ctx context.Context, runID string) (*Summary, error)

	// ListSummaries retrieves all stored summaries, most recent first.
	ListSummaries(ctx context.Context) ([]*Summary, error)

	// DeleteSummary removes the summary for a run.
	DeleteSummary(ctx context.Context, runID string) error
}

// NullHistoryStore is a no-op implementation of HistoryStore.
type NullHistoryStore struct{}

func NewNullHistoryStore() *NullHistoryStore {
	return &NullHistoryStore{}
}

func (s *NullHistoryStore) SaveSummary(ctx context.Context, summary *Summary) error {
	return nil
}

func (s *NullHistoryStore) LoadSummary(ctx context.Context, runID string) (*Summary, error) {
	return nil, nil
}

func (s *NullHistoryStore) ListSummaries(ctx context.Context) ([]*Summary, error) {
	return nil, nil
}

func (s *NullHistoryStore) DeleteSummary(ctx context.Context, runID string) error {
	return nil
}
