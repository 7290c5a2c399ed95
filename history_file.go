package routine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileHistoryStore is a file-based implementation of HistoryStore that
// persists one JSON document per run under a data directory.
type FileHistoryStore struct {
	dataDir string
}

// NewFileHistoryStore creates a file-based history store rooted at dataDir.
// An empty dataDir defaults to ~/.aurorae/routines/history.
func NewFileHistoryStore(dataDir string) (*FileHistoryStore, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".aurorae", "routines", "history")
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory %s: %w", dataDir, err)
	}
	return &FileHistoryStore{dataDir: dataDir}, nil
}

func (s *FileHistoryStore) summaryPath(runID string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s.json", runID))
}

// SaveSummary writes the run summary as pretty-printed JSON.
func (s *FileHistoryStore) SaveSummary(ctx context.Context, summary *Summary) error {
	if summary.RunID == "" {
		return fmt.Errorf("summary run ID required")
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(s.summaryPath(summary.RunID), data, 0644); err != nil {
		return fmt.Errorf("failed to write summary file: %w", err)
	}
	return nil
}

// LoadSummary reads one run summary. A missing file yields (nil, nil).
func (s *FileHistoryStore) LoadSummary(ctx context.Context, runID string) (*Summary, error) {
	data, err := os.ReadFile(s.summaryPath(runID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read summary file: %w", err)
	}
	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &summary, nil
}

// ListSummaries reads every stored summary, most recently finished first.
func (s *FileHistoryStore) ListSummaries(ctx context.Context) ([]*Summary, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}
	var summaries []*Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		runID := strings.TrimSuffix(entry.Name(), ".json")
		summary, err := s.LoadSummary(ctx, runID)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			summaries = append(summaries, summary)
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].FinishedAt.After(summaries[j].FinishedAt)
	})
	return summaries, nil
}

// DeleteSummary removes a stored summary. Deleting a missing run is not an
// error.
func (s *FileHistoryStore) DeleteSummary(ctx context.Context, runID string) error {
	err := os.Remove(s.summaryPath(runID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete summary file: %w", err)
	}
	return nil
}
