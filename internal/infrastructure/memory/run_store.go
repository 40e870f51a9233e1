package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/oksasatya/go-ddd-user-approval/internal/application/approval"
)

// RunStore keeps approval runs in process memory. Records are copied through JSON
// so callers never share state with the store.
type RunStore struct {
	mu        sync.RWMutex
	runs      map[string][]byte
	byRequest map[string][]string
}

func NewRunStore() *RunStore {
	return &RunStore{runs: make(map[string][]byte), byRequest: make(map[string][]string)}
}

func (s *RunStore) Save(_ context.Context, run *approval.Run) error {
	b, err := json.Marshal(run)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.runs[run.ID]; !seen {
		s.byRequest[run.RequestID] = append(s.byRequest[run.RequestID], run.ID)
	}
	s.runs[run.ID] = b
	return nil
}

func (s *RunStore) Get(_ context.Context, id string) (*approval.Run, error) {
	s.mu.RLock()
	b, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, approval.ErrRunNotFound
	}
	var run approval.Run
	if err := json.Unmarshal(b, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *RunStore) ListByRequest(ctx context.Context, requestID string) ([]*approval.Run, error) {
	s.mu.RLock()
	ids := append([]string(nil), s.byRequest[requestID]...)
	s.mu.RUnlock()

	out := make([]*approval.Run, 0, len(ids))
	for _, id := range ids {
		run, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, nil
}
