package update

import "github.com/recaplabs/recapd/internal/model"

// RecapStore is the single authoritative holder of recap view state. It is a
// plain state container: setters replace fields wholesale and carry no
// validation or ordering logic. Ordering discipline lives in the sync layer,
// which is the only writer besides preference edits.
type RecapStore struct {
	current    *model.Recap
	isLoading  bool
	err        string
	isExpanded bool
}

// Snapshot is the read-only view handed to rendering.
type Snapshot struct {
	CurrentRecap *model.Recap
	IsLoading    bool
	Err          string
	IsExpanded   bool
}

func NewRecapStore() *RecapStore {
	return &RecapStore{}
}

func (s *RecapStore) SetCurrentRecap(r *model.Recap) {
	s.current = r
}

func (s *RecapStore) SetLoading(v bool) {
	s.isLoading = v
}

func (s *RecapStore) SetError(msg string) {
	s.err = msg
}

func (s *RecapStore) SetExpanded(v bool) {
	s.isExpanded = v
}

func (s *RecapStore) Current() *model.Recap {
	return s.current
}

func (s *RecapStore) IsLoading() bool {
	return s.isLoading
}

func (s *RecapStore) Err() string {
	return s.err
}

func (s *RecapStore) IsExpanded() bool {
	return s.isExpanded
}

func (s *RecapStore) Snapshot() Snapshot {
	return Snapshot{
		CurrentRecap: s.current,
		IsLoading:    s.isLoading,
		Err:          s.err,
		IsExpanded:   s.isExpanded,
	}
}
