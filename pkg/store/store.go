package store

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// Listener is notified with a snapshot of the state after each transition.
// Listeners run one at a time, in the order the transitions were applied.
// They may read the store but must not dispatch on it; a listener that
// triggers a transition on the same store blocks forever.
type Listener func(State)

// Store owns the state of one form-builder session. All methods are safe for
// concurrent use; transitions are applied one at a time.
type Store struct {
	mu        sync.RWMutex
	state     State
	reducer   *Reducer
	factory   *model.Factory
	evaluator visibility.Evaluator
	log       logrus.FieldLogger

	// issued is guarded by mu; delivered by turnMu. A transition takes
	// ticket issued, then waits until delivered reaches it before notifying.
	issued    uint64
	delivered uint64
	turnMu    sync.Mutex
	turn      *sync.Cond

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// New creates an empty session.
func New(options ...Option) *Store {
	cfg := newConfig(options)
	state := NewState()
	if cfg.initial != nil {
		state = *cfg.initial
		if state.FormData == nil {
			state.FormData = model.FormData{}
		}
		if state.Errors == nil {
			state.Errors = map[string]string{}
		}
	}
	s := &Store{
		state:     state,
		reducer:   cfg.reducer(),
		factory:   cfg.factory,
		evaluator: cfg.visibility,
		log:       cfg.log,
		listeners: make(map[int]Listener),
	}
	s.turn = sync.NewCond(&s.turnMu)
	return s
}

// Dispatch applies action and returns a copy of the resulting state.
func (s *Store) Dispatch(action Action) State {
	return s.transact(func(state State) State {
		return s.reducer.Reduce(state, action)
	})
}

// transact runs fn against the current state under the write lock, so
// multi-step operations are observed as a single transition.
func (s *Store) transact(fn func(State) State) State {
	s.mu.Lock()
	s.state = fn(s.state)
	snapshot := s.state.Clone()
	ticket := s.issued
	s.issued++
	s.mu.Unlock()

	s.waitTurn(ticket)
	defer s.endTurn()
	s.notify(snapshot)
	return snapshot
}

func (s *Store) waitTurn(ticket uint64) {
	s.turnMu.Lock()
	for s.delivered != ticket {
		s.turn.Wait()
	}
	s.turnMu.Unlock()
}

func (s *Store) endTurn() {
	s.turnMu.Lock()
	s.delivered++
	s.turn.Broadcast()
	s.turnMu.Unlock()
}

// Subscribe registers fn to run after every transition. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) notify(snapshot State) {
	s.listenersMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Fields returns a copy of the field list.
func (s *Store) Fields() []model.Field {
	return s.State().Fields
}

// Field returns a copy of the field with id.
func (s *Store) Field(id string) (model.Field, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	field, ok := s.state.Field(id)
	if !ok {
		return model.Field{}, false
	}
	return field.Clone(), true
}

// FormData returns a copy of the entered values.
func (s *Store) FormData() model.FormData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FormData.Clone()
}

// Errors returns a copy of the per-field messages.
func (s *Store) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneErrors(s.state.Errors)
}

// Error returns the current message for id, or "" when it has none.
func (s *Store) Error(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Errors[id]
}

// HasErrors reports whether any field currently carries a message.
func (s *Store) HasErrors() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasErrors()
}

// ActiveField returns the field selected for editing.
func (s *Store) ActiveField() (model.Field, bool) {
	s.mu.RLock()
	id := s.state.ActiveFieldID
	s.mu.RUnlock()
	if id == "" {
		return model.Field{}, false
	}
	return s.Field(id)
}

// AddField creates a field of type t under parentID ("" for the root),
// appends it and selects it. The stored field is returned.
func (s *Store) AddField(t model.FieldType, parentID string) model.Field {
	return s.add(s.factory.CreateField(t, "", parentID, nil))
}

// AddSection creates a section under parentID, appends it and selects it.
func (s *Store) AddSection(parentID string) model.Field {
	return s.add(s.factory.CreateSection("", parentID))
}

func (s *Store) add(field model.Field) model.Field {
	state := s.transact(func(state State) State {
		state = s.reducer.Reduce(state, AddField{Field: field})
		return s.reducer.Reduce(state, SetActiveField{FieldID: field.ID})
	})
	stored, _ := state.Field(field.ID)
	return stored
}

// CloneField copies the field with id, places the copy directly after the
// original and selects it. Children of a section are not copied.
func (s *Store) CloneField(id string) (model.Field, bool) {
	original, ok := s.Field(id)
	if !ok {
		s.log.WithField("field_id", id).Debug("store: clone of unknown field ignored")
		return model.Field{}, false
	}
	clone := s.factory.CloneField(original)

	snapshot := s.transact(func(state State) State {
		state = s.reducer.Reduce(state, AddField{Field: clone})
		from := indexOf(state.Fields, clone.ID)
		to := indexOf(state.Fields, id) + 1
		state = s.reducer.Reduce(state, ReorderFields{Source: from, Destination: to})
		return s.reducer.Reduce(state, SetActiveField{FieldID: clone.ID})
	})
	stored, _ := snapshot.Field(clone.ID)
	return stored, true
}

// UpdateField replaces the stored field with the same id. Unknown ids are
// ignored.
func (s *Store) UpdateField(field model.Field) {
	s.Dispatch(UpdateField{Field: field})
}

// RemoveField removes the field with id, every descendant and their values
// and errors. When the active field is among the removed fields the selection
// is cleared.
func (s *Store) RemoveField(id string) {
	s.transact(func(state State) State {
		active := state.ActiveFieldID
		state = s.reducer.Reduce(state, RemoveField{FieldID: id})
		if active == "" {
			return state
		}
		if _, still := state.Field(active); !still {
			state = s.reducer.Reduce(state, SetActiveField{FieldID: ""})
		}
		return state
	})
}

// SetFormData replaces every entered value. Errors are left untouched.
func (s *Store) SetFormData(data model.FormData) {
	s.Dispatch(SetFormData{Data: data})
}

// UpdateFormData stores value for the field with id and revalidates it in the
// same transition.
func (s *Store) UpdateFormData(id string, value any) {
	s.Dispatch(UpdateFormData{FieldID: id, Value: value})
}

// SetActiveField selects the field with id; "" clears the selection.
func (s *Store) SetActiveField(id string) {
	s.Dispatch(SetActiveField{FieldID: id})
}

// ValidateField recomputes the error of the field with id.
func (s *Store) ValidateField(id string) {
	s.Dispatch(ValidateField{FieldID: id})
}

// ValidateAllFields recomputes every error and reports whether the form is
// valid afterwards.
func (s *Store) ValidateAllFields() bool {
	state := s.Dispatch(ValidateAllFields{})
	return !state.HasErrors()
}

// ReorderFields moves the field at position source to position destination.
func (s *Store) ReorderFields(source, destination int) {
	s.Dispatch(ReorderFields{Source: source, Destination: destination})
}

// IsFieldVisible reports whether the condition of field holds for the
// current values. Visibility is computed on every call, never stored.
func (s *Store) IsFieldVisible(field model.Field) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.evaluator.Eval(field.Conditional, s.state.FormData)
}
