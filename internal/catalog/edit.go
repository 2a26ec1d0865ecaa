package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/aoideee/estate-listings/internal/data"
)

var (
	ErrSubmitInFlight = errors.New("catalog: an update is already being submitted")
	ErrNotEditing     = errors.New("catalog: no property is open for editing")
	ErrNotConfirmed   = errors.New("catalog: delete was not confirmed")
)

// Reloader refreshes the listing after a mutation. *Catalog satisfies it.
type Reloader interface {
	Load(ctx context.Context) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(id string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(id string) bool

func (f ConfirmFunc) Confirm(id string) bool { return f(id) }

// EditStatus is the state of an EditSession.
type EditStatus int

const (
	EditIdle EditStatus = iota
	EditLoading
	EditEditing
	EditSubmitting
)

func (s EditStatus) String() string {
	switch s {
	case EditIdle:
		return "idle"
	case EditLoading:
		return "loading"
	case EditEditing:
		return "editing"
	case EditSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Form holds the fields the edit form manages.
type Form struct {
	Title        string
	Description  string
	Price        float64
	Type         string
	Availability string
	City         string
	State        string
	Bedrooms     int
	Bathrooms    float64
	Area         float64
}

// FormFromProperty pre-fills a Form with the current values of p.
func FormFromProperty(p *data.Property) Form {
	return Form{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Type:         p.Type,
		Availability: p.Availability,
		City:         p.City,
		State:        p.State,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
	}
}

// Input builds the partial update payload. Every managed field is sent.
func (f Form) Input() data.PropertyInput {
	return data.PropertyInput{
		Title:        &f.Title,
		Description:  &f.Description,
		Price:        &f.Price,
		Type:         &f.Type,
		Availability: &f.Availability,
		City:         &f.City,
		State:        &f.State,
		Bedrooms:     &f.Bedrooms,
		Bathrooms:    &f.Bathrooms,
		Area:         &f.Area,
	}
}

// EditState is the snapshot an EditSession publishes.
type EditState struct {
	Status  EditStatus
	ID      string
	Form    Form
	Message string
	Failed  bool // Message describes an error
}

// EditSession drives the edit flow for one property at a time:
// Idle → Loading → Editing → Submitting → Idle, or back to Editing with an
// error message when the update is rejected.
type EditSession struct {
	fetcher  Fetcher
	reloader Reloader
	logger   *slog.Logger

	mu          sync.Mutex
	status      EditStatus
	id          string
	form        Form
	message     string
	failed      bool
	subscribers []func(EditState)
}

// NewEditSession returns an idle session. reloader is refreshed after every
// successful update or delete.
func NewEditSession(fetcher Fetcher, reloader Reloader, logger *slog.Logger) *EditSession {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &EditSession{
		fetcher:  fetcher,
		reloader: reloader,
		logger:   logger.With(slog.String("component", "edit_session")),
	}
}

// Subscribe registers fn to receive every EditState published from now on.
func (s *EditSession) Subscribe(fn func(EditState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// State returns the current snapshot.
func (s *EditSession) State() EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *EditSession) snapshotLocked() EditState {
	return EditState{
		Status:  s.status,
		ID:      s.id,
		Form:    s.form,
		Message: s.message,
		Failed:  s.failed,
	}
}

func (s *EditSession) publishLocked() func() {
	state := s.snapshotLocked()
	subs := slices.Clone(s.subscribers)
	return func() {
		for _, fn := range subs {
			fn(state)
		}
	}
}

func (s *EditSession) setLocked(status EditStatus, message string, failed bool) func() {
	s.status = status
	s.message = message
	s.failed = failed
	return s.publishLocked()
}

// Open fetches the property and moves to Editing with a pre-filled form.
// Opening a property for edit is not a view. On failure the session returns
// to Idle with an error message.
func (s *EditSession) Open(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.status == EditSubmitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	s.id = id
	s.form = Form{}
	publish := s.setLocked(EditLoading, "", false)
	s.mu.Unlock()
	publish()

	p, err := peek(ctx, s.fetcher, id)

	s.mu.Lock()
	if err != nil {
		s.id = ""
		publish = s.setLocked(EditIdle, OpenFailedMessage, true)
		s.mu.Unlock()
		s.logger.Error("loading property for edit", slog.String("id", id), slog.String("error", err.Error()))
		publish()
		return err
	}
	s.form = FormFromProperty(p)
	publish = s.setLocked(EditEditing, "", false)
	s.mu.Unlock()
	publish()
	return nil
}

// SetForm replaces the form values while Editing.
func (s *EditSession) SetForm(form Form) error {
	s.mu.Lock()
	if s.status != EditEditing {
		s.mu.Unlock()
		return ErrNotEditing
	}
	s.form = form
	publish := s.setLocked(EditEditing, "", false)
	s.mu.Unlock()
	publish()
	return nil
}

// Submit validates the form, sends the update and refreshes the catalog.
// Validation and server failures leave the session in Editing with a
// message; only one submit may be in flight.
func (s *EditSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.status {
	case EditSubmitting:
		s.mu.Unlock()
		return ErrSubmitInFlight
	case EditEditing:
	default:
		s.mu.Unlock()
		return ErrNotEditing
	}
	id, in := s.id, s.form.Input()
	if err := data.ValidatePatch(in, now()); err != nil {
		publish := s.setLocked(EditEditing, UserMessage(err, UpdateRejectedMessage, UpdateFailedMessage), true)
		s.mu.Unlock()
		publish()
		return err
	}
	publish := s.setLocked(EditSubmitting, "", false)
	s.mu.Unlock()
	publish()

	_, err := s.fetcher.UpdateProperty(ctx, id, in)

	s.mu.Lock()
	if err != nil {
		publish = s.setLocked(EditEditing, UserMessage(err, UpdateRejectedMessage, UpdateFailedMessage), true)
		s.mu.Unlock()
		s.logger.Error("updating property", slog.String("id", id), slog.String("error", err.Error()))
		publish()
		return err
	}
	s.id = ""
	s.form = Form{}
	publish = s.setLocked(EditIdle, PropertyUpdatedMessage, false)
	s.mu.Unlock()

	s.reload(ctx)
	publish()
	return nil
}

// Delete removes the property once confirm approves it and refreshes the
// catalog. A failed delete reports a generic message and changes nothing
// else.
func (s *EditSession) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(id) {
		return ErrNotConfirmed
	}
	if err := s.fetcher.DeleteProperty(ctx, id); err != nil {
		s.logger.Error("deleting property", slog.String("id", id), slog.String("error", err.Error()))
		s.mu.Lock()
		s.message = DeleteFailedMessage
		s.failed = true
		publish := s.publishLocked()
		s.mu.Unlock()
		publish()
		return err
	}
	s.reload(ctx)
	return nil
}

func (s *EditSession) reload(ctx context.Context) {
	if s.reloader == nil {
		return
	}
	if err := s.reloader.Load(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
		s.logger.Warn("reloading catalog", slog.String("error", err.Error()))
	}
}
