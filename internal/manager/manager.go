package manager

import (
	"context"
	"log/slog"
	"strings"

	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/model"
	"github.com/protomem/hr-console/internal/validator"
)

// Client is the REST surface a managed resource needs: one list endpoint and
// the three mutations, each returning the service's notice message.
type Client[R, D any] interface {
	List(ctx context.Context) ([]R, error)
	Create(ctx context.Context, draft D) (string, error)
	Update(ctx context.Context, id model.ID, draft D) (string, error)
	Delete(ctx context.Context, id model.ID) (string, error)
}

// UI is the blocking notice surface a screen provides. Confirm gates every
// mutation; Notify and Error acknowledge outcomes.
type UI interface {
	Confirm(prompt string) bool
	Notify(message string)
	Error(message string)
}

// Config parameterizes one resource screen.
type Config[R, D any] struct {
	// Resource is the singular display name, e.g. "employee".
	Resource string

	// Name extracts the display name a record is searched by.
	Name func(R) string

	// Validate accumulates required-field failures for a draft. A failed
	// validation blocks the mutation before any request is made.
	Validate func(v *validator.Validator, draft D)

	// OnUnauthorized is invoked instead of a plain error notice when the
	// service answers 401: the session must be torn down and the user
	// returned to the login screen.
	OnUnauthorized func(message string)
}

// Manager owns the in-memory collection for one resource screen and runs the
// validate -> confirm -> request -> notify -> refresh protocol every
// mutation follows. Reads and writes track separate in-flight flags so a
// slow list never blocks the form controls.
type Manager[R, D any] struct {
	Logger *slog.Logger

	cfg    Config[R, D]
	client Client[R, D]
	ui     UI

	records  []R
	loading  bool
	mutating bool
}

func New[R, D any](logger *slog.Logger, client Client[R, D], ui UI, cfg Config[R, D]) *Manager[R, D] {
	return &Manager[R, D]{
		Logger: logger.With("manager", cfg.Resource),
		cfg:    cfg,
		client: client,
		ui:     ui,
	}
}

// Records returns the collection as of the last refresh.
func (m *Manager[R, D]) Records() []R {
	return m.records
}

// Loading reports whether a list fetch is in flight.
func (m *Manager[R, D]) Loading() bool {
	return m.loading
}

// Mutating reports whether a create, update or delete is in flight; screens
// disable their mutating controls while it holds.
func (m *Manager[R, D]) Mutating() bool {
	return m.mutating
}

// Refresh replaces the collection from the service. On failure the
// collection is cleared rather than left stale, and the error is surfaced.
func (m *Manager[R, D]) Refresh(ctx context.Context) bool {
	m.loading = true
	defer func() { m.loading = false }()

	records, err := m.client.List(ctx)
	if err != nil {
		m.records = nil
		m.fail(err)
		return false
	}

	m.records = records
	m.Logger.Debug("refreshed", "count", len(records))

	return true
}

// Search filters the in-memory collection by case-insensitive substring
// match on the record name. It never touches the network. An empty query
// matches everything; records without a name match only the empty query.
func (m *Manager[R, D]) Search(query string) []R {
	query = strings.ToLower(query)

	matched := make([]R, 0, len(m.records))
	for _, record := range m.records {
		if strings.Contains(strings.ToLower(m.cfg.Name(record)), query) {
			matched = append(matched, record)
		}
	}

	return matched
}

// Create validates the draft, asks for confirmation and submits it. On
// success the service message is surfaced and the collection refreshed; the
// caller resets its form only when true is returned.
func (m *Manager[R, D]) Create(ctx context.Context, draft D) bool {
	return m.mutate(ctx, "Add this "+m.cfg.Resource+"?", draft, func(ctx context.Context, draft D) (string, error) {
		return m.client.Create(ctx, draft)
	})
}

// Update runs the same gate as Create for an existing record.
func (m *Manager[R, D]) Update(ctx context.Context, id model.ID, draft D) bool {
	return m.mutate(ctx, "Save changes to this "+m.cfg.Resource+"?", draft, func(ctx context.Context, draft D) (string, error) {
		return m.client.Update(ctx, id, draft)
	})
}

// Delete confirms and removes a record. There is no draft to validate.
func (m *Manager[R, D]) Delete(ctx context.Context, id model.ID) bool {
	if m.rejectWhileMutating() {
		return false
	}

	if !m.ui.Confirm("Are you sure you want to delete this " + m.cfg.Resource + "? This cannot be undone.") {
		return false
	}

	m.mutating = true
	defer func() { m.mutating = false }()

	message, err := m.client.Delete(ctx, id)
	if err != nil {
		m.fail(err)
		return false
	}

	m.notify(message)
	m.Refresh(ctx)

	return true
}

func (m *Manager[R, D]) mutate(ctx context.Context, prompt string, draft D, call func(context.Context, D) (string, error)) bool {
	if m.rejectWhileMutating() {
		return false
	}

	var v validator.Validator
	if m.cfg.Validate != nil {
		m.cfg.Validate(&v, draft)
	}
	if v.HasErrors() {
		m.ui.Error(v.Summary())
		return false
	}

	if !m.ui.Confirm(prompt) {
		return false
	}

	m.mutating = true
	defer func() { m.mutating = false }()

	message, err := call(ctx, draft)
	if err != nil {
		m.fail(err)
		return false
	}

	m.notify(message)
	m.Refresh(ctx)

	return true
}

func (m *Manager[R, D]) rejectWhileMutating() bool {
	if m.mutating {
		m.ui.Error("Another change is still in progress.")
		return true
	}
	return false
}

func (m *Manager[R, D]) notify(message string) {
	if message == "" {
		message = "Done."
	}
	m.ui.Notify(message)
}

func (m *Manager[R, D]) fail(err error) {
	m.Logger.Warn("operation failed", "error", err)

	if api.IsUnauthorized(err) && m.cfg.OnUnauthorized != nil {
		m.cfg.OnUnauthorized(api.Message(err))
		return
	}

	m.ui.Error(api.Message(err))
}
