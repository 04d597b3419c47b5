package manager

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/protomem/hr-console/internal/api"
	"github.com/protomem/hr-console/internal/model"
	"github.com/protomem/hr-console/internal/validator"
)

type record struct {
	ID   model.ID
	Name string
}

type draft struct {
	Name string
}

type fakeClient struct {
	records []record

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	listErr   error
	mutateErr error

	// onMutate runs inside a mutating call, before it resolves.
	onMutate func()
}

func (c *fakeClient) List(context.Context) ([]record, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.records, nil
}

func (c *fakeClient) Create(_ context.Context, d draft) (string, error) {
	c.createCalls++
	if c.onMutate != nil {
		c.onMutate()
	}
	if c.mutateErr != nil {
		return "", c.mutateErr
	}
	c.records = append(c.records, record{ID: "new", Name: d.Name})
	return "Created successfully", nil
}

func (c *fakeClient) Update(_ context.Context, id model.ID, d draft) (string, error) {
	c.updateCalls++
	if c.mutateErr != nil {
		return "", c.mutateErr
	}
	for i := range c.records {
		if c.records[i].ID == id {
			c.records[i].Name = d.Name
		}
	}
	return "Updated successfully", nil
}

func (c *fakeClient) Delete(_ context.Context, id model.ID) (string, error) {
	c.deleteCalls++
	if c.mutateErr != nil {
		return "", c.mutateErr
	}
	for i := range c.records {
		if c.records[i].ID == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}
	return "Deleted successfully", nil
}

type scriptedUI struct {
	confirmAnswer bool

	confirms []string
	notices  []string
	errs     []string
}

func (ui *scriptedUI) Confirm(prompt string) bool {
	ui.confirms = append(ui.confirms, prompt)
	return ui.confirmAnswer
}

func (ui *scriptedUI) Notify(message string) { ui.notices = append(ui.notices, message) }
func (ui *scriptedUI) Error(message string)  { ui.errs = append(ui.errs, message) }

func newTestManager(client *fakeClient, ui *scriptedUI, onUnauthorized func(string)) *Manager[record, draft] {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New[record, draft](logger, client, ui, Config[record, draft]{
		Resource: "widget",
		Name:     func(r record) string { return r.Name },
		Validate: func(v *validator.Validator, d draft) {
			v.CheckField(validator.NotBlank(d.Name), "name", "cannot be blank")
		},
		OnUnauthorized: onUnauthorized,
	})
}

func TestSearch(t *testing.T) {
	client := &fakeClient{records: []record{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "bob"},
		{ID: "3", Name: "Bobby"},
		{ID: "4", Name: ""},
	}}
	m := newTestManager(client, &scriptedUI{}, nil)
	m.Refresh(context.Background())

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty query matches all", "", 4},
		{"case-insensitive substring", "BOB", 2},
		{"exact", "alice", 1},
		{"no match", "zed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Search(tt.query); len(got) != tt.want {
				t.Errorf("Search(%q) returned %d records, want %d", tt.query, len(got), tt.want)
			}
		})
	}

	if calls := client.listCalls; calls != 1 {
		t.Errorf("search must not touch the network, saw %d list calls", calls)
	}
}

func TestCreate_ValidationBlocksBeforeNetwork(t *testing.T) {
	client := &fakeClient{}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)

	if ok := m.Create(context.Background(), draft{Name: "  "}); ok {
		t.Fatal("expected create to be rejected")
	}

	if client.createCalls != 0 || client.listCalls != 0 {
		t.Errorf("expected zero network calls, got create=%d list=%d", client.createCalls, client.listCalls)
	}
	if len(ui.confirms) != 0 {
		t.Error("validation failure must not reach the confirmation gate")
	}
	if len(ui.errs) != 1 {
		t.Fatalf("expected one validation notice, got %v", ui.errs)
	}
}

func TestCreate_ConfirmDeclinedMakesNoCalls(t *testing.T) {
	client := &fakeClient{}
	ui := &scriptedUI{confirmAnswer: false}
	m := newTestManager(client, ui, nil)

	if ok := m.Create(context.Background(), draft{Name: "Alice"}); ok {
		t.Fatal("expected declined create to report failure")
	}

	if client.createCalls != 0 || client.listCalls != 0 {
		t.Errorf("expected zero network calls, got create=%d list=%d", client.createCalls, client.listCalls)
	}
}

func TestCreate_SuccessRefreshesAndNotifies(t *testing.T) {
	client := &fakeClient{}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)

	if ok := m.Create(context.Background(), draft{Name: "Alice"}); !ok {
		t.Fatal("expected create to succeed")
	}

	if client.createCalls != 1 {
		t.Errorf("got %d create calls, want 1", client.createCalls)
	}
	if client.listCalls != 1 {
		t.Errorf("collection must come from a fresh list, got %d list calls", client.listCalls)
	}
	if len(m.Records()) != 1 || m.Records()[0].Name != "Alice" {
		t.Errorf("got records %+v", m.Records())
	}
	if len(ui.notices) != 1 || ui.notices[0] != "Created successfully" {
		t.Errorf("got notices %v", ui.notices)
	}
}

func TestCreate_ServerErrorSurfacesMessage(t *testing.T) {
	client := &fakeClient{mutateErr: &api.Error{Status: http.StatusBadRequest, Message: "email already in use"}}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)

	if ok := m.Create(context.Background(), draft{Name: "Alice"}); ok {
		t.Fatal("expected create to fail")
	}

	if client.listCalls != 0 {
		t.Error("failed create must not refresh the collection")
	}
	if len(ui.errs) != 1 || ui.errs[0] != "email already in use" {
		t.Errorf("got errors %v", ui.errs)
	}
}

func TestUnauthorizedTearsDownViaHook(t *testing.T) {
	client := &fakeClient{listErr: &api.Error{Status: http.StatusUnauthorized, Message: "Session expired. Please login again."}}
	ui := &scriptedUI{}

	var torn []string
	m := newTestManager(client, ui, func(message string) { torn = append(torn, message) })

	m.records = []record{{ID: "1", Name: "stale"}}
	if ok := m.Refresh(context.Background()); ok {
		t.Fatal("expected refresh to fail")
	}

	if len(torn) != 1 || torn[0] != "Session expired. Please login again." {
		t.Errorf("expected the unauthorized hook to fire once, got %v", torn)
	}
	if len(ui.errs) != 0 {
		t.Errorf("401 must route to the hook, not a plain notice: %v", ui.errs)
	}
	if len(m.Records()) != 0 {
		t.Error("collection must be cleared on a failed refresh")
	}
}

func TestRefresh_FailureClearsCollection(t *testing.T) {
	client := &fakeClient{listErr: errors.New("connection refused")}
	ui := &scriptedUI{}
	m := newTestManager(client, ui, nil)

	m.records = []record{{ID: "1", Name: "stale"}}
	m.Refresh(context.Background())

	if len(m.Records()) != 0 {
		t.Error("collection must be cleared, not left stale")
	}
	if len(ui.errs) != 1 {
		t.Errorf("expected one error notice, got %v", ui.errs)
	}
}

func TestDelete_DeclinedLeavesCollectionUntouched(t *testing.T) {
	client := &fakeClient{records: []record{{ID: "1", Name: "Alice"}}}
	ui := &scriptedUI{confirmAnswer: false}
	m := newTestManager(client, ui, nil)
	m.Refresh(context.Background())
	client.listCalls = 0

	if ok := m.Delete(context.Background(), "1"); ok {
		t.Fatal("expected declined delete to report failure")
	}

	if client.deleteCalls != 0 || client.listCalls != 0 {
		t.Errorf("expected zero network calls, got delete=%d list=%d", client.deleteCalls, client.listCalls)
	}
	if len(m.Records()) != 1 {
		t.Errorf("collection changed: %+v", m.Records())
	}
}

func TestDelete_SuccessRefreshes(t *testing.T) {
	client := &fakeClient{records: []record{{ID: "1", Name: "Alice"}}}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)
	m.Refresh(context.Background())

	if ok := m.Delete(context.Background(), "1"); !ok {
		t.Fatal("expected delete to succeed")
	}
	if len(m.Records()) != 0 {
		t.Errorf("got records %+v", m.Records())
	}
	if len(ui.confirms) != 1 {
		t.Fatalf("expected one confirmation, got %v", ui.confirms)
	}
}

func TestUpdate_SuccessRefreshes(t *testing.T) {
	client := &fakeClient{records: []record{{ID: "1", Name: "Alice"}}}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)
	m.Refresh(context.Background())

	if ok := m.Update(context.Background(), "1", draft{Name: "Alice B"}); !ok {
		t.Fatal("expected update to succeed")
	}
	if m.Records()[0].Name != "Alice B" {
		t.Errorf("got records %+v", m.Records())
	}
}

func TestMutationInFlightRejectsAnotherMutation(t *testing.T) {
	client := &fakeClient{}
	ui := &scriptedUI{confirmAnswer: true}
	m := newTestManager(client, ui, nil)

	client.onMutate = func() {
		if !m.Mutating() {
			t.Error("expected mutating flag to be set during the call")
		}
		if ok := m.Delete(context.Background(), "1"); ok {
			t.Error("expected nested delete to be rejected")
		}
	}

	if ok := m.Create(context.Background(), draft{Name: "Alice"}); !ok {
		t.Fatal("expected outer create to succeed")
	}

	if client.deleteCalls != 0 {
		t.Errorf("nested delete reached the network: %d calls", client.deleteCalls)
	}
	if m.Mutating() {
		t.Error("mutating flag must clear once the call resolves")
	}
}
