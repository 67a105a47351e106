package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"roster/internal/domain/audit"
	domain "roster/internal/domain/member"
)

// mockMemberStore is an in-memory MemberStore with the same uniqueness rule as SQLite.
type mockMemberStore struct {
	byID   map[int64]domain.Member
	nextID int64
	failOn string
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{byID: make(map[int64]domain.Member)}
}

// emailTaken reports whether another member already holds email.
func (m *mockMemberStore) emailTaken(email string, except int64) bool {
	if email == "" {
		return false
	}
	for id, mem := range m.byID {
		if id != except && mem.Email == email {
			return true
		}
	}
	return false
}

// Create implements MemberStore.
// PRE: member is valid
// POST: member stored under the next ID
func (m *mockMemberStore) Create(_ context.Context, mem domain.Member) (domain.Member, error) {
	if m.failOn == "create" {
		return domain.Member{}, errors.New("disk full")
	}
	if m.emailTaken(mem.Email, 0) {
		return domain.Member{}, domain.ErrDuplicateEmail
	}
	m.nextID++
	mem.ID = m.nextID
	m.byID[mem.ID] = mem
	return mem, nil
}

// GetByID implements MemberStore.
// PRE: id > 0
// POST: returns member or ErrNotFound
func (m *mockMemberStore) GetByID(_ context.Context, id int64) (domain.Member, error) {
	mem, ok := m.byID[id]
	if !ok {
		return domain.Member{}, fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	return mem, nil
}

// Update implements MemberStore.
// PRE: u is valid
// POST: one field changed
func (m *mockMemberStore) Update(_ context.Context, id int64, u domain.Update) error {
	mem, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if e, isEmail := u.(domain.EmailUpdate); isEmail && m.emailTaken(e.Value, id) {
		return domain.ErrDuplicateEmail
	}
	mem.Apply(u)
	m.byID[id] = mem
	return nil
}

// Delete implements MemberStore.
// PRE: id > 0
// POST: member removed
func (m *mockMemberStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// mockAuditStore collects saved events.
type mockAuditStore struct {
	events  []audit.Event
	saveErr error
}

// Save implements AuditStore.
// PRE: event is valid
// POST: event appended unless saveErr is set
func (m *mockAuditStore) Save(_ context.Context, e audit.Event) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.events = append(m.events, e)
	return nil
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 19, 14, 5, 0, 0, time.UTC) }

func addDeps(s *mockMemberStore, a *mockAuditStore) AddMemberDeps {
	return AddMemberDeps{MemberStore: s, AuditStore: a, Now: fixedNow}
}

// TestExecuteAddMember_StampsDefaults verifies id, join date, status and audit entry.
// PRE: empty store.
// POST: id=1, JoinedOn=2026-10-19, Status=Active, one create event.
func TestExecuteAddMember_StampsDefaults(t *testing.T) {
	store, auditStore := newMockMemberStore(), &mockAuditStore{}

	m, err := ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice", Email: "a@x.com", Phone: "555-1111"}, addDeps(store, auditStore))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != 1 || m.JoinedOn != "2026-10-19" || m.Status != domain.StatusActive {
		t.Errorf("member = %+v", m)
	}
	if len(auditStore.events) != 1 || auditStore.events[0].Action != audit.ActionCreate || auditStore.events[0].MemberID != 1 {
		t.Errorf("audit events = %+v", auditStore.events)
	}
	if !strings.Contains(auditStore.events[0].Description, "Alice") {
		t.Errorf("description = %q", auditStore.events[0].Description)
	}
}

// TestExecuteAddMember_Errors covers validation, duplicate and store failures.
func TestExecuteAddMember_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   AddMemberInput
		failOn  string
		wantErr error
	}{
		{"empty name", AddMemberInput{Name: " ", Email: "z@x.com"}, "", domain.ErrNameRequired},
		{"duplicate email", AddMemberInput{Name: "Eve", Email: "a@x.com"}, "", domain.ErrDuplicateEmail},
		{"store failure", AddMemberInput{Name: "Eve", Email: "e@x.com"}, "create", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, auditStore := newMockMemberStore(), &mockAuditStore{}
			ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice", Email: "a@x.com"}, addDeps(store, auditStore))
			store.failOn = tt.failOn

			_, err := ExecuteAddMember(context.Background(), tt.input, addDeps(store, auditStore))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(store.byID) != 1 {
				t.Errorf("store has %d members, want 1", len(store.byID))
			}
			if len(auditStore.events) != 1 {
				t.Errorf("audit events = %d, want 1", len(auditStore.events))
			}
		})
	}
}

// TestExecuteAddMember_EmptyEmailsAllowed verifies members without email never collide.
func TestExecuteAddMember_EmptyEmailsAllowed(t *testing.T) {
	store := newMockMemberStore()
	for _, name := range []string{"A", "B"} {
		if _, err := ExecuteAddMember(context.Background(), AddMemberInput{Name: name}, addDeps(store, &mockAuditStore{})); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if len(store.byID) != 2 {
		t.Errorf("members = %d, want 2", len(store.byID))
	}
}

// TestExecuteAddMember_AuditFailureIgnored verifies a failed audit write does not fail the add.
func TestExecuteAddMember_AuditFailureIgnored(t *testing.T) {
	store := newMockMemberStore()
	auditStore := &mockAuditStore{saveErr: errors.New("locked")}

	if _, err := ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice"}, addDeps(store, auditStore)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.byID) != 1 {
		t.Errorf("members = %d, want 1", len(store.byID))
	}
}

// TestExecuteUpdateMember_Status verifies a status change keeps other fields, JoinedOn included.
func TestExecuteUpdateMember_Status(t *testing.T) {
	store, auditStore := newMockMemberStore(), &mockAuditStore{}
	before, _ := ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice", Email: "a@x.com", Phone: "555"}, addDeps(store, auditStore))

	deps := UpdateMemberDeps{MemberStore: store, AuditStore: auditStore, Now: fixedNow}
	after, err := ExecuteUpdateMember(context.Background(), UpdateMemberInput{
		MemberID: before.ID,
		Update:   domain.StatusUpdate{Value: domain.StatusInactive},
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := before
	want.Status = domain.StatusInactive
	if after != want {
		t.Errorf("after = %+v, want %+v", after, want)
	}
	if store.byID[before.ID] != want {
		t.Errorf("stored = %+v, want %+v", store.byID[before.ID], want)
	}
	last := auditStore.events[len(auditStore.events)-1]
	if last.Action != audit.ActionUpdate || last.Metadata != "status" {
		t.Errorf("audit = %+v", last)
	}
}

// TestExecuteUpdateMember_Errors covers missing member, duplicate email and blank name.
func TestExecuteUpdateMember_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateMemberInput
		wantErr error
	}{
		{"not found", UpdateMemberInput{MemberID: 99, Update: domain.NameUpdate{Value: "X"}}, domain.ErrNotFound},
		{"duplicate email", UpdateMemberInput{MemberID: 2, Update: domain.EmailUpdate{Value: "a@x.com"}}, domain.ErrDuplicateEmail},
		{"blank name", UpdateMemberInput{MemberID: 1, Update: domain.NameUpdate{Value: ""}}, domain.ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, auditStore := newMockMemberStore(), &mockAuditStore{}
			ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice", Email: "a@x.com"}, addDeps(store, auditStore))
			ExecuteAddMember(context.Background(), AddMemberInput{Name: "Bob", Email: "b@x.com"}, addDeps(store, auditStore))

			deps := UpdateMemberDeps{MemberStore: store, AuditStore: auditStore, Now: fixedNow}
			_, err := ExecuteUpdateMember(context.Background(), tt.input, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if len(auditStore.events) != 2 {
				t.Errorf("audit events = %d, want 2", len(auditStore.events))
			}
		})
	}
}

// TestExecuteUpdateMember_TrimsValues verifies updated values are stored trimmed, like added ones.
// PRE: Alice exists.
// POST: padded name and email are stored without surrounding whitespace; whitespace-only email clears it.
func TestExecuteUpdateMember_TrimsValues(t *testing.T) {
	store, auditStore := newMockMemberStore(), &mockAuditStore{}
	alice, _ := ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice", Email: "a@x.com"}, addDeps(store, auditStore))
	deps := UpdateMemberDeps{MemberStore: store, AuditStore: auditStore, Now: fixedNow}

	tests := []struct {
		update domain.Update
		check  func(domain.Member) bool
	}{
		{domain.NameUpdate{Value: "  Alicia  "}, func(m domain.Member) bool { return m.Name == "Alicia" }},
		{domain.EmailUpdate{Value: " alicia@x.com\t"}, func(m domain.Member) bool { return m.Email == "alicia@x.com" }},
		{domain.EmailUpdate{Value: "   "}, func(m domain.Member) bool { return m.Email == "" }},
	}
	for _, tt := range tests {
		got, err := ExecuteUpdateMember(context.Background(), UpdateMemberInput{MemberID: alice.ID, Update: tt.update}, deps)
		if err != nil {
			t.Fatalf("update %+v: %v", tt.update, err)
		}
		if !tt.check(got) || !tt.check(store.byID[alice.ID]) {
			t.Errorf("update %+v: returned %+v, stored %+v", tt.update, got, store.byID[alice.ID])
		}
	}
}

// TestExecuteUpdateMember_NilUpdate verifies a missing update is rejected.
func TestExecuteUpdateMember_NilUpdate(t *testing.T) {
	_, err := ExecuteUpdateMember(context.Background(), UpdateMemberInput{MemberID: 1}, UpdateMemberDeps{MemberStore: newMockMemberStore()})
	if err == nil {
		t.Error("expected error for nil update")
	}
}

// TestDelete_TwoPhase verifies preview leaves the member and confirm removes it.
func TestDelete_TwoPhase(t *testing.T) {
	store, auditStore := newMockMemberStore(), &mockAuditStore{}
	ExecuteAddMember(context.Background(), AddMemberInput{Name: "Alice"}, addDeps(store, auditStore))
	bob, _ := ExecuteAddMember(context.Background(), AddMemberInput{Name: "Bob"}, addDeps(store, auditStore))
	ctx := context.Background()

	preview, err := ExecutePreviewDelete(ctx, PreviewDeleteInput{MemberID: bob.ID}, PreviewDeleteDeps{MemberStore: store})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Name != "Bob" {
		t.Errorf("preview = %+v", preview)
	}
	if _, ok := store.byID[bob.ID]; !ok {
		t.Fatal("preview must not delete")
	}

	deps := ConfirmDeleteDeps{MemberStore: store, AuditStore: auditStore, Now: fixedNow}
	if err := ExecuteConfirmDelete(ctx, ConfirmDeleteInput{MemberID: bob.ID}, deps); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := ExecutePreviewDelete(ctx, PreviewDeleteInput{MemberID: bob.ID}, PreviewDeleteDeps{MemberStore: store}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("preview after delete err = %v, want ErrNotFound", err)
	}
	last := auditStore.events[len(auditStore.events)-1]
	if last.Action != audit.ActionDelete || last.MemberID != bob.ID {
		t.Errorf("audit = %+v", last)
	}

	if err := ExecuteConfirmDelete(ctx, ConfirmDeleteInput{MemberID: bob.ID}, deps); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
