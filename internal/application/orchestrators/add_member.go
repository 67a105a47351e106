package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"roster/internal/domain/audit"
	"roster/internal/domain/member"
)

// MemberStore defines the member persistence needed by the command orchestrators.
type MemberStore interface {
	Create(ctx context.Context, m member.Member) (member.Member, error)
	GetByID(ctx context.Context, id int64) (member.Member, error)
	Update(ctx context.Context, id int64, u member.Update) error
	Delete(ctx context.Context, id int64) error
}

// AuditStore records member mutations in the activity log.
type AuditStore interface {
	Save(ctx context.Context, event audit.Event) error
}

// AddMemberInput carries input for the orchestrator.
type AddMemberInput struct {
	Name  string
	Email string
	Phone string
}

// AddMemberDeps holds dependencies for AddMember.
type AddMemberDeps struct {
	MemberStore MemberStore
	AuditStore  AuditStore
	Now         func() time.Time
}

// ExecuteAddMember coordinates member creation.
// PRE: non-empty name; email optional
// POST: Member persisted with generated ID, JoinedOn=today, Status=Active
// INVARIANT: Non-empty email must be unique (enforced by store)
func ExecuteAddMember(ctx context.Context, input AddMemberInput, deps AddMemberDeps) (member.Member, error) {
	now := clock(deps.Now)

	m, err := member.New(input.Name, input.Email, input.Phone, now)
	if err != nil {
		return member.Member{}, err
	}

	created, err := deps.MemberStore.Create(ctx, m)
	if err != nil {
		return member.Member{}, fmt.Errorf("add member: %w", err)
	}

	slog.InfoContext(ctx, "member_event", "event", "member_added", "member_id", created.ID)
	recordAudit(ctx, deps.AuditStore,
		audit.NewEvent(audit.ActionCreate, created.ID, now).
			WithDescription(fmt.Sprintf("member '%s' added", created.Name)))
	return created, nil
}

// clock returns now() or the wall clock when now is nil.
func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now()
	}
	return now()
}

// recordAudit saves an activity log entry. A failure is logged, never returned:
// the member change has already been committed.
func recordAudit(ctx context.Context, store AuditStore, event audit.Event) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, event); err != nil {
		slog.WarnContext(ctx, "audit_write_failed",
			"action", string(event.Action),
			"member_id", event.MemberID,
			"error", err,
		)
	}
}
