package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roster/internal/domain/audit"
	"roster/internal/domain/member"
)

// UpdateMemberInput carries input for the update orchestrator.
type UpdateMemberInput struct {
	MemberID int64
	Update   member.Update
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStore
	AuditStore  AuditStore
	Now         func() time.Time
}

// ExecuteUpdateMember rewrites one field of an existing member.
// PRE: MemberID > 0; Update is non-nil
// POST: Returns the member as stored after the change
// INVARIANT: ID and JoinedOn are never modified; values are trimmed the same way New trims them
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (member.Member, error) {
	if input.Update == nil {
		return member.Member{}, errors.New("update is required")
	}
	update := member.Normalize(input.Update)
	if err := member.ValidateUpdate(update); err != nil {
		return member.Member{}, err
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return member.Member{}, err
	}

	if err := deps.MemberStore.Update(ctx, input.MemberID, update); err != nil {
		return member.Member{}, fmt.Errorf("update member: %w", err)
	}
	m.Apply(update)

	field := update.Field()
	slog.InfoContext(ctx, "member_event", "event", "member_updated", "member_id", m.ID, "field", field)
	recordAudit(ctx, deps.AuditStore,
		audit.NewEvent(audit.ActionUpdate, m.ID, clock(deps.Now)).
			WithDescription(fmt.Sprintf("%s changed", field)).
			WithMetadata(field))
	return m, nil
}
