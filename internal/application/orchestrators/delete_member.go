package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"roster/internal/domain/audit"
	"roster/internal/domain/member"
)

// PreviewDeleteInput carries input for the delete preview.
type PreviewDeleteInput struct {
	MemberID int64
}

// PreviewDeleteDeps holds dependencies for PreviewDelete.
type PreviewDeleteDeps struct {
	MemberStore MemberStore
}

// ExecutePreviewDelete returns the member a delete would remove, without removing it.
// PRE: MemberID > 0
// POST: Store unchanged; returns the member or ErrNotFound
func ExecutePreviewDelete(ctx context.Context, input PreviewDeleteInput, deps PreviewDeleteDeps) (member.Member, error) {
	return deps.MemberStore.GetByID(ctx, input.MemberID)
}

// ConfirmDeleteInput carries input for the destructive delete.
type ConfirmDeleteInput struct {
	MemberID int64
}

// ConfirmDeleteDeps holds dependencies for ConfirmDelete.
type ConfirmDeleteDeps struct {
	MemberStore MemberStore
	AuditStore  AuditStore
	Now         func() time.Time
}

// ExecuteConfirmDelete removes a member immediately. Asking the operator first is the caller's job.
// PRE: MemberID > 0
// POST: Member removed, or ErrNotFound and nothing changed
func ExecuteConfirmDelete(ctx context.Context, input ConfirmDeleteInput, deps ConfirmDeleteDeps) error {
	if err := deps.MemberStore.Delete(ctx, input.MemberID); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}

	slog.InfoContext(ctx, "member_event", "event", "member_deleted", "member_id", input.MemberID)
	recordAudit(ctx, deps.AuditStore,
		audit.NewEvent(audit.ActionDelete, input.MemberID, clock(deps.Now)).
			WithDescription("member deleted"))
	return nil
}
