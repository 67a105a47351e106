package projections

import (
	"context"

	auditStore "roster/internal/adapters/storage/audit"
	domainAudit "roster/internal/domain/audit"
	domainMember "roster/internal/domain/member"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id int64) (domainMember.Member, error)
	List(ctx context.Context) ([]domainMember.Member, error)
	SearchByName(ctx context.Context, fragment string) ([]domainMember.Member, error)
}

// AuditStore interface for activity log queries.
type AuditStore interface {
	List(ctx context.Context, filter auditStore.Filter, limit int) ([]domainAudit.Event, error)
}

// ListMembersDeps holds dependencies for ListMembers.
type ListMembersDeps struct {
	MemberStore MemberStore
}

// QueryListMembers returns every member.
// PRE: none
// POST: Members in ascending ID order; empty result is not an error
func QueryListMembers(ctx context.Context, deps ListMembersDeps) ([]domainMember.Member, error) {
	return deps.MemberStore.List(ctx)
}

// GetMemberQuery carries query parameters.
type GetMemberQuery struct {
	MemberID int64
}

// GetMemberDeps holds dependencies for GetMember.
type GetMemberDeps struct {
	MemberStore MemberStore
}

// QueryGetMember returns a single member.
// PRE: MemberID > 0
// POST: Returns the member or an error wrapping ErrNotFound
func QueryGetMember(ctx context.Context, query GetMemberQuery, deps GetMemberDeps) (domainMember.Member, error) {
	return deps.MemberStore.GetByID(ctx, query.MemberID)
}

// SearchMembersQuery carries query parameters.
type SearchMembersQuery struct {
	NameFragment string
}

// SearchMembersDeps holds dependencies for SearchMembers.
type SearchMembersDeps struct {
	MemberStore MemberStore
}

// QuerySearchMembers returns members whose name contains the fragment.
// PRE: none
// POST: Matching members ordered by ID; ASCII letters match regardless of case
func QuerySearchMembers(ctx context.Context, query SearchMembersQuery, deps SearchMembersDeps) ([]domainMember.Member, error) {
	return deps.MemberStore.SearchByName(ctx, query.NameFragment)
}

// DefaultActivityLimit caps the activity log view.
const DefaultActivityLimit = 20

// RecentActivityQuery carries query parameters.
type RecentActivityQuery struct {
	Limit int
}

// RecentActivityDeps holds dependencies for RecentActivity.
type RecentActivityDeps struct {
	AuditStore AuditStore
}

// QueryRecentActivity returns the latest member mutations, newest first.
// PRE: none; Limit <= 0 means DefaultActivityLimit
// POST: At most Limit events
func QueryRecentActivity(ctx context.Context, query RecentActivityQuery, deps RecentActivityDeps) ([]domainAudit.Event, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return deps.AuditStore.List(ctx, auditStore.Filter{}, limit)
}
