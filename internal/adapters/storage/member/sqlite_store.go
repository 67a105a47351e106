package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"roster/internal/adapters/storage"
	domain "roster/internal/domain/member"
)

const selectColumns = "SELECT member_id, name, email, phone, membership_date, status FROM members"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Create inserts a new Member.
// PRE: entity has been validated; entity.ID is ignored
// POST: Row persisted with a fresh ID, or ErrDuplicateEmail and nothing written
// INVARIANT: Empty email is stored as NULL so it never collides
func (s *SQLiteStore) Create(ctx context.Context, entity domain.Member) (domain.Member, error) {
	status := entity.Status
	if status == "" {
		status = domain.StatusActive
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO members (name, email, phone, membership_date, status) VALUES (?, ?, ?, ?, ?)",
		entity.Name,
		nullable(entity.Email),
		nullable(entity.Phone),
		entity.JoinedOn,
		status,
	)
	if err != nil {
		return domain.Member{}, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Member{}, err
	}
	entity.ID = id
	entity.Status = status
	return entity, nil
}

// GetByID retrieves a Member by its ID.
// PRE: id > 0
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE member_id = ?", id)
	entity, err := scanMember(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	return entity, err
}

// List retrieves all Members.
// PRE: none
// POST: Returns entities in insertion order; empty slice when the table is empty
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+" ORDER BY member_id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// SearchByName finds members whose name contains fragment (ASCII case-insensitive LIKE).
// PRE: none; an empty fragment matches every member
// POST: Returns matching members ordered by ID
// INVARIANT: LIKE wildcards in fragment match literally
func (s *SQLiteStore) SearchByName(ctx context.Context, fragment string) ([]domain.Member, error) {
	q := selectColumns + ` WHERE name LIKE ? ESCAPE '\' ORDER BY member_id ASC`
	rows, err := s.db.QueryContext(ctx, q, "%"+escapeLike(fragment)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// Update rewrites one column of a Member.
// PRE: u has passed domain.ValidateUpdate
// POST: Exactly one column changed, or an error and nothing changed
func (s *SQLiteStore) Update(ctx context.Context, id int64, u domain.Update) error {
	var (
		column string
		value  any
	)
	switch v := u.(type) {
	case domain.NameUpdate:
		column, value = "name", v.Value
	case domain.EmailUpdate:
		column, value = "email", nullable(v.Value)
	case domain.PhoneUpdate:
		column, value = "phone", nullable(v.Value)
	case domain.StatusUpdate:
		column, value = "status", v.Value
	default:
		return fmt.Errorf("unsupported member update %T", u)
	}

	res, err := s.db.ExecContext(ctx, "UPDATE members SET "+column+" = ? WHERE member_id = ?", value, id)
	if err != nil {
		return translateErr(err)
	}
	return requireRow(res, id)
}

// Delete removes a Member from the database.
// PRE: id > 0
// POST: Row removed, or ErrNotFound if it did not exist
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE member_id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (domain.Member, error) {
	var entity domain.Member
	var email, phone sql.NullString
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&email,
		&phone,
		&entity.JoinedOn,
		&entity.Status,
	)
	if err != nil {
		return domain.Member{}, err
	}
	entity.Email = email.String
	entity.Phone = phone.String
	return entity, nil
}

func scanMembers(rows *sql.Rows) ([]domain.Member, error) {
	results := []domain.Member{}
	for rows.Next() {
		entity, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("member %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// translateErr maps a unique constraint violation to ErrDuplicateEmail.
// email is the only UNIQUE column besides the primary key.
func translateErr(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch code := sqliteErr.Code(); {
	case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		code == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"):
		return fmt.Errorf("%w: %v", domain.ErrDuplicateEmail, err)
	}
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
