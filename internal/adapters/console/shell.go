package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"roster/internal/application/orchestrators"
	"roster/internal/application/projections"
	domainMember "roster/internal/domain/member"
)

// ErrInvalidInput marks operator input rejected before any store call.
var ErrInvalidInput = errors.New("invalid input")

type inputError struct{ msg string }

func (e inputError) Error() string        { return e.msg }
func (e inputError) Is(target error) bool { return target == ErrInvalidInput }

func invalidInput(msg string) error { return inputError{msg: msg} }

// MemberStore is everything the shell needs from member storage.
type MemberStore interface {
	orchestrators.MemberStore
	projections.MemberStore
}

// AuditStore is everything the shell needs from the activity log.
type AuditStore interface {
	orchestrators.AuditStore
	projections.AuditStore
}

// Deps holds the shell's collaborators.
type Deps struct {
	MemberStore MemberStore
	AuditStore  AuditStore
	Now         func() time.Time
}

// Shell is the interactive numbered-menu front end.
type Shell struct {
	in   *bufio.Scanner
	out  io.Writer
	deps Deps
}

// New creates a Shell reading lines from in and writing to out.
func New(in io.Reader, out io.Writer, deps Deps) *Shell {
	return &Shell{in: bufio.NewScanner(in), out: out, deps: deps}
}

const (
	banner    = "=================================================="
	maxOption = 7
)

// Run loops over the menu until Exit is chosen or input ends.
// PRE: deps are wired
// POST: Returns nil on Exit or end of input; a non-nil error only for read failures
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.menu()
		choice, err := s.prompt(fmt.Sprintf("\nENTER YOUR CHOICE (1-%d): ", maxOption))
		if err != nil {
			return s.finish(err)
		}

		if choice == strconv.Itoa(maxOption) {
			s.println("\nThank you for using the Library Member Management System!")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			var readErr scanError
			if errors.Is(err, io.EOF) || errors.As(err, &readErr) {
				return s.finish(err)
			}
			s.report(err)
		}

		if _, err := s.prompt("\nPress Enter to continue..."); err != nil {
			return s.finish(err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return s.addMember(ctx)
	case "2":
		return s.viewAll(ctx)
	case "3":
		return s.search(ctx)
	case "4":
		return s.updateMember(ctx)
	case "5":
		return s.deleteMember(ctx)
	case "6":
		return s.recentActivity(ctx)
	default:
		return invalidInput(fmt.Sprintf("Invalid choice! Please enter a number between 1-%d.", maxOption))
	}
}

func (s *Shell) menu() {
	s.println("\n" + banner)
	s.println("      LIBRARY MEMBER MANAGEMENT SYSTEM")
	s.println(banner)
	s.println("1. Add New Member")
	s.println("2. View All Members")
	s.println("3. Search Member")
	s.println("4. Update Member")
	s.println("5. Delete Member")
	s.println("6. Recent Activity")
	s.println("7. Exit")
	s.println(banner)
}

func (s *Shell) addMember(ctx context.Context) error {
	s.println("\n--- ADD NEW MEMBER ---")
	name, err := s.prompt("Enter member name: ")
	if err != nil {
		return err
	}
	email, err := s.prompt("Enter email: ")
	if err != nil {
		return err
	}
	phone, err := s.prompt("Enter phone number: ")
	if err != nil {
		return err
	}

	m, err := orchestrators.ExecuteAddMember(ctx, orchestrators.AddMemberInput{
		Name:  name,
		Email: email,
		Phone: phone,
	}, orchestrators.AddMemberDeps{
		MemberStore: s.deps.MemberStore,
		AuditStore:  s.deps.AuditStore,
		Now:         s.deps.Now,
	})
	if err != nil {
		return err
	}
	s.printf("✅ Member '%s' added successfully! (ID %d)\n", m.Name, m.ID)
	return nil
}

func (s *Shell) viewAll(ctx context.Context) error {
	s.println("\n--- ALL LIBRARY MEMBERS ---")
	members, err := projections.QueryListMembers(ctx, projections.ListMembersDeps{MemberStore: s.deps.MemberStore})
	if err != nil {
		return err
	}
	if len(members) == 0 {
		s.println("No members found in the database.")
		return nil
	}
	RenderMembers(s.out, members)
	return nil
}

func (s *Shell) search(ctx context.Context) error {
	s.println("\n--- SEARCH MEMBER ---")
	s.println("1. Search by ID")
	s.println("2. Search by Name")
	choice, err := s.prompt("Choose search method (1-2): ")
	if err != nil {
		return err
	}

	var members []domainMember.Member
	switch choice {
	case "1":
		id, err := s.promptID("Enter member ID: ")
		if err != nil {
			return err
		}
		m, err := projections.QueryGetMember(ctx, projections.GetMemberQuery{MemberID: id},
			projections.GetMemberDeps{MemberStore: s.deps.MemberStore})
		if errors.Is(err, domainMember.ErrNotFound) {
			break
		}
		if err != nil {
			return err
		}
		members = append(members, m)
	case "2":
		name, err := s.prompt("Enter member name: ")
		if err != nil {
			return err
		}
		members, err = projections.QuerySearchMembers(ctx, projections.SearchMembersQuery{NameFragment: name},
			projections.SearchMembersDeps{MemberStore: s.deps.MemberStore})
		if err != nil {
			return err
		}
	default:
		return invalidInput("Invalid choice!")
	}

	if len(members) == 0 {
		s.println("❌ No members found matching your criteria.")
		return nil
	}
	RenderMembers(s.out, members)
	return nil
}

func (s *Shell) updateMember(ctx context.Context) error {
	s.println("\n--- UPDATE MEMBER ---")
	id, err := s.promptID("Enter member ID to update: ")
	if err != nil {
		return err
	}
	m, err := projections.QueryGetMember(ctx, projections.GetMemberQuery{MemberID: id},
		projections.GetMemberDeps{MemberStore: s.deps.MemberStore})
	if err != nil {
		return err
	}

	s.printf("\nCurrent details for Member ID %d:\n", m.ID)
	s.printf("Name: %s\nEmail: %s\nPhone: %s\nStatus: %s\n", m.Name, m.Email, m.Phone, m.Status)
	s.println("\nWhat would you like to update?")
	s.println("1. Name")
	s.println("2. Email")
	s.println("3. Phone")
	s.println("4. Status")
	choice, err := s.prompt("Enter your choice (1-4): ")
	if err != nil {
		return err
	}

	var label string
	var build func(string) domainMember.Update
	switch choice {
	case "1":
		label, build = "Enter new name: ", func(v string) domainMember.Update { return domainMember.NameUpdate{Value: v} }
	case "2":
		label, build = "Enter new email: ", func(v string) domainMember.Update { return domainMember.EmailUpdate{Value: v} }
	case "3":
		label, build = "Enter new phone: ", func(v string) domainMember.Update { return domainMember.PhoneUpdate{Value: v} }
	case "4":
		label, build = "Enter new status (Active/Inactive): ", func(v string) domainMember.Update { return domainMember.StatusUpdate{Value: v} }
	default:
		return invalidInput("Invalid choice!")
	}

	value, err := s.prompt(label)
	if err != nil {
		return err
	}
	_, err = orchestrators.ExecuteUpdateMember(ctx, orchestrators.UpdateMemberInput{
		MemberID: id,
		Update:   build(value),
	}, orchestrators.UpdateMemberDeps{
		MemberStore: s.deps.MemberStore,
		AuditStore:  s.deps.AuditStore,
		Now:         s.deps.Now,
	})
	if err != nil {
		return err
	}
	s.println("✅ Member updated successfully!")
	return nil
}

func (s *Shell) deleteMember(ctx context.Context) error {
	s.println("\n--- DELETE MEMBER ---")
	id, err := s.promptID("Enter member ID to delete: ")
	if err != nil {
		return err
	}
	m, err := orchestrators.ExecutePreviewDelete(ctx, orchestrators.PreviewDeleteInput{MemberID: id},
		orchestrators.PreviewDeleteDeps{MemberStore: s.deps.MemberStore})
	if err != nil {
		return err
	}

	answer, err := s.prompt(fmt.Sprintf("Are you sure you want to delete member '%s'? (y/n): ", m.Name))
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		s.println("❌ Deletion cancelled.")
		return nil
	}

	err = orchestrators.ExecuteConfirmDelete(ctx, orchestrators.ConfirmDeleteInput{MemberID: id},
		orchestrators.ConfirmDeleteDeps{
			MemberStore: s.deps.MemberStore,
			AuditStore:  s.deps.AuditStore,
			Now:         s.deps.Now,
		})
	if err != nil {
		return err
	}
	s.println("✅ Member deleted successfully!")
	return nil
}

func (s *Shell) recentActivity(ctx context.Context) error {
	s.println("\n--- RECENT ACTIVITY ---")
	events, err := projections.QueryRecentActivity(ctx, projections.RecentActivityQuery{},
		projections.RecentActivityDeps{AuditStore: s.deps.AuditStore})
	if err != nil {
		return err
	}
	if len(events) == 0 {
		s.println("No activity recorded yet.")
		return nil
	}
	RenderActivity(s.out, events)
	return nil
}

// report renders an action error as a one-line message. The loop always continues.
func (s *Shell) report(err error) {
	var inErr inputError
	switch {
	case errors.As(err, &inErr):
		s.println("❌ " + inErr.msg)
	case errors.Is(err, domainMember.ErrDuplicateEmail):
		s.println("❌ Error: Email already exists!")
	case errors.Is(err, domainMember.ErrNotFound):
		s.println("❌ Member not found!")
	case errors.Is(err, domainMember.ErrNameRequired):
		s.println("❌ Error: Name cannot be empty!")
	default:
		slog.Error("shell_action_failed", "error", err)
		s.printf("❌ Error: %v\n", err)
	}
}

// scanError carries a read failure other than end of input.
type scanError struct{ err error }

func (e scanError) Error() string { return "read input: " + e.err.Error() }
func (e scanError) Unwrap() error { return e.err }

// prompt writes label and reads one trimmed line. End of input yields io.EOF.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", scanError{err: err}
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptID reads a member ID; anything but a positive integer is invalid input.
func (s *Shell) promptID(label string) (int64, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidInput("Please enter a valid member ID!")
	}
	return id, nil
}

// finish converts the terminal read error of the loop into Run's result.
func (s *Shell) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		return nil
	}
	var readErr scanError
	if errors.As(err, &readErr) {
		return readErr.err
	}
	return err
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
