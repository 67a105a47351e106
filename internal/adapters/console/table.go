package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	domainAudit "roster/internal/domain/audit"
	domainMember "roster/internal/domain/member"
)

type column struct {
	title string
	width int
}

// memberColumns is the fixed member table layout.
var memberColumns = []column{
	{"ID", 5},
	{"Name", 20},
	{"Email", 25},
	{"Phone", 15},
	{"Status", 10},
	{"Join Date", 12},
}

const ruleWidth = 95

// displayWidth counts terminal cells, two for wide and fullwidth runes.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// pad left-aligns s in a cell of w terminal columns. Longer values are not cut.
func pad(s string, w int) string {
	if d := displayWidth(s); d < w {
		return s + strings.Repeat(" ", w-d)
	}
	return s
}

func writeRow(out io.Writer, cells []string) {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = pad(c, memberColumns[i].width)
	}
	fmt.Fprintln(out, strings.TrimRight(strings.Join(parts, " "), " "))
}

// RenderMembers writes members as a table: ID, Name, Email, Phone, Status, Join Date.
func RenderMembers(out io.Writer, members []domainMember.Member) {
	titles := make([]string, len(memberColumns))
	for i, c := range memberColumns {
		titles[i] = c.title
	}
	fmt.Fprintln(out)
	writeRow(out, titles)
	fmt.Fprintln(out, strings.Repeat("-", ruleWidth))
	for _, m := range members {
		writeRow(out, []string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.Email,
			m.Phone,
			m.Status,
			m.JoinedOn,
		})
	}
}

// RenderActivity writes audit events, newest first as given.
func RenderActivity(out io.Writer, events []domainAudit.Event) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s %s %s\n", pad("When", 20), pad("Action", 8), pad("Member", 8), "Detail")
	fmt.Fprintln(out, strings.Repeat("-", 70))
	for _, e := range events {
		fmt.Fprintf(out, "%s %s %s %s\n",
			pad(e.Timestamp.Local().Format("2006-01-02 15:04:05"), 20),
			pad(string(e.Action), 8),
			pad(strconv.FormatInt(e.MemberID, 10), 8),
			e.Description,
		)
	}
}
