package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"fundledger/internal/domain"
)

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func appliedLabel() string { return color.New(color.FgGreen).Sprint("APPLIED") }

func pendingLabel() string { return color.New(color.FgYellow).Sprint("PENDING") }

func statusLabel(f domain.Funding) string {
	if f.FullyInvested {
		return color.New(color.Faint).Sprint("closed")
	}
	return color.New(color.FgGreen).Sprint("open")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func printProjects(out io.Writer, projects []*domain.CharityProject) {
	if len(projects) == 0 {
		fmt.Fprintln(out, "No charity projects found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINVESTED\tFULL\tSTATUS\tCREATED\tCLOSED")
	for _, p := range projects {
		created := p.CreateDate
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			p.ID, p.Name, p.InvestedAmount, p.FullAmount, statusLabel(p.Funding),
			formatDate(&created), formatDate(p.CloseDate))
	}
	w.Flush()
}

func printDonations(out io.Writer, donations []*domain.Donation) {
	if len(donations) == 0 {
		fmt.Fprintln(out, "No donations found")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tINVESTED\tFULL\tSTATUS\tCREATED\tCLOSED")
	for _, d := range donations {
		user := "-"
		if d.UserID != nil {
			user = *d.UserID
		}
		created := d.CreateDate
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			d.ID, user, d.InvestedAmount, d.FullAmount, statusLabel(d.Funding),
			formatDate(&created), formatDate(d.CloseDate))
	}
	w.Flush()
}
