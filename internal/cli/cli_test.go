package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"fundledger/internal/db/migrations"
	"fundledger/internal/domain"
	"fundledger/internal/middleware"
)

func TestTokenCmdMintsVerifiableToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("JWT_ISSUER", "fundledger")

	cmd := TokenCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--sub", "42", "--superuser", "--ttl", "1h"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	claims, err := middleware.VerifyJWT("cli-secret", "fundledger", strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("VerifyJWT() error: %v", err)
	}
	if claims.Subject != "42" || !claims.Superuser {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokenCmdRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cmd := TokenCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sub", "42"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestPendingMigrations(t *testing.T) {
	all := []migrations.Migration{{Name: "0001_a.sql"}, {Name: "0002_b.sql"}, {Name: "0003_c.sql"}}
	got := pendingMigrations(all, map[string]bool{"0001_a.sql": true, "0003_c.sql": true})
	if len(got) != 1 || got[0].Name != "0002_b.sql" {
		t.Fatalf("pendingMigrations() = %+v", got)
	}
	if got := pendingMigrations(all, map[string]bool{}); len(got) != 3 {
		t.Fatalf("expected all migrations pending, got %d", len(got))
	}
}

func TestPrintProjects(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	closed := created.Add(time.Hour)
	projects := []*domain.CharityProject{
		{Name: "Cats", Funding: domain.Funding{ID: 1, FullAmount: 100, InvestedAmount: 100, FullyInvested: true, CreateDate: created, CloseDate: &closed}},
		{Name: "Dogs", Funding: domain.Funding{ID: 2, FullAmount: 50, InvestedAmount: 10, CreateDate: created}},
	}

	var out bytes.Buffer
	printProjects(&out, projects)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", out.String())
	}
	if !strings.Contains(lines[1], "Cats") || !strings.Contains(lines[1], "closed") || !strings.Contains(lines[1], "2024-01-02T04:04:05Z") {
		t.Fatalf("unexpected closed row %q", lines[1])
	}
	if !strings.Contains(lines[2], "open") || !strings.HasSuffix(strings.TrimSpace(lines[2]), "-") {
		t.Fatalf("unexpected open row %q", lines[2])
	}
}

func TestPrintDonationsEmpty(t *testing.T) {
	var out bytes.Buffer
	printDonations(&out, nil)
	if strings.TrimSpace(out.String()) != "No donations found" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRootCmdHasSubcommands(t *testing.T) {
	root := RootCmd()
	for _, name := range []string{"migrate", "token", "projects", "donations"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}
