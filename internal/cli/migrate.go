package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"fundledger/internal/db/migrations"
)

const createMigrationsTable = `create table if not exists schema_migrations (
    name text primary key,
    applied_at timestamptz not null default now()
)`

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbURL, _ := cmd.Flags().GetString("database-url")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if strings.TrimSpace(dbURL) == "" {
				return fmt.Errorf("DATABASE_URL is required\nHint: export DATABASE_URL or pass --database-url")
			}

			db, err := sql.Open("postgres", dbURL)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			all, err := migrations.All()
			if err != nil {
				return fmt.Errorf("load migrations: %w", err)
			}
			return migrate(cmd.Context(), db, all, dryRun, cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("database-url", envOr("DATABASE_URL", ""), "Postgres connection string")
	cmd.Flags().Bool("dry-run", false, "List pending migrations without applying them")
	return cmd
}

func migrate(ctx context.Context, db *sql.DB, all []migrations.Migration, dryRun bool, out io.Writer) error {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return err
	}

	todo := pendingMigrations(all, applied)
	if len(todo) == 0 {
		fmt.Fprintln(out, "schema is up to date")
		return nil
	}
	for _, m := range todo {
		if dryRun {
			fmt.Fprintf(out, "%s %s\n", pendingLabel(), m.Name)
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", appliedLabel(), m.Name)
	}
	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `select name from schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan schema_migrations: %w", err)
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

// applyMigration runs one file and records it in the same transaction.
func applyMigration(ctx context.Context, db *sql.DB, m migrations.Migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s: %w", m.Name, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("apply %s: %w", m.Name, err)
	}
	if _, err = tx.ExecContext(ctx, `insert into schema_migrations (name) values ($1)`, m.Name); err != nil {
		return fmt.Errorf("record %s: %w", m.Name, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", m.Name, err)
	}
	return nil
}

func pendingMigrations(all []migrations.Migration, applied map[string]bool) []migrations.Migration {
	var out []migrations.Migration
	for _, m := range all {
		if !applied[m.Name] {
			out = append(out, m)
		}
	}
	return out
}
