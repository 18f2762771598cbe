package migrate

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Mihailob5017/codegames/internal/core/ports/primary"
)

//go:embed schema.sql
var schemaSQL string

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Statements returns the schema DDL for the given schema name, one statement per element
func Statements(schema string) ([]string, error) {
	if !identifier.MatchString(schema) {
		return nil, fmt.Errorf("invalid schema name %q", schema)
	}
	script := strings.ReplaceAll(schemaSQL, "__SCHEMA__", schema)

	var stmts []string
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// Up creates the tables if they do not exist yet. It is safe to run on every start.
func Up(ctx context.Context, db *sqlx.DB, schema string, logger primary.Logger) error {
	stmts, err := Statements(schema)
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}

	logger.Info("Database schema is up to date", "schema", schema, "statements", len(stmts))
	return nil
}
