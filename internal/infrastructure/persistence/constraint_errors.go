package persistence

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
)

// SQLSTATE classes raised by the catalog constraints
const (
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

type constraintRule struct {
	code    string
	message string
}

// constraintRules maps every named catalog constraint to its domain error
var constraintRules = map[string]constraintRule{
	"product_name_ci_unique_active": {catalog.CodeDuplicateName, "An active product with this name already exists"},
	"product_slug_ci_unique_active": {catalog.CodeDuplicateSlug, "An active product with this slug already exists"},
	"product_price_gte_0":           {catalog.CodeInvalidPrice, "Price cannot be negative"},
	"product_status_valid":          {catalog.CodeInvalidStatus, "Unknown product status"},
	"tag_name_ci_unique":            {catalog.CodeDuplicateName, "A tag with this name already exists"},
	"tag_slug_ci_unique":            {catalog.CodeDuplicateSlug, "A tag with this slug already exists"},
	"cat_unique_slug_per_parent_ci": {catalog.CodeDuplicateSlug, "A category with this slug already exists under the same parent"},
	"cat_unique_root_slug_ci":       {catalog.CodeDuplicateSlug, "A root category with this slug already exists"},
	"cat_no_self_parent":            {catalog.CodeSelfParent, "A category cannot be its own parent"},
	"producttag_weight_gte_1":       {catalog.CodeInvalidWeight, "Tag weight must be at least 1"},
	"product_tag_unique":            {catalog.CodeAlreadyTagged, "The product already carries this tag"},
}

// sqliteColumnConstraints names the table-level UNIQUE constraints, which
// SQLite reports by column list instead of by name
var sqliteColumnConstraints = map[string]string{
	"product_tags.product_id, product_tags.tag_id": "product_tag_unique",
}

// TranslateError converts a driver constraint violation into a
// *shared.DomainError carrying the constraint name. Other errors, including
// nil, are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return translate(err, pgErr.Code, pgErr.ConstraintName)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return translate(err, string(pqErr.Code), pqErr.Constraint)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return translateSQLite(err, liteErr)
	}

	return err
}

func translate(err error, sqlState, constraint string) error {
	switch sqlState {
	case pgForeignKeyViolation:
		return referenced(constraint)
	case pgUniqueViolation, pgCheckViolation:
		return fromConstraint(constraint)
	}
	return err
}

// sqliteForeignKeyFailed is the message of every foreign key violation. An
// ON DELETE RESTRICT action reports it with SQLITE_CONSTRAINT_TRIGGER instead
// of SQLITE_CONSTRAINT_FOREIGNKEY.
const sqliteForeignKeyFailed = "FOREIGN KEY constraint failed"

func translateSQLite(err error, liteErr sqlite3.Error) error {
	msg := liteErr.Error()
	if liteErr.Code == sqlite3.ErrConstraint && strings.HasPrefix(msg, sqliteForeignKeyFailed) {
		return referenced("")
	}
	switch liteErr.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return referenced("")
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		// "UNIQUE constraint failed: index 'tag_name_ci_unique'" or
		// "UNIQUE constraint failed: product_tags.product_id, product_tags.tag_id"
		detail := afterColon(msg)
		if name, ok := sqliteColumnConstraints[detail]; ok {
			return fromConstraint(name)
		}
		return fromConstraint(strings.TrimSuffix(strings.TrimPrefix(detail, "index '"), "'"))
	case sqlite3.ErrConstraintCheck:
		// "CHECK constraint failed: product_price_gte_0"
		return fromConstraint(afterColon(msg))
	}
	return err
}

func afterColon(msg string) string {
	if i := strings.Index(msg, ": "); i >= 0 {
		return strings.TrimSpace(msg[i+2:])
	}
	return msg
}

func fromConstraint(constraint string) error {
	if rule, ok := constraintRules[constraint]; ok {
		return shared.NewConstraintError(rule.code, rule.message, constraint)
	}
	return shared.NewConstraintError(shared.ErrConstraintViolation.Code, "Constraint violation", constraint)
}

func referenced(constraint string) error {
	return shared.NewConstraintError(shared.ErrReferenced.Code, "The record is referenced by other records", constraint)
}
