package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
)

// MissingColumnError means the products table lacks a column the service
// writes or reads, usually because migrations have not been applied.
type MissingColumnError struct {
	Column string
	Err    error
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q is missing on the products table; run `storectl migrate` and retry", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return e.Err }

var columnName = regexp.MustCompile(`column "?([a-zA-Z0-9_.]+)"?`)

const undefinedColumn = "42703"

func asShapeError(err error) error {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) || pgErr.Code != undefinedColumn {
		return err
	}
	col := "unknown"
	if m := columnName.FindStringSubmatch(pgErr.Message); m != nil {
		col = m[1]
		if i := strings.LastIndex(col, "."); i >= 0 {
			col = col[i+1:]
		}
	}
	return &MissingColumnError{Column: col, Err: err}
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid product: " + strings.Join(e.Fields, ", ")
}

func fromValidator(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{Fields: fields}
}
