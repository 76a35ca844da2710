package errors

// Postgres-specific helpers for classifying pgx errors raised while reading orders

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrUndefinedTable         = "42P01"
	pgErrUndefinedColumn        = "42703"
	pgErrInsufficientPrivilege  = "42501"
	pgErrQueryCanceled          = "57014"
	pgErrAdminShutdown          = "57P01"
	pgErrCannotConnectNow       = "57P03"
	pgErrTooManyConnections     = "53300"
	pgErrConnectionFailureClass = "08"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsUndefinedTable reports whether the orders table is missing
func IsUndefinedTable(err error) bool { return IsSQLState(err, pgErrUndefinedTable) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	if len(pgErr.Code) == 5 && pgErr.Code[:2] == pgErrConnectionFailureClass {
		return ErrorCodeUnavailable, true
	}

	switch pgErr.Code {
	case pgErrUndefinedTable, pgErrUndefinedColumn, pgErrInsufficientPrivilege:
		return ErrorCodeConfig, true
	case pgErrAdminShutdown, pgErrCannotConnectNow, pgErrTooManyConnections, pgErrQueryCanceled:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
