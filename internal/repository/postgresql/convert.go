package postgresql

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const (
	uniqueViolation    = "23505"
	exclusionViolation = "23P01"
)

// pgDate turns a YYYY-MM-DD string into a value pgx encodes as DATE.
func pgDate(date string) (time.Time, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d, nil
}

func formatDate(d time.Time) string {
	return d.Format(dateLayout)
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// dateRange appends inclusive date bounds on column to a WHERE clause builder.
// Empty bounds are skipped.
func dateRange(where []string, args []interface{}, column, startDate, endDate string) ([]string, []interface{}, error) {
	if startDate != "" {
		d, err := pgDate(startDate)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, d)
		where = append(where, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if endDate != "" {
		d, err := pgDate(endDate)
		if err != nil {
			return nil, nil, err
		}
		args = append(args, d)
		where = append(where, fmt.Sprintf("%s <= $%d", column, len(args)))
	}
	return where, args, nil
}

func whereClause(where []string) string {
	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}
