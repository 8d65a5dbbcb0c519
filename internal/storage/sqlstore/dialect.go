// Package sqlstore is the database/sql implementation shared by the SQLite
// and PostgreSQL backends. Backends differ only in their Dialect.
package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/lifegrid/internal/constants"
	"github.com/julianstephens/lifegrid/internal/models"
)

// Dialect covers what the two databases disagree on.
type Dialect interface {
	Name() string
	// Rebind rewrites the ? placeholders used in this package's queries.
	Rebind(query string) string
	HoursValue(h models.Hours) (any, error)
	HoursScanner(dst *models.Hours) sql.Scanner
	TimeValue(t time.Time) any
}

// RebindDollar rewrites ? placeholders to $1..$n. Queries in this package
// never contain a literal question mark.
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatTime renders t in the fixed-width UTC text form stored by SQLite.
func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

// timeScanner reads a timestamp stored either natively (time.Time) or as text.
type timeScanner struct {
	dst *time.Time
}

func (s timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dst = time.Time{}
		return nil
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (s timeScanner) parse(v string) error {
	t, err := time.Parse(constants.TimestampFormat, v)
	if err != nil {
		t, err = time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return fmt.Errorf("failed to parse timestamp %q: %w", v, err)
		}
	}
	*s.dst = t.UTC()
	return nil
}
