package postgres

import (
	"database/sql"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/lifegrid/internal/migration"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage/sqlstore"
)

// Dialect stores hours as SMALLINT[] and timestamps as TIMESTAMPTZ.
type Dialect struct{}

func (Dialect) Name() string { return migration.DriverPostgres }

func (Dialect) Rebind(query string) string { return sqlstore.RebindDollar(query) }

func (Dialect) HoursValue(h models.Hours) (any, error) {
	arr := make(pq.Int64Array, len(h))
	for i, v := range h {
		arr[i] = int64(v)
	}
	return arr, nil
}

func (Dialect) HoursScanner(dst *models.Hours) sql.Scanner {
	return arrayHours{dst}
}

func (Dialect) TimeValue(t time.Time) any {
	return t.UTC()
}

type arrayHours struct {
	dst *models.Hours
}

func (a arrayHours) Scan(src any) error {
	var arr pq.Int64Array
	if err := arr.Scan(src); err != nil {
		return err
	}
	hours := make(models.Hours, len(arr))
	for i, v := range arr {
		hours[i] = int(v)
	}
	*a.dst = hours
	return nil
}
