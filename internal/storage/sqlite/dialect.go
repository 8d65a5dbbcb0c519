package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/lifegrid/internal/migration"
	"github.com/julianstephens/lifegrid/internal/models"
	"github.com/julianstephens/lifegrid/internal/storage/sqlstore"
)

// Dialect stores hours as a JSON array and timestamps as fixed-width UTC text.
type Dialect struct{}

func (Dialect) Name() string { return migration.DriverSQLite }

func (Dialect) Rebind(query string) string { return query }

func (Dialect) HoursValue(h models.Hours) (any, error) {
	b, err := json.Marshal([]int(h))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (Dialect) HoursScanner(dst *models.Hours) sql.Scanner {
	return jsonHours{dst}
}

func (Dialect) TimeValue(t time.Time) any {
	return sqlstore.FormatTime(t)
}

type jsonHours struct {
	dst *models.Hours
}

func (j jsonHours) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into hours", src)
	}
	var hours []int
	if err := json.Unmarshal(raw, &hours); err != nil {
		return fmt.Errorf("failed to decode hours: %w", err)
	}
	*j.dst = models.Hours(hours)
	return nil
}
