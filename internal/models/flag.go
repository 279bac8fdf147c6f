package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"github.com/spf13/cast"
)

// Flag is a boolean column that tolerates the different representations
// backends return for it: bool on PostgreSQL, 0/1 integers on SQLite and
// "t"/"true"/"1" text from legacy dumps.
type Flag bool

// Scan implements sql.Scanner.
func (f *Flag) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		value = string(v)
	case int64:
		value = int(v)
	}

	parsed, err := cast.ToBoolE(value)
	if err != nil {
		return fmt.Errorf("scan flag from %T: %w", value, err)
	}
	*f = Flag(parsed)
	return nil
}

// Value implements driver.Valuer.
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

// GormDataType declares the column type used by migrations.
func (Flag) GormDataType() string {
	return "boolean"
}

// MarshalCSV renders the flag for CSV exports.
func (f Flag) MarshalCSV() (string, error) {
	return strconv.FormatBool(bool(f)), nil
}
