package query

import (
	"strconv"
	"strings"
)

// Dialect selects the literal escaping rules of a store
type Dialect int

const (
	// DialectFallback doubles backslashes and single quotes. It is used when
	// the store is unknown and never passes a quote through unescaped
	DialectFallback Dialect = iota
	DialectSQLite
	DialectMySQL
)

var (
	sqliteReplacer   = strings.NewReplacer("'", "''", "\x00", "")
	mysqlReplacer    = strings.NewReplacer("\\", `\\`, "\x00", `\0`, "\n", `\n`, "\r", `\r`, "'", `\'`, `"`, `\"`, "\x1a", `\Z`)
	fallbackReplacer = strings.NewReplacer("\\", `\\`, "'", "''")
)

// Escaper renders values as quoted SQL literals. Statements sent to the store
// are parameterized; the literals are used to display equivalent SQL text
type Escaper struct {
	dialect Dialect
}

func NewEscaper(dialect Dialect) *Escaper {
	return &Escaper{dialect: dialect}
}

// EscapeString cuts s to maxLen bytes, escapes it and wraps it in single
// quotes. A negative maxLen disables truncation
func (e *Escaper) EscapeString(s string, maxLen int) string {
	s = Truncate(s, maxLen)

	var replacer *strings.Replacer
	switch e.dialect {
	case DialectSQLite:
		replacer = sqliteReplacer
	case DialectMySQL:
		replacer = mysqlReplacer
	default:
		replacer = fallbackReplacer
	}

	return "'" + replacer.Replace(s) + "'"
}

func (e *Escaper) EscapeInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func Truncate(s string, maxLen int) string {
	if maxLen >= 0 && len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}

// ParseDialect maps a configured dialect name to a Dialect. Unknown names
// select DialectFallback
func ParseDialect(name string) Dialect {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite":
		return DialectSQLite
	case "mysql":
		return DialectMySQL
	default:
		return DialectFallback
	}
}
