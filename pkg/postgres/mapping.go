package postgres

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
)

// TranslationMapping describes the physical table behind a translation type.
// One set of generic query bodies is generated from it, so a single
// repository implementation serves every concrete translation type.
type TranslationMapping struct {
	// Table is the translation table name. Required.
	Table string

	// IDColumn is the primary key column. Defaults to "id".
	IDColumn string

	// OwnerIDColumn is the foreign key column referencing the owner table.
	// Required.
	OwnerIDColumn string

	// LocaleColumn holds the locale string. Defaults to "locale".
	LocaleColumn string

	// NameColumn is the optional name-like column used by
	// NewNamedTranslationRepository. Leave empty when the concrete type has
	// no such field.
	NameColumn string

	// Columns is the full column list used for reads and writes, including
	// the id, owner and locale columns. Row scanning matches these against
	// the concrete type's `db` struct tags; the write encoder returns
	// values in this order.
	Columns []string
}

func (m TranslationMapping) withDefaults() TranslationMapping {
	if m.IDColumn == "" {
		m.IDColumn = "id"
	}
	if m.LocaleColumn == "" {
		m.LocaleColumn = "locale"
	}
	return m
}

// Validate reports whether the mapping is complete enough to generate
// queries from.
func (m TranslationMapping) Validate() error {
	if m.Table == "" {
		return fmt.Errorf("%w: translation table is required", ErrInvalidMapping)
	}
	if m.OwnerIDColumn == "" {
		return fmt.Errorf("%w: owner id column is required", ErrInvalidMapping)
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("%w: column list is required", ErrInvalidMapping)
	}
	for _, required := range []string{m.IDColumn, m.OwnerIDColumn, m.LocaleColumn} {
		if !slices.Contains(m.Columns, required) {
			return fmt.Errorf("%w: column %q missing from column list", ErrInvalidMapping, required)
		}
	}
	if m.NameColumn != "" && !slices.Contains(m.Columns, m.NameColumn) {
		return fmt.Errorf("%w: name column %q missing from column list", ErrInvalidMapping, m.NameColumn)
	}
	return nil
}

// TranslatableMapping describes the physical table behind an owning entity
// plus the mapping of its translation table.
type TranslatableMapping struct {
	// Table is the owner table name. Required.
	Table string

	// IDColumn is the primary key column. Defaults to "id".
	IDColumn string

	// Columns is the full column list used for reads and writes, including
	// the id column.
	Columns []string

	// Translation maps the translation table joined for locale-scoped
	// queries.
	Translation TranslationMapping
}

func (m TranslatableMapping) withDefaults() TranslatableMapping {
	if m.IDColumn == "" {
		m.IDColumn = "id"
	}
	m.Translation = m.Translation.withDefaults()
	return m
}

// Validate reports whether the mapping is complete enough to generate
// queries from.
func (m TranslatableMapping) Validate() error {
	if m.Table == "" {
		return fmt.Errorf("%w: owner table is required", ErrInvalidMapping)
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("%w: column list is required", ErrInvalidMapping)
	}
	if !slices.Contains(m.Columns, m.IDColumn) {
		return fmt.Errorf("%w: column %q missing from column list", ErrInvalidMapping, m.IDColumn)
	}
	return m.Translation.Validate()
}

// ident quotes a SQL identifier.
func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// identList quotes a list of identifiers, optionally qualified with an
// alias.
func identList(alias string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		if alias != "" {
			quoted[i] = alias + "." + ident(c)
		} else {
			quoted[i] = ident(c)
		}
	}
	return strings.Join(quoted, ", ")
}

// placeholders returns "$1, $2, ..., $n".
func placeholders(n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(ph, ", ")
}

// upsertSQL builds an insert-or-update statement over the given columns,
// keyed on idColumn, returning the persisted row.
func upsertSQL(table, idColumn string, columns []string) string {
	assignments := make([]string, 0, len(columns)-1)
	for _, c := range columns {
		if c == idColumn {
			continue
		}
		assignments = append(assignments, ident(c)+" = EXCLUDED."+ident(c))
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s RETURNING %s",
		ident(table), identList("", columns), placeholders(len(columns)),
		ident(idColumn), strings.Join(assignments, ", "), identList("", columns),
	)
}

// --- translation table queries ---

func (m TranslationMapping) upsertSQL() string {
	return upsertSQL(m.Table, m.IDColumn, m.Columns)
}

func (m TranslationMapping) selectByIDSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		identList("", m.Columns), ident(m.Table), ident(m.IDColumn))
}

func (m TranslationMapping) deleteByIDSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(m.Table), ident(m.IDColumn))
}

func (m TranslationMapping) countSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", ident(m.Table))
}

func (m TranslationMapping) existsByLocaleSQL() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		ident(m.Table), ident(m.LocaleColumn))
}

func (m TranslationMapping) existsByOwnerSQL() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		ident(m.Table), ident(m.OwnerIDColumn))
}

func (m TranslationMapping) existsByOwnerAndLocaleSQL() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		ident(m.Table), ident(m.OwnerIDColumn), ident(m.LocaleColumn))
}

func (m TranslationMapping) selectByOwnerSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s, %s",
		identList("", m.Columns), ident(m.Table), ident(m.OwnerIDColumn),
		ident(m.LocaleColumn), ident(m.IDColumn))
}

func (m TranslationMapping) selectPageByOwnerSQL() string {
	return m.selectByOwnerSQL() + " LIMIT $2 OFFSET $3"
}

func (m TranslationMapping) countByOwnerSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1",
		ident(m.Table), ident(m.OwnerIDColumn))
}

// selectByOwnerAndLocaleSQL expects at most one row under the owner+locale
// uniqueness invariant. The LIMIT with the id ordering makes the result
// deterministic (lowest id) when duplicate rows violate it.
func (m TranslationMapping) selectByOwnerAndLocaleSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s LIMIT 1",
		identList("", m.Columns), ident(m.Table), ident(m.OwnerIDColumn),
		ident(m.LocaleColumn), ident(m.IDColumn))
}

func (m TranslationMapping) selectByNameAndLocaleSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s",
		identList("", m.Columns), ident(m.Table), ident(m.NameColumn),
		ident(m.LocaleColumn), ident(m.IDColumn))
}

func (m TranslationMapping) deleteByLocaleSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(m.Table), ident(m.LocaleColumn))
}

func (m TranslationMapping) deleteByOwnerAndLocaleSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		ident(m.Table), ident(m.OwnerIDColumn), ident(m.LocaleColumn))
}

// --- owner table queries ---

// localeExists is the correlated subquery matching owners that have a
// translation with the bound locale. The EXISTS form also gives
// DISTINCT-style semantics: an owner with duplicate locale rows matches
// once.
func (m TranslatableMapping) localeExists(localeParam string) string {
	t := m.Translation
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s t WHERE t.%s = e.%s AND t.%s = %s)",
		ident(t.Table), ident(t.OwnerIDColumn), ident(m.IDColumn),
		ident(t.LocaleColumn), localeParam)
}

func (m TranslatableMapping) upsertSQL() string {
	return upsertSQL(m.Table, m.IDColumn, m.Columns)
}

func (m TranslatableMapping) selectByIDSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		identList("", m.Columns), ident(m.Table), ident(m.IDColumn))
}

func (m TranslatableMapping) deleteByIDSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", ident(m.Table), ident(m.IDColumn))
}

func (m TranslatableMapping) countSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", ident(m.Table))
}

func (m TranslatableMapping) existsByIDAndLocaleSQL() string {
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s e WHERE e.%s = $1 AND %s)",
		ident(m.Table), ident(m.IDColumn), m.localeExists("$2"))
}

func (m TranslatableMapping) selectByIDAndLocaleSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s e WHERE e.%s = $1 AND %s",
		identList("e", m.Columns), ident(m.Table), ident(m.IDColumn), m.localeExists("$2"))
}

func (m TranslatableMapping) selectAllByLocaleSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s e WHERE %s ORDER BY e.%s",
		identList("e", m.Columns), ident(m.Table), m.localeExists("$1"), ident(m.IDColumn))
}

func (m TranslatableMapping) selectPageByLocaleSQL() string {
	return m.selectAllByLocaleSQL() + " LIMIT $2 OFFSET $3"
}

func (m TranslatableMapping) countByLocaleSQL() string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s e WHERE %s",
		ident(m.Table), m.localeExists("$1"))
}

func (m TranslatableMapping) deleteByLocaleSQL() string {
	return fmt.Sprintf("DELETE FROM %s e WHERE %s",
		ident(m.Table), m.localeExists("$1"))
}

func (m TranslatableMapping) deleteByIDAndLocaleSQL() string {
	return fmt.Sprintf("DELETE FROM %s e WHERE e.%s = $1 AND %s",
		ident(m.Table), ident(m.IDColumn), m.localeExists("$2"))
}
