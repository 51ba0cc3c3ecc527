// Package postgres implements the translatable repository contracts on top
// of PostgreSQL via [github.com/jackc/pgx/v5].
//
// # Features
//
//   - Connection pooling with retry logic and exponential backoff on startup
//   - Generic repositories driven by table mappings: one query body serves
//     every concrete entity/translation pair
//   - Context-carried transactions so service-level boundaries cover all
//     repository calls inside them
//   - Database migrations using [github.com/pressly/goose/v3]
//   - Health check function compatible with standard health check interfaces
//
// # Mappings
//
// Concrete types supply the physical mapping: table names, the identifier,
// owner and locale columns, and the full column list used for reads and
// writes. Rows are scanned with [github.com/jackc/pgx/v5.RowToStructByName],
// so the concrete type's fields carry `db` struct tags matching the mapped
// columns. Writes use a caller-supplied encoder returning the column values
// in mapping order.
//
//	mapping := postgres.TranslationMapping{
//		Table:         "post_translations",
//		OwnerIDColumn: "post_id",
//		Columns:       []string{"id", "post_id", "locale", "title", "body"},
//	}
//	repo, err := postgres.NewTranslationRepository[PostTranslation, uuid.UUID](pool, mapping,
//		func(t PostTranslation) []any {
//			return []any{t.TranslationID, t.PostID, t.Lang, t.Title, t.Body}
//		})
//
// # Schema Expectations
//
// The repositories rely on the schema for two invariants they do not enforce
// themselves: a unique index on (owner, locale) to keep one translation per
// locale, and a foreign key from the translation table to the owner table
// with ON DELETE CASCADE so owner deletion removes sibling translations.
// See the example migration under examples/blog.
//
// # Transactions
//
// [NewTransactor] returns a [translatable.Transactor] that opens a pgx
// transaction and stores it in the context. Repositories resolve their
// querier from the context, so everything called inside
// [Transactor.InTx] runs on that transaction and commits or rolls back as
// one unit. Nested InTx calls join the surrounding transaction.
package postgres
