package sqlite

import "database/sql"

// DB returns the underlying connection pool.
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

// SetQuerier replaces the handle queries run against.
func (r *SQLiteRepository) SetQuerier(q Querier) {
	r.q = q
}
