//go:build integration

// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Each test runs inside a transaction that is rolled
// back when the test finishes, so tests can share one database and run in
// parallel.
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
//
// The database URL is read from TASKS_TEST_DB_URL, falling back to
// TASKS_DATABASE_URL. Tests are skipped when neither is set.
package testdb
