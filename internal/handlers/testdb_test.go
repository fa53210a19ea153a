package handlers

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables are created with explicit DDL because the models carry
// postgres-specific column defaults.
const (
	usersDDL = `CREATE TABLE users (
		id TEXT PRIMARY KEY, name TEXT, email TEXT, phone TEXT, password TEXT,
		role TEXT, verified NUMERIC, is_active NUMERIC, skills TEXT,
		average_rating REAL, total_ratings INTEGER,
		created_at DATETIME, updated_at DATETIME)`

	jobsDDL = `CREATE TABLE jobs (
		id TEXT PRIMARY KEY, title TEXT, category TEXT, description TEXT,
		location TEXT, duration TEXT, payment INTEGER, safety_fee INTEGER,
		employer_id TEXT, employer_name TEXT, status TEXT,
		worker_id TEXT, worker_name TEXT,
		created_at DATETIME, updated_at DATETIME)`

	policiesDDL = `CREATE TABLE safety_policies (
		id TEXT PRIMARY KEY, policy_number TEXT UNIQUE, job_id TEXT, job_title TEXT,
		worker_id TEXT, worker_name TEXT, fee_paid INTEGER, coverage TEXT,
		status TEXT, activated_at DATETIME,
		created_at DATETIME, updated_at DATETIME,
		UNIQUE (job_id, worker_id))`

	schemesDDL = `CREATE TABLE schemes (
		id TEXT PRIMARY KEY, title TEXT, description TEXT, category TEXT,
		eligibility TEXT, benefits TEXT, how_to_apply TEXT,
		external_link TEXT, state TEXT, icon TEXT, created_at DATETIME)`
)

// openTestDB opens a per-test in-memory database and applies the given DDL.
func openTestDB(t *testing.T, ddl ...string) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	for _, stmt := range ddl {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return gdb
}
