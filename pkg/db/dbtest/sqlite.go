// Package dbtest opens throwaway sqlite databases carrying the marketplace
// schema so repositories can be exercised without Postgres.
package dbtest

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var schema = []string{
	`CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '[]',
		experience TEXT NOT NULL DEFAULT '',
		contact TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		user_type TEXT NOT NULL DEFAULT 'founder',
		average_rating REAL NOT NULL DEFAULT 0,
		investor_rating REAL NOT NULL DEFAULT 0,
		professional_summary TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		timezone TEXT NOT NULL DEFAULT '',
		availability_status TEXT,
		skill_proficiencies TEXT NOT NULL DEFAULT '{}',
		achievements TEXT NOT NULL DEFAULT '[]',
		social_links TEXT NOT NULL DEFAULT '{}',
		investment_focus TEXT NOT NULL DEFAULT '[]',
		investment_range_min NUMERIC,
		investment_range_max NUMERIC,
		portfolio_size INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL REFERENCES profiles(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		website TEXT NOT NULL DEFAULT '',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE positions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'open',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE applications (
		id TEXT PRIMARY KEY,
		position_id TEXT NOT NULL REFERENCES positions(id) ON DELETE CASCADE,
		applicant_id TEXT NOT NULL REFERENCES profiles(id),
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE project_members (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES profiles(id),
		role TEXT NOT NULL,
		joined_at DATETIME,
		UNIQUE (project_id, user_id)
	)`,
	`CREATE TABLE reviews (
		id TEXT PRIMARY KEY,
		reviewer_id TEXT NOT NULL REFERENCES profiles(id),
		reviewee_id TEXT NOT NULL REFERENCES profiles(id),
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL,
		created_at DATETIME
	)`,
	`CREATE TABLE investor_reviews (
		id TEXT PRIMARY KEY,
		reviewer_id TEXT NOT NULL REFERENCES profiles(id),
		investor_id TEXT NOT NULL REFERENCES profiles(id),
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL,
		helpful BOOLEAN NOT NULL DEFAULT 0,
		responsive BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	)`,
	`CREATE TABLE mrr_data (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		month TEXT NOT NULL,
		revenue NUMERIC NOT NULL DEFAULT 0,
		stripe_subscription_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		UNIQUE (project_id, month)
	)`,
	`CREATE TABLE investment_rounds (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		round_name TEXT NOT NULL,
		amount_seeking NUMERIC NOT NULL,
		amount_raised NUMERIC NOT NULL DEFAULT 0,
		valuation NUMERIC NOT NULL DEFAULT 0,
		equity_offered NUMERIC NOT NULL DEFAULT 0,
		min_investment NUMERIC NOT NULL,
		max_investment NUMERIC NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		terms TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'open',
		deadline DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE investments (
		id TEXT PRIMARY KEY,
		round_id TEXT NOT NULL REFERENCES investment_rounds(id) ON DELETE CASCADE,
		investor_id TEXT NOT NULL REFERENCES profiles(id),
		amount_invested NUMERIC NOT NULL,
		invested_at DATETIME,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT NOT NULL DEFAULT '',
		updated_at DATETIME
	)`,
	`CREATE TABLE stripe_subscriptions (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		stripe_subscription_id TEXT NOT NULL UNIQUE,
		stripe_customer_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT 'usd',
		current_period_start DATETIME,
		current_period_end DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	)`,
}

// Open returns a private in-memory database named after the running test with
// every marketplace table created.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared&_foreign_keys=on"), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
