package db

import (
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
)

// CreateDatabaseIfNotExists connects to the maintenance database and
// creates the target database when it is missing. Useful for local
// development; in managed environments the database already exists and
// this is a no-op.
func CreateDatabaseIfNotExists(connString string) error {
	u, err := url.Parse(connString)
	if err != nil {
		return fmt.Errorf("failed to parse connection string: %w", err)
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return fmt.Errorf("connection string has no database name")
	}

	maint := *u
	maint.Path = "/postgres"

	conn, err := sql.Open("postgres", maint.String())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer conn.Close()

	var exists bool
	err = conn.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for database: %w", err)
	}

	if !exists {
		if _, err := conn.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName)); err != nil {
			return fmt.Errorf("failed to create database %s: %w", dbName, err)
		}
		log.Printf("Created database %s", dbName)
	}

	return nil
}
