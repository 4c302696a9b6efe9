// Package database ships the SQL schema migrations embedded into the binaries.
package database

import "embed"

// Migrations holds the golang-migrate files, named <version>_<title>.<up|down>.sql.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the files.
const MigrationsDir = "migrations"
