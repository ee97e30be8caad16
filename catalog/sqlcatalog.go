// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema creates the tables a SQLCatalog reads. Hosts embedding procair
// against their own catalog schema can ignore it.
const Schema = `
CREATE TABLE routine (
	id          integer PRIMARY KEY,
	schema      text    NOT NULL,
	name        text    NOT NULL,
	return_type integer NOT NULL,
	returns_set boolean NOT NULL DEFAULT FALSE,
	volatile    boolean NOT NULL DEFAULT FALSE,
	source      text    NOT NULL
);
CREATE TABLE routine_param (
	routine_id  integer NOT NULL REFERENCES routine (id),
	position    integer NOT NULL,
	type_id     integer NOT NULL,
	PRIMARY KEY (routine_id, position)
);
CREATE TABLE type_name (
	id          integer PRIMARY KEY,
	name        text    NOT NULL
);
`

// SQLCatalog reads routine rows from a database holding the procair
// catalog schema.
type SQLCatalog struct {
	db *sql.DB
}

// NewSQLCatalog returns a catalog reading from db. NewSQLCatalog returns
// nil if db is nil.
func NewSQLCatalog(db *sql.DB) *SQLCatalog {
	if db == nil {
		return nil
	}
	return &SQLCatalog{db: db}
}

// PlainDB returns the database the catalog reads from.
func (c *SQLCatalog) PlainDB() *sql.DB {
	return c.db
}

// Routine returns the routine with the given identity.
func (c *SQLCatalog) Routine(ctx context.Context, id RoutineID) (*Routine, error) {
	row := c.db.QueryRowContext(ctx, `
SELECT id, schema, name, return_type, returns_set, volatile, source
FROM   routine
WHERE  id = ?`, id)
	r, err := scanRoutine(row)
	if err != nil {
		return nil, fmt.Errorf("cannot read routine %d: %w", id, err)
	}
	if r.ParamTypes, err = c.routineParams(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}

// Routines returns every routine in the catalog, ordered by identity.
func (c *SQLCatalog) Routines(ctx context.Context) ([]*Routine, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, schema, name, return_type, returns_set, volatile, source
FROM   routine
ORDER  BY id`)
	if err != nil {
		return nil, fmt.Errorf("cannot read routines: %w", err)
	}
	defer rows.Close()

	var routines []*Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			return nil, fmt.Errorf("cannot read routines: %w", err)
		}
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read routines: %w", err)
	}
	for _, r := range routines {
		if r.ParamTypes, err = c.routineParams(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

// TypeNames returns the catalog's mapping from type identities to managed
// type names.
func (c *SQLCatalog) TypeNames(ctx context.Context) (map[TypeID]string, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT id, name FROM type_name`)
	if err != nil {
		return nil, fmt.Errorf("cannot read type names: %w", err)
	}
	defer rows.Close()

	names := map[TypeID]string{}
	for rows.Next() {
		var id TypeID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("cannot read type names: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read type names: %w", err)
	}
	return names, nil
}

func (c *SQLCatalog) routineParams(ctx context.Context, id RoutineID) ([]TypeID, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT type_id
FROM   routine_param
WHERE  routine_id = ?
ORDER  BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("cannot read parameters of routine %d: %w", id, err)
	}
	defer rows.Close()

	var params []TypeID
	for rows.Next() {
		var t TypeID
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("cannot read parameters of routine %d: %w", id, err)
		}
		params = append(params, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read parameters of routine %d: %w", id, err)
	}
	return params, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoutine(row scanner) (*Routine, error) {
	var r Routine
	err := row.Scan(&r.ID, &r.Schema, &r.Name, &r.ReturnType, &r.ReturnsSet, &r.Volatile, &r.Source)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
