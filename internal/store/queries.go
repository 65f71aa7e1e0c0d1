// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/olegiv/folio-go/internal/model"
)

// DBTX is the subset of *sql.DB / *sql.Tx the query layer needs.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to all database queries.
type Queries struct {
	db DBTX
}

// New creates a new Queries instance.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// encodeStrings marshals a string slice for a JSON TEXT column.
// A nil slice encodes as an empty array.
func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

// decodeStrings unmarshals a JSON TEXT column into a string slice.
func decodeStrings(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var values []string
	_ = json.Unmarshal([]byte(raw), &values)
	return values
}

// encodeFeatureCards marshals feature cards for storage. Nil encodes as NULL.
func encodeFeatureCards(cards []model.FeatureCard) sql.NullString {
	if len(cards) == 0 {
		return sql.NullString{}
	}
	data, _ := json.Marshal(cards)
	return sql.NullString{String: string(data), Valid: true}
}

// decodeFeatureCards unmarshals a stored feature card column.
func decodeFeatureCards(raw sql.NullString) []model.FeatureCard {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var cards []model.FeatureCard
	_ = json.Unmarshal([]byte(raw.String), &cards)
	return cards
}
