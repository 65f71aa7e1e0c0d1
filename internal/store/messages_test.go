// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/folio-go/internal/model"
)

func TestCreateMessage(t *testing.T) {
	q, cleanup := testQueries(t)
	defer cleanup()
	ctx := context.Background()

	m, err := q.CreateMessage(ctx, CreateMessageParams{
		SenderName:  "Ada",
		SenderEmail: "ada@example.com",
		Content:     "Loved the portfolio, let's talk.",
		CreatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if m.Status != model.MessageStatusNew {
		t.Errorf("Status = %q, want new", m.Status)
	}
	if m.SenderEmail != "ada@example.com" {
		t.Errorf("SenderEmail = %q", m.SenderEmail)
	}
}

func TestListMessagesByStatus(t *testing.T) {
	q, cleanup := testQueries(t)
	defer cleanup()
	ctx := context.Background()
	now := time.Now()

	first, err := q.CreateMessage(ctx, CreateMessageParams{
		SenderName: "A", SenderEmail: "a@example.com", Content: "one", CreatedAt: now.Add(-time.Minute),
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := q.CreateMessage(ctx, CreateMessageParams{
		SenderName: "B", SenderEmail: "b@example.com", Content: "two", CreatedAt: now,
	}); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if _, err := q.UpdateMessageStatus(ctx, UpdateMessageStatusParams{
		ID: first.ID, Status: model.MessageStatusRead,
	}); err != nil {
		t.Fatalf("UpdateMessageStatus: %v", err)
	}

	read, err := q.ListMessagesByStatus(ctx, model.MessageStatusRead)
	if err != nil {
		t.Fatalf("ListMessagesByStatus: %v", err)
	}
	if len(read) != 1 || read[0].ID != first.ID {
		t.Errorf("read = %+v", read)
	}

	all, err := q.ListMessages(ctx)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d messages, want 2", len(all))
	}
	// Newest first
	if all[0].SenderName != "B" {
		t.Errorf("first = %q, want B", all[0].SenderName)
	}
}

func TestDeleteMessage(t *testing.T) {
	q, cleanup := testQueries(t)
	defer cleanup()
	ctx := context.Background()

	m, err := q.CreateMessage(ctx, CreateMessageParams{
		SenderName: "A", SenderEmail: "a@example.com", Content: "bye", CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	if err := q.DeleteMessage(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if _, err := q.GetMessage(ctx, m.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetMessage after delete = %v, want sql.ErrNoRows", err)
	}
}
