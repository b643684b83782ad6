package storage

import (
	"context"

	"github.com/stephenafamo/bob"
)

// Finisher ends a database transaction.
type Finisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables bound to a single database transaction.
type Writer struct {
	Tables
	tx Finisher
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		Tables: NewTables(tx),
		tx:     tx,
	}
}

// NewWriterWithTables binds already constructed tables to tx.
func NewWriterWithTables(tx Finisher, tables Tables) *Writer {
	return &Writer{
		Tables: tables,
		tx:     tx,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
