package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finora-server/internal/operator/actions"
	"github.com/carson-networks/finora-server/internal/storage/storagetest"
)

// fixedNow is the clock every service test runs at.
var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

// inlineProcessor performs actions against the mocks one at a time, the way
// a single operator worker would.
type inlineProcessor struct {
	mu    sync.Mutex
	mocks *storagetest.Mocks
	tx    storagetest.Tx
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	writer := p.mocks.Writer(&p.tx)
	if err := action.Perform(ctx, writer); err != nil {
		_ = writer.Rollback(ctx)
		return err
	}
	return writer.Commit(ctx)
}

func newTestService(t *testing.T) (*Service, *storagetest.Mocks) {
	t.Helper()
	mocks := storagetest.NewMocks(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := NewService(mocks.Storage(), &inlineProcessor{mocks: mocks}, logger, Options{
		RecurringConcurrency: 2,
		Now:                  func() time.Time { return fixedNow },
	})
	return svc, mocks
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertDecimal compares decimals by value and dumps both sides on mismatch.
func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("decimal mismatch: want %s, got %s", want, spew.Sdump(got.String()))
	}
}
