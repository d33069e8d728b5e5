package schema

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	query string
	err   error
}

func (f *fakeExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.query = query
	return nil, f.err
}

func (f *fakeExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func TestSQL_ContainsTables(t *testing.T) {
	for _, table := range []string{"staff", "reservations", "emails", "email_attachments"} {
		assert.Contains(t, SQL(), "CREATE TABLE IF NOT EXISTS "+table+" ")
	}
	assert.Contains(t, SQL(), "deposit_paid <= total_price")
	assert.Contains(t, SQL(), "ON DELETE CASCADE")
}

func TestApply(t *testing.T) {
	exec := &fakeExecutor{}
	require.NoError(t, Apply(context.Background(), exec))
	assert.Equal(t, SQL(), exec.query)

	exec.err = errors.New("permission denied")
	assert.ErrorIs(t, Apply(context.Background(), exec), ErrApply)
}
