package schema

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TattooStudio/pkg/dbmetrics"
)

// ErrApply возвращается, если не удалось применить схему
var ErrApply = errors.New("schema: failed to apply schema")

//go:embed schema.sql
var ddl string

// SQL возвращает DDL схемы
func SQL() string {
	return ddl
}

// Apply применяет схему. Все выражения идемпотентны (IF NOT EXISTS).
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}
