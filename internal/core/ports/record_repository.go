package ports

import (
	"context"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// RecordRepository reads whole tables from the document store.
type RecordRepository interface {
	Scan(ctx context.Context, table string) ([]domain.Record, error)
}
