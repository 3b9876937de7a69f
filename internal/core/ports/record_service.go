package ports

import (
	"context"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// RecordTables maps each record kind to its configured table name.
type RecordTables map[domain.RecordKind]string

// ListRecordsResult is returned by RecordService.List.
type ListRecordsResult struct {
	Kind  domain.RecordKind
	Table string
	Items []domain.Record
	Count int
}

type RecordService interface {
	List(ctx context.Context, kind domain.RecordKind) (*ListRecordsResult, error)
}
