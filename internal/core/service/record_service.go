package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/emr-api/internal/core/domain"
	"github.com/clinicdesk/emr-api/internal/core/ports"
)

// RecordService lists EMR tables whose names come from configuration.
type RecordService struct {
	repo   ports.RecordRepository
	tables ports.RecordTables
	logger zerolog.Logger
}

func NewRecordService(repo ports.RecordRepository, tables ports.RecordTables, logger zerolog.Logger) *RecordService {
	copied := make(ports.RecordTables, len(tables))
	for k, v := range tables {
		copied[k] = v
	}
	return &RecordService{repo: repo, tables: copied, logger: logger}
}

// List scans the table configured for kind.
func (s *RecordService) List(ctx context.Context, kind domain.RecordKind) (*ports.ListRecordsResult, error) {
	table := s.tables[kind]
	if table == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownRecordKind, kind)
	}

	items, err := s.repo.Scan(ctx, table)
	if err != nil {
		s.logger.Error().Err(err).Str("table", table).Msg("table scan failed")
		return nil, err
	}
	if items == nil {
		items = []domain.Record{}
	}

	s.logger.Debug().Str("table", table).Int("count", len(items)).Msg("table scanned")
	return &ports.ListRecordsResult{
		Kind:  kind,
		Table: table,
		Items: items,
		Count: len(items),
	}, nil
}
