package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicdesk/emr-api/internal/core/domain"
)

// RecordRepository performs whole-collection scans over the EMR tables.
type RecordRepository struct {
	db *mongo.Database
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{db: db}
}

// Scan returns every document of table.
func (r *RecordRepository) Scan(ctx context.Context, table string) ([]domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(table).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", table, err)
	}

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("scan %s: decode: %w", table, err)
	}

	out := make([]domain.Record, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toRecord(doc))
	}
	return out, nil
}

// toRecord exposes ObjectIDs as hex strings so records serialise as plain JSON.
func toRecord(doc bson.M) domain.Record {
	rec := domain.Record(doc)
	if oid, ok := rec["_id"].(primitive.ObjectID); ok {
		rec["_id"] = oid.Hex()
	}
	return rec
}
