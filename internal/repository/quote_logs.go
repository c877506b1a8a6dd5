// Package repository provides data access for quote audit logs.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuoteLogDocument represents a computed quote summary in MongoDB.
// This is the repository-level structure that maps directly to MongoDB.
type QuoteLogDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
	RequestID    string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Fingerprint  string             `bson:"fingerprint" json:"fingerprint"`
	Sistema      string             `bson:"sistema" json:"sistema"`
	ProposalType string             `bson:"proposal_type" json:"proposal_type"`
	AreaTelhado  float64            `bson:"area_telhado" json:"area_telhado"`
	ItemCount    int                `bson:"item_count" json:"item_count"`
	WarningCount int                `bson:"warning_count" json:"warning_count"`
	Total        string             `bson:"total" json:"total"`
	FromCache    bool               `bson:"from_cache" json:"from_cache"`
	DurationMs   int64              `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	Error        string             `bson:"error,omitempty" json:"error,omitempty"`
}

// QuoteLogsRepository provides methods for quote log operations at the
// repository level.
type QuoteLogsRepository struct {
	collection *mongo.Collection
}

// NewQuoteLogsRepository creates a new quote logs repository.
func NewQuoteLogsRepository(db *MongoDB) *QuoteLogsRepository {
	return &QuoteLogsRepository{
		collection: db.QuoteLogs,
	}
}

// Create inserts a new quote log document.
func (r *QuoteLogsRepository) Create(ctx context.Context, entry *QuoteLogDocument) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// QuoteLogQueryOptions provides options for querying quote logs.
type QuoteLogQueryOptions struct {
	RequestID   string
	Fingerprint string
	Sistema     string
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}

func (opts QuoteLogQueryOptions) filter() bson.M {
	filter := bson.M{}
	if opts.RequestID != "" {
		filter["request_id"] = opts.RequestID
	}
	if opts.Fingerprint != "" {
		filter["fingerprint"] = opts.Fingerprint
	}
	if opts.Sistema != "" {
		filter["sistema"] = opts.Sistema
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = timeFilter
	}
	return filter
}

// Query queries quote log documents with filters.
func (r *QuoteLogsRepository) Query(ctx context.Context, opts QuoteLogQueryOptions) ([]*QuoteLogDocument, error) {
	findOptions := options.Find().SetSort(bson.M{"timestamp": -1})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var entries []*QuoteLogDocument
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

// Count returns the count of quote log documents matching the filter.
func (r *QuoteLogsRepository) Count(ctx context.Context, opts QuoteLogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
