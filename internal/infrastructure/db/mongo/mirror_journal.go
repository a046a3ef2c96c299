package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vitrine/storefront/internal/core/domain"
	"github.com/vitrine/storefront/internal/core/ports"
)

const mirrorCollection = "mirror_journal"

var _ ports.MirrorJournal = (*MirrorJournal)(nil)

// MirrorJournal stores failed account mirror attempts.
type MirrorJournal struct {
	col *mongo.Collection
}

func NewMirrorJournal(db *mongo.Database) *MirrorJournal {
	return &MirrorJournal{col: db.Collection(mirrorCollection)}
}

type mirrorDoc struct {
	ID        string                   `bson:"_id"`
	AccountID int64                    `bson:"account_id"`
	Username  string                   `bson:"username"`
	Payload   domain.ExternalUserInput `bson:"payload"`
	Attempts  int                      `bson:"attempts"`
	LastError string                   `bson:"last_error"`
	Resolved  bool                     `bson:"resolved"`
	CreatedAt time.Time                `bson:"created_at"`
	UpdatedAt time.Time                `bson:"updated_at"`
}

func toDoc(e *domain.MirrorEntry) mirrorDoc {
	return mirrorDoc{
		ID:        e.ID,
		AccountID: e.AccountID,
		Username:  e.Username,
		Payload:   e.Payload,
		Attempts:  e.Attempts,
		LastError: e.LastError,
		Resolved:  e.Resolved,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (d mirrorDoc) entry() *domain.MirrorEntry {
	return &domain.MirrorEntry{
		ID:        d.ID,
		AccountID: d.AccountID,
		Username:  d.Username,
		Payload:   d.Payload,
		Attempts:  d.Attempts,
		LastError: d.LastError,
		Resolved:  d.Resolved,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the indexes used by the pending listing.
func (j *MirrorJournal) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := j.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "resolved", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
	})
	return err
}

func (j *MirrorJournal) Record(ctx context.Context, e *domain.MirrorEntry) error {
	if _, err := j.col.InsertOne(ctx, toDoc(e)); err != nil {
		return fmt.Errorf("insert mirror entry: %w", err)
	}
	return nil
}

// ListPending returns unresolved entries, newest first.
func (j *MirrorJournal) ListPending(ctx context.Context, limit int) ([]*domain.MirrorEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := j.col.Find(ctx, bson.M{"resolved": false}, opts)
	if err != nil {
		return nil, fmt.Errorf("find mirror entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mirrorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode mirror entries: %w", err)
	}
	entries := make([]*domain.MirrorEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.entry())
	}
	return entries, nil
}

func (j *MirrorJournal) Get(ctx context.Context, id string) (*domain.MirrorEntry, error) {
	var d mirrorDoc
	if err := j.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMirrorEntryNotFound
		}
		return nil, fmt.Errorf("find mirror entry: %w", err)
	}
	return d.entry(), nil
}

func (j *MirrorJournal) MarkResolved(ctx context.Context, id string) error {
	return j.update(ctx, id, bson.M{
		"$set": bson.M{"resolved": true, "updated_at": time.Now().UTC()},
	})
}

func (j *MirrorJournal) MarkFailed(ctx context.Context, id, reason string) error {
	return j.update(ctx, id, bson.M{
		"$set": bson.M{"last_error": reason, "updated_at": time.Now().UTC()},
		"$inc": bson.M{"attempts": 1},
	})
}

func (j *MirrorJournal) update(ctx context.Context, id string, update bson.M) error {
	res, err := j.col.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update mirror entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMirrorEntryNotFound
	}
	return nil
}
