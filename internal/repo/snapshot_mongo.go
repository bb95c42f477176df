package repo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"exusiai.dev/roster-backend/internal/app/appconfig"
	"exusiai.dev/roster-backend/internal/model"
	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

type MongoSnapshot struct {
	coll *mongo.Collection
}

var _ SnapshotStore = (*MongoSnapshot)(nil)

func NewMongoSnapshot(db *mongo.Database, conf *appconfig.Config) (*MongoSnapshot, error) {
	r := &MongoSnapshot{
		coll: db.Collection(conf.MongoCollection),
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "expiresAt", Value: 1}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create expiresAt index")
	}

	return r, nil
}

func (r *MongoSnapshot) GetSnapshotByID(ctx context.Context, id string) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apierr.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *MongoSnapshot) SnapshotExists(ctx context.Context, id string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoSnapshot) CreateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	_, err := r.coll.InsertOne(ctx, snapshot)
	return err
}

func (r *MongoSnapshot) UpdateSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": snapshot.ID}, bson.M{
		"$set": bson.M{
			"characters": snapshot.Characters,
			"updatedAt":  snapshot.UpdatedAt,
			"expiresAt":  snapshot.ExpiresAt,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apierr.ErrNotFound
	}
	return nil
}

// DeleteExpiredSnapshots deletes inside a multi-document transaction. Standalone servers
// cannot run one; there the plain DeleteMany is atomic per document only and an
// interrupted sweep leaves the rest to the next run.
func (r *MongoSnapshot) DeleteExpiredSnapshots(ctx context.Context, now time.Time) (int, error) {
	filter := bson.M{"expiresAt": bson.M{"$lt": now}}

	sess, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return 0, errors.Wrap(err, "failed to start mongo session")
	}
	defer sess.EndSession(ctx)

	deleted, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.coll.DeleteMany(sc, filter)
		if err != nil {
			return nil, err
		}
		return res.DeletedCount, nil
	})
	if transactionUnsupported(err) {
		log.Warn().
			Str("evt.name", "sweep.mongo.no_transaction").
			Err(err).
			Msg("mongo deployment does not support transactions, sweeping without one")

		res, err := r.coll.DeleteMany(ctx, filter)
		if err != nil {
			return 0, err
		}
		return int(res.DeletedCount), nil
	}
	if err != nil {
		return 0, err
	}
	return int(deleted.(int64)), nil
}

// transactionUnsupported reports the IllegalOperation error a standalone mongod answers
// transactions with.
func transactionUnsupported(err error) bool {
	var ce mongo.CommandError
	return errors.As(err, &ce) && ce.Code == 20
}

func (r *MongoSnapshot) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
