package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswap/skillswap-api/internal/core/domain"
)

const collectionSwaps = "swap_requests"

// SwapRepository implements ports.SwapRepository using MongoDB.
type SwapRepository struct {
	col *mongo.Collection
}

func NewSwapRepository(db *mongo.Database) *SwapRepository {
	return &SwapRepository{col: db.Collection(collectionSwaps)}
}

type swapDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FromUserID       string             `bson:"from_user_id"`
	ToUserID         string             `bson:"to_user_id"`
	OfferedSkillID   string             `bson:"offered_skill_id"`
	RequestedSkillID string             `bson:"requested_skill_id"`
	Status           string             `bson:"status"`
	CreatedAt        time.Time          `bson:"created_at"`
}

func (d swapDoc) toDomain() *domain.SwapRequest {
	return &domain.SwapRequest{
		ID:               d.ID.Hex(),
		FromUserID:       d.FromUserID,
		ToUserID:         d.ToUserID,
		OfferedSkillID:   d.OfferedSkillID,
		RequestedSkillID: d.RequestedSkillID,
		Status:           domain.SwapStatus(d.Status),
		CreatedAt:        d.CreatedAt,
	}
}

// Create inserts a new swap request and returns it with its generated id.
func (r *SwapRepository) Create(ctx context.Context, req *domain.SwapRequest) (*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := swapDoc{
		FromUserID:       req.FromUserID,
		ToUserID:         req.ToUserID,
		OfferedSkillID:   req.OfferedSkillID,
		RequestedSkillID: req.RequestedSkillID,
		Status:           string(req.Status),
		CreatedAt:        req.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SwapRepository) FindByID(ctx context.Context, id string) (*domain.SwapRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSwapNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc swapDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSwapNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListReceived returns requests addressed to userID in insertion order.
func (r *SwapRepository) ListReceived(ctx context.Context, userID string) ([]*domain.SwapRequest, error) {
	return r.list(ctx, bson.M{"to_user_id": userID})
}

// ListSent returns requests sent by userID in insertion order.
func (r *SwapRepository) ListSent(ctx context.Context, userID string) ([]*domain.SwapRequest, error) {
	return r.list(ctx, bson.M{"from_user_id": userID})
}

func (r *SwapRepository) list(ctx context.Context, filter bson.M) ([]*domain.SwapRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var requests []*domain.SwapRequest
	for cur.Next(ctx) {
		var doc swapDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		requests = append(requests, doc.toDomain())
	}
	return requests, cur.Err()
}

// UpdateStatus compare-and-sets the status: the filter matches only while
// the stored status is still pending, so a request that was already decided
// cannot be overwritten. Distinguishes a missing request from a lost race by
// re-reading on miss.
func (r *SwapRepository) UpdateStatus(ctx context.Context, id string, status domain.SwapStatus) (*domain.SwapRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSwapNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{"status": string(status)}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc swapDoc
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// No pending document matched: either the id is unknown or the request
	// is already terminal.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrStatusConflict
}

// EnsureIndexes creates the indexes the per-user views rely on.
func (r *SwapRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "to_user_id", Value: 1}}},
		{Keys: bson.D{{Key: "from_user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
