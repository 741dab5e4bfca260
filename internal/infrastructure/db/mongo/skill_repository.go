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

const collectionSkills = "skills"

// SkillRepository implements ports.SkillRepository using MongoDB.
type SkillRepository struct {
	col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{col: db.Collection(collectionSkills)}
}

type employmentDoc struct {
	Years    int    `bson:"years"`
	Employer string `bson:"employer"`
}

type skillDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID         string             `bson:"owner_id"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description,omitempty"`
	Category        string             `bson:"category"`
	Type            string             `bson:"type"`
	ExperienceYears int                `bson:"experience_years"`
	Employment      *employmentDoc     `bson:"employment,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func toSkillDoc(s *domain.Skill) skillDoc {
	doc := skillDoc{
		OwnerID:         s.OwnerID,
		Title:           s.Title,
		Description:     s.Description,
		Category:        string(s.Category),
		Type:            string(s.Type),
		ExperienceYears: s.ExperienceYears,
		CreatedAt:       s.CreatedAt,
	}
	if s.Employment != nil {
		doc.Employment = &employmentDoc{Years: s.Employment.Years, Employer: s.Employment.Employer}
	}
	return doc
}

func (d skillDoc) toDomain() *domain.Skill {
	s := &domain.Skill{
		ID:              d.ID.Hex(),
		OwnerID:         d.OwnerID,
		Title:           d.Title,
		Description:     d.Description,
		Category:        domain.SkillCategory(d.Category),
		Type:            domain.SkillType(d.Type),
		ExperienceYears: d.ExperienceYears,
		CreatedAt:       d.CreatedAt,
	}
	if d.Employment != nil {
		s.Employment = &domain.Employment{Years: d.Employment.Years, Employer: d.Employment.Employer}
	}
	return s
}

// Create inserts a new skill document and returns the skill with its
// server-generated id.
func (r *SkillRepository) Create(ctx context.Context, s *domain.Skill) (*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toSkillDoc(s))
	if err != nil {
		return nil, err
	}

	created := *s
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*domain.Skill, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSkillNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc skillDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// FindByIDs resolves a batch of skill ids. Unknown or malformed ids are
// quietly skipped so dangling swap references stay readable.
func (r *SkillRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Skill, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	out := make(map[string]*domain.Skill, len(oids))
	if len(oids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc skillDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		s := doc.toDomain()
		out[s.ID] = s
	}
	return out, cur.Err()
}

// ListAll returns every skill in insertion order.
func (r *SkillRepository) ListAll(ctx context.Context) ([]*domain.Skill, error) {
	return r.list(ctx, bson.M{})
}

// ListByOwner returns ownerID's skills in insertion order.
func (r *SkillRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Skill, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *SkillRepository) list(ctx context.Context, filter bson.M) ([]*domain.Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// ObjectIDs are time-ordered, so sorting on _id preserves insertion order.
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []*domain.Skill
	for cur.Next(ctx) {
		var doc skillDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		skills = append(skills, doc.toDomain())
	}
	return skills, cur.Err()
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSkillNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSkillNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list queries rely on.
func (r *SkillRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
