package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"phonebook/internal/identity/models"
	"phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// Mongo persists accounts in the "users" collection.
type Mongo struct {
	users *mongo.Collection
}

// NewMongo constructs a Mongo-backed account store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{users: db.Collection("users")}
}

// userDoc is the stored document shape. IDs are stored as their string form
// and the role field is present only for admins.
type userDoc struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

func toUserDoc(u *models.User) userDoc {
	doc := userDoc{
		ID:           u.ID.String(),
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
	if u.Role.IsAdmin() {
		doc.Role = u.Role.String()
	}
	return doc
}

func fromUserDoc(doc userDoc) (*models.User, error) {
	id, err := domain.ParseUserID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", doc.ID, err)
	}
	return &models.User{
		ID:           id,
		Username:     doc.Username,
		Email:        doc.Email,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		PasswordHash: doc.PasswordHash,
		Role:         domain.ParseRole(doc.Role),
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// EnsureIndexes creates the unique indexes backing username and email
// uniqueness. Called once at startup.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

// CreateIfAvailable inserts the account unless its username or email is
// taken. The unique indexes are the real guarantee; the pre-flight lookup
// only produces the friendlier sentinel for the common case.
func (s *Mongo) CreateIfAvailable(ctx context.Context, u *models.User) error {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": u.Username},
		bson.M{"email": u.Email},
	}}
	err := s.users.FindOne(ctx, filter).Err()
	if err == nil {
		return fmt.Errorf("username or email: %w", sentinel.ErrAlreadyUsed)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("check user availability: %w", err)
	}

	if _, err := s.users.InsertOne(ctx, toUserDoc(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("username or email: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Mongo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *Mongo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Mongo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user: %w", sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(doc)
}
