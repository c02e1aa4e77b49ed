package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"phonebook/internal/contacts/models"
	"phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// Mongo persists contacts in the "contacts" collection.
type Mongo struct {
	contacts *mongo.Collection
}

// NewMongo constructs a Mongo-backed contact store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{contacts: db.Collection("contacts")}
}

// contactDoc is the stored document shape. IDs are stored as their string
// form and the owner field is absent for global contacts.
type contactDoc struct {
	ID          string    `bson:"_id"`
	OwnerID     string    `bson:"owner_id,omitempty"`
	FirstName   string    `bson:"first_name"`
	LastName    string    `bson:"last_name,omitempty"`
	PhoneNumber string    `bson:"phone_number"`
	Address     string    `bson:"address,omitempty"`
	Email       string    `bson:"email,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toContactDoc(c *models.Contact) contactDoc {
	doc := contactDoc{
		ID:          c.ID.String(),
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
		Email:       c.Email,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.OwnerID != nil {
		doc.OwnerID = c.OwnerID.String()
	}
	return doc
}

func fromContactDoc(doc contactDoc) (*models.Contact, error) {
	id, err := domain.ParseContactID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt contact id %q: %w", doc.ID, err)
	}
	c := &models.Contact{
		ID:          id,
		FirstName:   doc.FirstName,
		LastName:    doc.LastName,
		PhoneNumber: doc.PhoneNumber,
		Address:     doc.Address,
		Email:       doc.Email,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.OwnerID != "" {
		owner, err := domain.ParseUserID(doc.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("corrupt owner id %q: %w", doc.OwnerID, err)
		}
		c.OwnerID = &owner
	}
	return c, nil
}

// EnsureIndexes creates the indexes backing visibility filters and the
// first-name ordering. Called once at startup.
func (s *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := s.contacts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "first_name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create contact indexes: %w", err)
	}
	return nil
}

// visibilityFilter matches contacts owned by the caller plus global ones,
// which have no owner field at all.
func visibilityFilter(caller domain.UserID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"owner_id": caller.String()},
		bson.M{"owner_id": bson.M{"$exists": false}},
	}}
}

// caseInsensitiveSort orders by first name ignoring case, matching the
// in-memory store. Collation strength 2 compares letters case-blind.
func caseInsensitiveSort(find *options.FindOptions) *options.FindOptions {
	return find.
		SetSort(bson.D{{Key: "first_name", Value: 1}}).
		SetCollation(&options.Collation{Locale: "en", Strength: 2})
}

func (s *Mongo) Insert(ctx context.Context, c *models.Contact) error {
	if _, err := s.contacts.InsertOne(ctx, toContactDoc(c)); err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// FindVisibleByID returns the contact only when it exists and is visible
// to the caller. An existing but invisible contact is indistinguishable
// from a missing one.
func (s *Mongo) FindVisibleByID(ctx context.Context, id domain.ContactID, caller domain.UserID) (*models.Contact, error) {
	filter := bson.M{"$and": bson.A{
		bson.M{"_id": id.String()},
		visibilityFilter(caller),
	}}

	var doc contactDoc
	err := s.contacts.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("contact %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return fromContactDoc(doc)
}

func (s *Mongo) CountVisible(ctx context.Context, caller domain.UserID) (int64, error) {
	n, err := s.contacts.CountDocuments(ctx, visibilityFilter(caller))
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return n, nil
}

func (s *Mongo) ListVisible(ctx context.Context, caller domain.UserID, offset, limit int64) ([]models.Contact, error) {
	opts := caseInsensitiveSort(options.Find()).SetSkip(offset).SetLimit(limit)
	return s.findPage(ctx, visibilityFilter(caller), opts)
}

func (s *Mongo) SearchVisible(ctx context.Context, caller domain.UserID, query string, field models.SearchField, offset, limit int64) ([]models.Contact, error) {
	filter := bson.M{"$and": bson.A{
		visibilityFilter(caller),
		searchFilter(query, field),
	}}
	opts := caseInsensitiveSort(options.Find()).SetSkip(offset).SetLimit(limit)
	return s.findPage(ctx, filter, opts)
}

// searchFilter builds a case-insensitive substring match. The query is
// quoted so regex metacharacters in user input match literally.
func searchFilter(query string, field models.SearchField) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	switch field {
	case models.SearchFirstName:
		return bson.M{"first_name": pattern}
	case models.SearchLastName:
		return bson.M{"last_name": pattern}
	case models.SearchPhoneNumber:
		return bson.M{"phone_number": pattern}
	case models.SearchEmail:
		return bson.M{"email": pattern}
	default:
		return bson.M{"$or": bson.A{
			bson.M{"first_name": pattern},
			bson.M{"last_name": pattern},
			bson.M{"phone_number": pattern},
			bson.M{"email": pattern},
		}}
	}
}

func (s *Mongo) findPage(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Contact, error) {
	cursor, err := s.contacts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []contactDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}

	out := make([]models.Contact, 0, len(docs))
	for _, doc := range docs {
		c, err := fromContactDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

// Replace swaps the stored contact for c by ID. The caller is responsible
// for having fetched the contact through a visibility check first.
func (s *Mongo) Replace(ctx context.Context, c *models.Contact) error {
	res, err := s.contacts.ReplaceOne(ctx, bson.M{"_id": c.ID.String()}, toContactDoc(c))
	if err != nil {
		return fmt.Errorf("replace contact: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("contact %s: %w", c.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *Mongo) Delete(ctx context.Context, id domain.ContactID) error {
	res, err := s.contacts.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("contact %s: %w", id, sentinel.ErrNotFound)
	}
	return nil
}
