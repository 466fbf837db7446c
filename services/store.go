package services

import (
	"context"
	"fmt"
	"time"

	"onboarding/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecordStore persists one collection of records per category.
type RecordStore interface {
	// FindByEmail returns the record with the given email, or nil when none
	// exists.
	FindByEmail(ctx context.Context, cat models.Category, email string) (*models.Record, error)
	// Insert writes a new record and assigns its ID. Returns
	// ErrDuplicateEmail when the email is already taken.
	Insert(ctx context.Context, rec *models.Record) error
	// List returns every record of a category; newest first when requested,
	// insertion order otherwise.
	List(ctx context.Context, cat models.Category, newestFirst bool) ([]models.Record, error)
}

// MongoStore keeps records in one MongoDB collection per category, stored
// flat the way the intake forms submit them.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// EnsureIndexes creates a unique index on email in every category collection.
// The pipeline checks for duplicates before writing, but the index is what
// actually closes the race between two concurrent submissions.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	for _, sch := range models.AllSchemas() {
		_, err := s.db.Collection(sch.Collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("creating email index on %s: %w", sch.Collection, err)
		}
	}
	return nil
}

func (s *MongoStore) FindByEmail(ctx context.Context, cat models.Category, email string) (*models.Record, error) {
	sch, ok := models.SchemaFor(cat)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", cat)
	}
	var doc bson.M
	err := s.db.Collection(sch.Collection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := recordFromDoc(sch, doc)
	return &rec, nil
}

func (s *MongoStore) Insert(ctx context.Context, rec *models.Record) error {
	sch, ok := models.SchemaFor(rec.Category)
	if !ok {
		return fmt.Errorf("unknown category %q", rec.Category)
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	_, err := s.db.Collection(sch.Collection).InsertOne(ctx, docFromRecord(sch, rec))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) List(ctx context.Context, cat models.Category, newestFirst bool) ([]models.Record, error) {
	sch, ok := models.SchemaFor(cat)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", cat)
	}
	sort := 1
	if newestFirst {
		sort = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: sort}})
	cursor, err := s.db.Collection(sch.Collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, recordFromDoc(sch, doc))
	}
	return records, cursor.Err()
}

// docFromRecord flattens a record into the persisted document shape:
// schema fields at the top level, single-file slots as a string URL,
// multi-file slots as an array of URLs.
func docFromRecord(sch models.Schema, rec *models.Record) bson.M {
	doc := bson.M{
		"_id":       rec.ID,
		"createdAt": rec.CreatedAt,
	}
	for _, f := range sch.Fields {
		if v, ok := rec.Fields[f.Name]; ok {
			doc[f.Name] = v
		}
	}
	for _, slot := range sch.FileSlots {
		urls := rec.Files[slot.Name]
		if slot.MaxCount == 1 {
			single := ""
			if len(urls) > 0 {
				single = urls[0]
			}
			doc[slot.Name] = single
		} else {
			if urls == nil {
				urls = []string{}
			}
			doc[slot.Name] = urls
		}
	}
	return doc
}

func recordFromDoc(sch models.Schema, doc bson.M) models.Record {
	rec := models.Record{
		Category: sch.Category,
		Fields:   make(map[string]string),
		Files:    make(map[string][]string),
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		rec.ID = id
	}
	switch v := doc["createdAt"].(type) {
	case primitive.DateTime:
		rec.CreatedAt = v.Time()
	case time.Time:
		rec.CreatedAt = v
	}
	for _, f := range sch.Fields {
		if v, ok := doc[f.Name].(string); ok && v != "" {
			rec.Fields[f.Name] = v
		}
	}
	for _, slot := range sch.FileSlots {
		switch v := doc[slot.Name].(type) {
		case string:
			if v != "" {
				rec.Files[slot.Name] = []string{v}
			}
		case primitive.A:
			urls := make([]string, 0, len(v))
			for _, u := range v {
				if s, ok := u.(string); ok {
					urls = append(urls, s)
				}
			}
			if len(urls) > 0 {
				rec.Files[slot.Name] = urls
			}
		}
	}
	return rec
}
