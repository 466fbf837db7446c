package services

import (
	"bytes"
	"context"
	"fmt"

	"onboarding/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlobStorage uploads file buffers to durable storage and deletes them by
// name. Implementations must be safe for concurrent use.
type BlobStorage interface {
	Upload(ctx context.Context, data []byte, filename, contentType, folder string) (models.StoredFile, error)
	Delete(ctx context.Context, name string) error
}

// GridFSStorage stores uploads in a MongoDB GridFS bucket. Objects are named
// <folder>/<uuid>-<filename> and served back under baseURL/files/<name>.
type GridFSStorage struct {
	bucket  *gridfs.Bucket
	baseURL string
}

func NewGridFSStorage(bucket *gridfs.Bucket, baseURL string) *GridFSStorage {
	return &GridFSStorage{bucket: bucket, baseURL: baseURL}
}

func (g *GridFSStorage) Upload(ctx context.Context, data []byte, filename, contentType, folder string) (models.StoredFile, error) {
	name := fmt.Sprintf("%s/%s-%s", folder, uuid.NewString(), filename)
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	if _, err := g.bucket.UploadFromStream(name, bytes.NewReader(data), opts); err != nil {
		return models.StoredFile{}, fmt.Errorf("uploading %s: %w", name, err)
	}
	return models.StoredFile{Name: name, URL: g.baseURL + "/files/" + name}, nil
}

func (g *GridFSStorage) Delete(ctx context.Context, name string) error {
	cursor, err := g.bucket.Find(bson.M{"filename": name})
	if err != nil {
		return fmt.Errorf("finding %s: %w", name, err)
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var file struct {
			ID interface{} `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return err
		}
		if err := g.bucket.Delete(file.ID); err != nil {
			return fmt.Errorf("deleting %s: %w", name, err)
		}
	}
	return cursor.Err()
}
