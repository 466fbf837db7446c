package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"onboarding/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline() (*Pipeline, *MemoryStore, *MemoryStorage) {
	store := NewMemoryStore()
	storage := NewMemoryStorage("http://test")
	return NewPipeline(store, storage), store, storage
}

// validSubmission fills every required field of the category with a value of
// the right shape and attaches one file per required slot.
func validSubmission(t *testing.T, cat models.Category, email string) models.Submission {
	t.Helper()
	sch, ok := models.SchemaFor(cat)
	require.True(t, ok)

	sub := models.Submission{
		Fields: make(map[string]string),
		Files:  make(map[string][]models.FileUpload),
	}
	for _, f := range sch.Fields {
		if !f.Required {
			continue
		}
		switch {
		case f.Name == "email":
			sub.Fields[f.Name] = email
		case f.Type == models.FieldChoice:
			sub.Fields[f.Name] = f.Allowed[0]
		case f.Type == models.FieldNumber:
			sub.Fields[f.Name] = "7"
		case f.Type == models.FieldDate:
			sub.Fields[f.Name] = "2019-03-14"
		default:
			sub.Fields[f.Name] = "sample " + f.Name
		}
	}
	for _, slot := range sch.FileSlots {
		if !slot.Required {
			continue
		}
		contentType := "application/pdf"
		if len(slot.ContentTypes) > 0 {
			contentType = slot.ContentTypes[0]
		}
		sub.Files[slot.Name] = []models.FileUpload{{
			Filename:    slot.Name + ".pdf",
			ContentType: contentType,
			Data:        []byte("file content for " + slot.Name),
		}}
	}
	return sub
}

func TestSubmitAllCategories(t *testing.T) {
	for _, sch := range models.AllSchemas() {
		t.Run(string(sch.Category), func(t *testing.T) {
			pipeline, store, _ := newTestPipeline()
			email := fmt.Sprintf("%s@example.com", sch.Category)
			sub := validSubmission(t, sch.Category, email)

			rec, err := pipeline.Submit(context.Background(), sch.Category, sub)
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.False(t, rec.ID.IsZero())
			assert.False(t, rec.CreatedAt.IsZero())

			for name, value := range sub.Fields {
				assert.Equal(t, value, rec.FieldValue(name), "field %s", name)
			}
			for slot, buffers := range sub.Files {
				assert.Len(t, rec.FileURLs(slot), len(buffers), "slot %s", slot)
				for _, url := range rec.FileURLs(slot) {
					assert.Contains(t, url, "http://test/files/")
				}
			}
			assert.Equal(t, 1, store.Count(sch.Category))
		})
	}
}

func TestSubmitDuplicateEmail(t *testing.T) {
	pipeline, store, storage := newTestPipeline()
	sub := validSubmission(t, models.CategoryDoctor, "dup@example.com")

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	require.NoError(t, err)
	uploadsAfterFirst := storage.Uploads()

	_, err = pipeline.Submit(context.Background(), models.CategoryDoctor, validSubmission(t, models.CategoryDoctor, "dup@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, store.Count(models.CategoryDoctor))
	assert.Equal(t, uploadsAfterFirst, storage.Uploads(), "duplicate must be detected before any upload")
}

func TestSubmitMissingRequiredField(t *testing.T) {
	pipeline, store, storage := newTestPipeline()
	sub := validSubmission(t, models.CategoryDoctor, "missing@example.com")
	delete(sub.Fields, "registrationNumber")

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "registrationNumber", vErr.Field)
	assert.Zero(t, storage.Uploads(), "validation must precede uploads")
	assert.Zero(t, store.Count(models.CategoryDoctor))
}

func TestSubmitEnumMembership(t *testing.T) {
	t.Run("doctor establishment rejects franchise values", func(t *testing.T) {
		pipeline, _, storage := newTestPipeline()
		sub := validSubmission(t, models.CategoryDoctor, "enum1@example.com")
		sub.Fields["establishment"] = "yes"

		_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "establishment", vErr.Field)
		assert.Zero(t, storage.Uploads())
	})

	t.Run("lab nablAccredited rejects Maybe", func(t *testing.T) {
		pipeline, store, _ := newTestPipeline()
		sub := validSubmission(t, models.CategoryLab, "enum2@example.com")
		sub.Fields["nablAccredited"] = "Maybe"

		_, err := pipeline.Submit(context.Background(), models.CategoryLab, sub)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "nablAccredited", vErr.Field)
		assert.Zero(t, store.Count(models.CategoryLab))
	})
}

func TestSubmitMissingRequiredFile(t *testing.T) {
	pipeline, store, _ := newTestPipeline()
	sub := validSubmission(t, models.CategoryDoctor, "nofile@example.com")
	delete(sub.Files, "panCard")

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	var fErr *MissingFileError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, "panCard", fErr.Slot)
	assert.Zero(t, store.Count(models.CategoryDoctor))
}

func TestSubmitTooManyFiles(t *testing.T) {
	pipeline, _, storage := newTestPipeline()
	sub := validSubmission(t, models.CategoryDoctor, "toomany@example.com")
	for i := 0; i < 6; i++ {
		sub.Files["certificates"] = append(sub.Files["certificates"], models.FileUpload{
			Filename:    fmt.Sprintf("cert%d.pdf", i),
			ContentType: "application/pdf",
			Data:        []byte("cert"),
		})
	}

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "certificates", vErr.Field)
	assert.Zero(t, storage.Uploads())
}

func TestSubmitRejectsDisallowedContentType(t *testing.T) {
	pipeline, _, storage := newTestPipeline()
	sub := validSubmission(t, models.CategoryLab, "badtype@example.com")
	sub.Files["kycDocument"] = []models.FileUpload{{
		Filename:    "kyc.txt",
		ContentType: "text/plain",
		Data:        []byte("not a document"),
	}}

	_, err := pipeline.Submit(context.Background(), models.CategoryLab, sub)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "kycDocument", vErr.Field)
	assert.Zero(t, storage.Uploads())
}

func TestSubmitUploadFailureCleansUp(t *testing.T) {
	pipeline, store, storage := newTestPipeline()
	sub := validSubmission(t, models.CategoryDoctor, "cleanup@example.com")
	sub.Files["certificates"] = []models.FileUpload{
		{Filename: "cert1.pdf", ContentType: "application/pdf", Data: []byte("one")},
		{Filename: "cert2.pdf", ContentType: "application/pdf", Data: []byte("two")},
	}
	// panCard is upload 1; one of the two certificates becomes upload 3.
	storage.FailUploadAt = 3

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	var sErr *StorageError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "upload", sErr.Op)
	assert.Zero(t, store.Count(models.CategoryDoctor))
	assert.Zero(t, storage.Live(), "every successful upload must be deleted")
	assert.NotEmpty(t, storage.Deleted())
}

func TestSubmitInsertFailureCleansUp(t *testing.T) {
	pipeline, store, storage := newTestPipeline()
	store.InsertErr = errors.New("write refused")
	sub := validSubmission(t, models.CategoryDoctor, "insertfail@example.com")

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	var sErr *StorageError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "insert", sErr.Op)
	assert.Zero(t, storage.Live())
}

func TestSubmitInsertRaceMapsToDuplicate(t *testing.T) {
	pipeline, store, storage := newTestPipeline()
	store.InsertErr = ErrDuplicateEmail
	sub := validSubmission(t, models.CategoryDoctor, "race@example.com")

	_, err := pipeline.Submit(context.Background(), models.CategoryDoctor, sub)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Zero(t, storage.Live(), "uploads made before losing the race must be deleted")
}

func TestListAllNewestFirst(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		_, err := pipeline.Submit(context.Background(), models.CategoryPathology, validSubmission(t, models.CategoryPathology, email))
		require.NoError(t, err)
	}

	records, err := pipeline.ListAll(context.Background(), models.CategoryPathology)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, email := range []string{"c@example.com", "b@example.com", "a@example.com"} {
		assert.Equal(t, email, records[i].FieldValue("email"))
	}
}

func TestSubmitUnknownCategory(t *testing.T) {
	pipeline, _, _ := newTestPipeline()
	_, err := pipeline.Submit(context.Background(), models.Category("clinic"), models.Submission{})
	assert.Error(t, err)
}
