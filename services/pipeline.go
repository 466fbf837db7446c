package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"onboarding/models"

	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// Pipeline runs the submission intake sequence for every category:
// duplicate check, field validation, file-slot uploads, persistence.
type Pipeline struct {
	store   RecordStore
	storage BlobStorage
}

func NewPipeline(store RecordStore, storage BlobStorage) *Pipeline {
	return &Pipeline{store: store, storage: storage}
}

// Submit validates a submission against its category schema, uploads the
// attached files, and persists the resulting record. Validation and the
// duplicate check run before any upload, so client errors leave no side
// effects; a storage failure after uploads succeeded deletes those uploads
// best-effort before returning.
func (p *Pipeline) Submit(ctx context.Context, cat models.Category, sub models.Submission) (*models.Record, error) {
	sch, ok := models.SchemaFor(cat)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", cat)
	}

	email := strings.TrimSpace(sub.Fields["email"])
	existing, err := p.store.FindByEmail(ctx, cat, email)
	if err != nil {
		return nil, &StorageError{Op: "lookup", Err: err}
	}
	if existing != nil {
		log.Printf("%s submission rejected, email already exists: %s", sch.DisplayName, email)
		return nil, ErrDuplicateEmail
	}

	if err := validate(sch, sub); err != nil {
		return nil, err
	}

	var uploaded []models.StoredFile
	files := make(map[string][]string)
	for _, slot := range sch.FileSlots {
		buffers := sub.Files[slot.Name]
		if len(buffers) == 0 {
			continue
		}
		stored, err := p.uploadSlot(ctx, slot, buffers)
		for _, sf := range stored {
			if sf.Name != "" {
				uploaded = append(uploaded, sf)
			}
		}
		if err != nil {
			p.cleanup(ctx, uploaded)
			return nil, &StorageError{Op: "upload", Err: err}
		}
		urls := make([]string, len(stored))
		for i, sf := range stored {
			urls[i] = sf.URL
		}
		files[slot.Name] = urls
	}

	rec := &models.Record{
		Category:  cat,
		Fields:    collectFields(sch, sub),
		Files:     files,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.Insert(ctx, rec); err != nil {
		p.cleanup(ctx, uploaded)
		if errors.Is(err, ErrDuplicateEmail) {
			// Lost the race against a concurrent submission with the same
			// email; the unique index caught it.
			return nil, ErrDuplicateEmail
		}
		return nil, &StorageError{Op: "insert", Err: err}
	}
	log.Printf("%s record created: %s", sch.DisplayName, rec.ID.Hex())
	return rec, nil
}

// ListAll returns every record of a category, newest first.
func (p *Pipeline) ListAll(ctx context.Context, cat models.Category) ([]models.Record, error) {
	return p.store.List(ctx, cat, true)
}

// uploadSlot uploads every buffer of one slot concurrently and returns the
// stored files in submission order. On failure the returned slice still holds
// the uploads that did succeed, so the caller can delete them.
func (p *Pipeline) uploadSlot(ctx context.Context, slot models.FileSlotSpec, buffers []models.FileUpload) ([]models.StoredFile, error) {
	stored := make([]models.StoredFile, len(buffers))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range buffers {
		i, f := i, f
		g.Go(func() error {
			sf, err := p.storage.Upload(gctx, f.Data, f.Filename, f.ContentType, slot.Folder)
			if err != nil {
				return err
			}
			stored[i] = sf
			return nil
		})
	}
	return stored, g.Wait()
}

// cleanup deletes uploads left behind by a failed submission. Failures are
// logged and swallowed so they never mask the original error.
func (p *Pipeline) cleanup(ctx context.Context, uploaded []models.StoredFile) {
	for _, sf := range uploaded {
		if err := p.storage.Delete(ctx, sf.Name); err != nil {
			log.Printf("cleanup: failed to delete %s: %v", sf.Name, err)
		}
	}
}

// validate checks required fields, enum membership, number and date formats,
// then the file slots: required presence, max count, and allowed content
// types. First violation wins.
func validate(sch models.Schema, sub models.Submission) error {
	for _, f := range sch.Fields {
		v := strings.TrimSpace(sub.Fields[f.Name])
		if v == "" {
			if f.Required {
				return &ValidationError{Field: f.Name, Reason: "is required"}
			}
			continue
		}
		switch f.Type {
		case models.FieldChoice:
			if !contains(f.Allowed, v) {
				return &ValidationError{Field: f.Name, Reason: "must be one of: " + strings.Join(f.Allowed, ", ")}
			}
		case models.FieldNumber:
			if _, err := strconv.Atoi(v); err != nil {
				return &ValidationError{Field: f.Name, Reason: "must be a number"}
			}
		case models.FieldDate:
			if _, err := time.Parse(dateLayout, v); err != nil {
				return &ValidationError{Field: f.Name, Reason: "must be a date in YYYY-MM-DD format"}
			}
		}
	}

	for _, slot := range sch.FileSlots {
		buffers := sub.Files[slot.Name]
		if len(buffers) == 0 {
			if slot.Required {
				return &MissingFileError{Slot: slot.Name}
			}
			continue
		}
		if len(buffers) > slot.MaxCount {
			return &ValidationError{Field: slot.Name, Reason: fmt.Sprintf("accepts at most %d files", slot.MaxCount)}
		}
		if len(slot.ContentTypes) > 0 {
			for _, f := range buffers {
				if !contains(slot.ContentTypes, f.ContentType) {
					return &ValidationError{Field: slot.Name, Reason: "does not allow files of type " + f.ContentType}
				}
			}
		}
	}
	return nil
}

// collectFields keeps only schema-known fields, trimmed, dropping empties.
// Unknown form keys are discarded.
func collectFields(sch models.Schema, sub models.Submission) map[string]string {
	fields := make(map[string]string)
	for _, f := range sch.Fields {
		if v := strings.TrimSpace(sub.Fields[f.Name]); v != "" {
			fields[f.Name] = v
		}
	}
	return fields
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
