package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category identifies one of the onboarding submission types.
type Category string

const (
	CategoryDoctor      Category = "doctor"
	CategoryFranchise   Category = "franchise"
	CategoryHospital    Category = "hospital"
	CategoryLab         Category = "lab"
	CategoryPathology   Category = "pathology"
	CategoryHealthAgent Category = "healthagent"
)

// FieldType is the semantic type of a form field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumber
	FieldDate
	FieldChoice
)

// FieldSpec describes one form field of a category.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool
	Allowed  []string // membership set for FieldChoice
}

// FileSlotSpec describes a named attachment point of a category.
// An empty ContentTypes set accepts any file type.
type FileSlotSpec struct {
	Name         string
	Folder       string // storage folder the uploads land in
	MaxCount     int
	Required     bool
	ContentTypes []string
}

// Schema is the fixed field and file-slot definition for a Category.
type Schema struct {
	Category    Category
	DisplayName string // used in response messages, e.g. "Doctor"
	RoutePath   string // URL segment under /api, e.g. "doctors"
	Collection  string // MongoDB collection name
	SheetName   string // worksheet name for the spreadsheet export
	ExportFile  string // attachment file name, e.g. "doctors.xlsx"
	Fields      []FieldSpec
	FileSlots   []FileSlotSpec
}

// Slot returns the file-slot spec with the given name.
func (s Schema) Slot(name string) (FileSlotSpec, bool) {
	for _, slot := range s.FileSlots {
		if slot.Name == name {
			return slot, true
		}
	}
	return FileSlotSpec{}, false
}

// FileUpload is one in-memory file buffer from a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Submission is one intake request: raw field values plus file buffers per
// slot. It is transient and never persisted in this form.
type Submission struct {
	Fields map[string]string
	Files  map[string][]FileUpload
}

// StoredFile is the result of uploading one buffer to blob storage. Name is
// the identifier deletion uses; URL is what gets persisted on the record.
type StoredFile struct {
	Name string
	URL  string
}

// Record is the persisted result of a successful submission. Field values are
// kept by name and file slots by their storage URLs; the record is immutable
// once written.
type Record struct {
	ID        primitive.ObjectID
	Category  Category
	Fields    map[string]string
	Files     map[string][]string
	CreatedAt time.Time
}

// FieldValue returns the stored value for a field, or "" when absent.
func (r Record) FieldValue(name string) string {
	return r.Fields[name]
}

// FileURLs returns the stored URLs for a file slot in upload order.
func (r Record) FileURLs(slot string) []string {
	return r.Files[slot]
}

// MarshalJSON renders the record flat, the way it is stored: field names at
// the top level, single-file slots as a string URL and multi-file slots as an
// array, plus _id and createdAt.
func (r Record) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(r.Fields)+len(r.Files)+2)
	for name, value := range r.Fields {
		doc[name] = value
	}
	if sch, ok := SchemaFor(r.Category); ok {
		for _, slot := range sch.FileSlots {
			urls := r.Files[slot.Name]
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
	}
	doc["_id"] = r.ID.Hex()
	doc["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339)
	return json.Marshal(doc)
}
