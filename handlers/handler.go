package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"onboarding/models"
	"onboarding/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
)

// multipart request bodies are parsed fully into memory, capped at 10MB.
const maxUploadBytes = 10 << 20

// RegisterRoutes mounts the add/all/download handler set of every category
// under /api/<category>.
func RegisterRoutes(r *mux.Router, pipeline *services.Pipeline, store services.RecordStore) {
	for _, sch := range models.AllSchemas() {
		api := r.PathPrefix("/api/" + sch.RoutePath).Subrouter()
		api.HandleFunc("/add", AddHandler(pipeline, sch)).Methods("POST")
		api.HandleFunc("/all", ListHandler(pipeline, sch)).Methods("GET")
		api.HandleFunc("/download", DownloadHandler(store, sch)).Methods("GET")
	}
}

// AddHandler accepts a multipart submission for one category and runs it
// through the intake pipeline.
func AddHandler(pipeline *services.Pipeline, sch models.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			log.Printf("failed to parse %s submission: %v", sch.DisplayName, err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Cannot Submit Null data"})
			return
		}

		sub, err := submissionFromForm(r, sch)
		if err != nil {
			log.Printf("failed to read %s submission files: %v", sch.DisplayName, err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Failed to read uploaded files"})
			return
		}

		rec, err := pipeline.Submit(r.Context(), sch.Category, sub)
		if err != nil {
			writeIntakeError(w, sch, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": sch.DisplayName + " added successfully",
			"record":  rec,
		})
	}
}

// ListHandler returns every record of a category, newest first.
func ListHandler(pipeline *services.Pipeline, sch models.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := pipeline.ListAll(r.Context(), sch.Category)
		if err != nil {
			log.Printf("failed to list %s records: %v", sch.DisplayName, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprintf("Error fetching %s records", sch.DisplayName),
			})
			return
		}
		if records == nil {
			records = []models.Record{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// DownloadHandler streams the category's records as an xlsx attachment. The
// store is read oldest first so row numbers follow insertion order.
func DownloadHandler(store services.RecordStore, sch models.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := store.List(r.Context(), sch.Category, false)
		if err != nil {
			log.Printf("failed to export %s records: %v", sch.DisplayName, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error generating Excel file"})
			return
		}

		rows := services.Project(sch.Category, records)
		workbook, err := services.Workbook(sch, rows)
		if err != nil {
			log.Printf("failed to build %s workbook: %v", sch.DisplayName, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error generating Excel file"})
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+sch.ExportFile)
		if err := workbook.Write(w); err != nil {
			log.Printf("failed to write %s workbook: %v", sch.DisplayName, err)
		}
	}
}

// FileHandler serves a stored file back from GridFS by object name.
func FileHandler(bucket *gridfs.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		stream, err := bucket.OpenDownloadStreamByName(name)
		if err != nil {
			if errors.Is(err, gridfs.ErrFileNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
				http.Error(w, "File not found", http.StatusNotFound)
			} else {
				log.Printf("failed to open stored file %s: %v", name, err)
				http.Error(w, "Error reading stored file", http.StatusInternalServerError)
			}
			return
		}
		defer stream.Close()

		contentType := "application/octet-stream"
		if file := stream.GetFile(); file != nil && file.Metadata != nil {
			if v, err := file.Metadata.LookupErr("contentType"); err == nil {
				if s, ok := v.StringValueOK(); ok && s != "" {
					contentType = s
				}
			}
		}
		w.Header().Set("Content-Type", contentType)
		if _, err := io.Copy(w, stream); err != nil {
			log.Printf("failed to stream stored file %s: %v", name, err)
		}
	}
}

// submissionFromForm converts the parsed multipart form into a Submission,
// reading each file part of the schema's slots into memory.
func submissionFromForm(r *http.Request, sch models.Schema) (models.Submission, error) {
	sub := models.Submission{
		Fields: make(map[string]string),
		Files:  make(map[string][]models.FileUpload),
	}
	for key, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			sub.Fields[key] = values[0]
		}
	}
	for _, slot := range sch.FileSlots {
		for _, header := range r.MultipartForm.File[slot.Name] {
			file, err := header.Open()
			if err != nil {
				return sub, err
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return sub, err
			}
			sub.Files[slot.Name] = append(sub.Files[slot.Name], models.FileUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return sub, nil
}

func writeIntakeError(w http.ResponseWriter, sch models.Schema, err error) {
	var vErr *services.ValidationError
	var fErr *services.MissingFileError
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already exists!"})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": vErr.Error()})
	case errors.As(err, &fErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": fErr.Error()})
	default:
		log.Printf("error saving %s record: %v", sch.DisplayName, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": fmt.Sprintf("Error saving %s data", sch.DisplayName),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
