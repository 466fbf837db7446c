package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"onboarding/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := services.NewMemoryStore()
	storage := services.NewMemoryStorage("http://test")
	pipeline := services.NewPipeline(store, storage)

	r := mux.NewRouter()
	RegisterRoutes(r, pipeline, store)
	return r
}

// doctorForm builds a multipart doctor submission with every required field
// and a PAN card attachment. omit drops fields by name.
func doctorForm(t *testing.T, email string, omit ...string) (*bytes.Buffer, string) {
	t.Helper()
	fields := map[string]string{
		"firstName":           "Asha",
		"lastName":            "Rao",
		"email":               email,
		"phone":               "9000000000",
		"registrationNumber":  "MH-12345",
		"registrationCouncil": "Maharashtra Medical Council",
		"registrationYear":    "2012",
		"qualification":       "MBBS",
		"yearOfCompletion":    "2010",
		"collegeInstitute":    "Grant Medical College",
		"yearsOfExperience":   "12",
	}
	for _, name := range omit {
		delete(fields, name)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	part, err := writer.CreateFormFile("panCard", "pan.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 pan card"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func postDoctor(t *testing.T, router *mux.Router, email string, omit ...string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := doctorForm(t, email, omit...)
	req := httptest.NewRequest(http.MethodPost, "/api/doctors/add", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAddHandlerCreatesRecord(t *testing.T) {
	router := newTestRouter(t)
	resp := postDoctor(t, router, "new@example.com")

	require.Equal(t, http.StatusCreated, resp.Code)
	var body struct {
		Message string                 `json:"message"`
		Record  map[string]interface{} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Doctor added successfully", body.Message)
	assert.Equal(t, "Asha", body.Record["firstName"])
	assert.NotEmpty(t, body.Record["_id"])
	assert.Contains(t, body.Record["panCard"], "http://test/files/pan_cards/")
}

func TestAddHandlerDuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postDoctor(t, router, "dup@example.com").Code)

	resp := postDoctor(t, router, "dup@example.com")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email already exists!")
}

func TestAddHandlerValidation(t *testing.T) {
	router := newTestRouter(t)
	resp := postDoctor(t, router, "invalid@example.com", "registrationNumber")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "registrationNumber is required")
}

func TestListHandlerNewestFirst(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postDoctor(t, router, "first@example.com").Code)
	require.Equal(t, http.StatusCreated, postDoctor(t, router, "second@example.com").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/all", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "second@example.com", records[0]["email"])
	assert.Equal(t, "first@example.com", records[1]["email"])
}

func TestListHandlerEmptyCategory(t *testing.T) {
	router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/lab/all", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())
}

func TestDownloadHandlerWritesWorkbook(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, postDoctor(t, router, "export@example.com").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/doctors/download", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=doctors.xlsx", resp.Header().Get("Content-Disposition"))

	workbook, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Doctors")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SNo", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
}
