package book

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/http/handlers/resource"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore"
	"github.com/aanand-mishra/library-api/internal/storage/sqlstore/sqlstoretest"
	"github.com/aanand-mishra/library-api/internal/types"
)

func setup(t *testing.T) (*http.ServeMux, *sqlstore.Store) {
	t.Helper()
	store := sqlstoretest.New(t)

	mux := http.NewServeMux()
	Register(mux, store.Books(), resource.Options{
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return mux, store
}

func send(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, r))
	return w
}

func decodeBook(t *testing.T, w *httptest.ResponseRecorder) types.Book {
	t.Helper()
	var b types.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestBookLifecycle(t *testing.T) {
	mux, _ := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Herbert","isbn":"123","quantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBook(t, w)
	require.Positive(t, created.ID)

	path := fmt.Sprintf("/api/books/%d", created.ID)

	w = send(t, mux, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.Book{ID: created.ID, Title: "Dune", Author: "Herbert", ISBN: "123", Quantity: 5}, decodeBook(t, w))

	w = send(t, mux, http.MethodPut, path,
		`{"title":"Dune","author":"Herbert","isbn":"123","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeBook(t, w).Quantity)

	w = send(t, mux, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book deleted successfully"}`, w.Body.String())

	w = send(t, mux, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Book not found"}`, w.Body.String())

	w = send(t, mux, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_InvalidDoesNotWrite(t *testing.T) {
	mux, store := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books", `{"quantity":-2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Errors []struct{ Field, Message string }
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Errors, 4)
	assert.Equal(t, "Quantity must be a positive number", body.Errors[3].Message)

	list, err := store.Books().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdate_InvalidQuantityKeepsPriorValue(t *testing.T) {
	mux, _ := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Herbert","isbn":"123","quantity":5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	path := fmt.Sprintf("/api/books/%d", decodeBook(t, w).ID)

	for _, qty := range []string{`-1`, `1.5`, `"many"`} {
		w = send(t, mux, http.MethodPut, path,
			`{"title":"Dune","author":"Herbert","isbn":"123","quantity":`+qty+`}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, qty)
	}

	w = send(t, mux, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decodeBook(t, w).Quantity)
}

func TestUpdate_MissingIDDoesNotCreate(t *testing.T) {
	mux, store := setup(t)

	w := send(t, mux, http.MethodPut, "/api/books/99",
		`{"title":"Dune","author":"Herbert","isbn":"123","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	list, err := store.Books().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_NumericStringQuantity(t *testing.T) {
	mux, _ := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books",
		`{"title":" Dune ","author":"Herbert","isbn":"123","quantity":"4"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	b := decodeBook(t, w)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, 4, b.Quantity)
}

func TestCreate_QuantityForms(t *testing.T) {
	tests := []struct {
		qty  string
		code int
		want int
	}{
		{`5e0`, http.StatusCreated, 5},
		{`5.0`, http.StatusCreated, 5},
		{`"+2"`, http.StatusCreated, 2},
		{`" 3 "`, http.StatusBadRequest, 0},
		{`"3.0"`, http.StatusBadRequest, 0},
		{`2.5`, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.qty, func(t *testing.T) {
			mux, _ := setup(t)

			w := send(t, mux, http.MethodPost, "/api/books",
				`{"title":"Dune","author":"Herbert","isbn":"123","quantity":`+tt.qty+`}`)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code == http.StatusCreated {
				assert.Equal(t, tt.want, decodeBook(t, w).Quantity)
			} else {
				assert.Contains(t, w.Body.String(), "Quantity must be a positive number")
			}
		})
	}
}

func TestCreate_NumericTitleIsText(t *testing.T) {
	mux, _ := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books",
		`{"title":5,"author":"a","isbn":"1","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "5", decodeBook(t, w).Title)
}

func TestCreate_NonScalarTitle(t *testing.T) {
	mux, store := setup(t)

	w := send(t, mux, http.MethodPost, "/api/books",
		`{"title":{"en":"Dune"},"author":"Herbert","isbn":"123","quantity":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"errors":[{"field":"title","message":"Title is required"}]}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "types.")

	list, err := store.Books().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
