// Package resource contains the HTTP handlers shared by every CRUD resource.
//
// A Resource is parameterized by the record type T and the input type In.
// The student and book packages only describe their entity (names, routes)
// and instantiate a Resource over a storage.Repository; the request
// handling below is written once.
//
// Each handler method is a factory: it runs once when the route is
// registered and returns the func that runs on every request.
//
//	mux.HandleFunc("POST /api/books", books.Create())
package resource

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/utils/response"
	"github.com/aanand-mishra/library-api/internal/validation"
)

// Payload is the constraint on request bodies: Trim returns the value with
// surrounding whitespace stripped from its text fields.
type Payload[In any] interface {
	Trim() In
}

// Names are the words used in log lines and client-facing messages.
type Names struct {
	Singular string // "student"
	Plural   string // "students"
	Title    string // "Student"
}

// Options carries the process-wide dependencies of every handler.
type Options struct {
	Log       *slog.Logger
	Validator *validation.Validator
	// Dev exposes internal error detail in 500 responses.
	Dev bool
}

type Resource[T any, In Payload[In]] struct {
	names Names
	repo  storage.Repository[T, In]
	log   *slog.Logger
	val   *validation.Validator
	dev   bool
}

func New[T any, In Payload[In]](names Names, repo storage.Repository[T, In], opts Options) *Resource[T, In] {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	val := opts.Validator
	if val == nil {
		val = validation.New()
	}
	return &Resource[T, In]{
		names: names,
		repo:  repo,
		log:   log.With(slog.String("resource", names.Plural)),
		val:   val,
		dev:   opts.Dev,
	}
}

// Register mounts the five operations under prefix, e.g. "/api/books".
func (res *Resource[T, In]) Register(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix, res.List())
	mux.HandleFunc("POST "+prefix, res.Create())
	mux.HandleFunc("GET "+prefix+"/{id}", res.Get())
	mux.HandleFunc("PUT "+prefix+"/{id}", res.Update())
	mux.HandleFunc("DELETE "+prefix+"/{id}", res.Delete())
}

// ─────────────────────────────────────────────────────────────────────────────
// List handles GET /api/{plural}
// Returns every record, unfiltered and unpaginated. [] when empty.
// ─────────────────────────────────────────────────────────────────────────────
func (res *Resource[T, In]) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res.log.Info("listing")

		items, err := res.repo.List(r.Context())
		if err != nil {
			res.serverError(w, "Error fetching "+res.names.Plural, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, items)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Get handles GET /api/{plural}/{id}
//
//	200 the record
//	404 no row has that id (a non-integer id cannot match any row)
//	500 storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func (res *Resource[T, In]) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := res.pathID(w, r)
		if !ok {
			return
		}
		res.log.Info("getting", slog.Int64("id", id))

		item, err := res.repo.Get(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			res.notFound(w)
			return
		}
		if err != nil {
			res.serverError(w, "Error fetching "+res.names.Singular, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, item)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Create handles POST /api/{plural}
//
//	201 the created record including its generated id
//	400 unreadable body, or every violated validation rule
//	500 storage failure
//
// Validation runs before storage is touched.
// ─────────────────────────────────────────────────────────────────────────────
func (res *Resource[T, In]) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res.log.Info("creating")

		in, ok := res.decode(w, r)
		if !ok {
			return
		}

		created, err := res.repo.Create(r.Context(), in)
		if err != nil {
			res.serverError(w, "Error creating "+res.names.Singular, err)
			return
		}

		res.log.Info("created")
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/{plural}/{id}
// Replaces ALL mutable fields of an existing record. Never creates one.
//
// The body is validated before the id is looked at, so an invalid body is
// a 400 whatever the id. The response echoes the accepted input plus the
// path id; it is not re-read from storage.
// ─────────────────────────────────────────────────────────────────────────────
func (res *Resource[T, In]) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, ok := res.decode(w, r)
		if !ok {
			return
		}

		id, ok := res.pathID(w, r)
		if !ok {
			return
		}
		res.log.Info("updating", slog.Int64("id", id))

		updated, err := res.repo.Update(r.Context(), id, in)
		if errors.Is(err, storage.ErrNotFound) {
			res.notFound(w)
			return
		}
		if err != nil {
			res.serverError(w, "Error updating "+res.names.Singular, err)
			return
		}

		res.log.Info("updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/{plural}/{id}
// Permanently removes the row. A repeat delete of the same id is a 404.
// ─────────────────────────────────────────────────────────────────────────────
func (res *Resource[T, In]) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := res.pathID(w, r)
		if !ok {
			return
		}
		res.log.Info("deleting", slog.Int64("id", id))

		err := res.repo.Delete(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			res.notFound(w)
			return
		}
		if err != nil {
			res.serverError(w, "Error deleting "+res.names.Singular, err)
			return
		}

		res.log.Info("deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK,
			response.Text(res.names.Title+" deleted successfully"))
	}
}

// pathID parses {id}. Generated ids are integers, so anything else is
// answered as not found.
func (res *Resource[T, In]) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		res.log.Debug("non-integer id", slog.String("id", r.PathValue("id")))
		res.notFound(w)
		return 0, false
	}
	return id, true
}

const badJSON = "request body is not valid JSON"

// decode reads, trims and validates the request body. The body must be
// exactly one JSON object. On failure the 400 response has already been
// written.
func (res *Resource[T, In]) decode(w http.ResponseWriter, r *http.Request) (In, bool) {
	var in In

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest, response.BadBody("request body is empty"))
		return in, false
	}
	if err == nil && dec.Decode(&struct{}{}) != io.EOF {
		err = errors.New("trailing data after JSON object")
	}
	if err != nil {
		// The decoder's message names Go types; keep it in the log only.
		res.log.Info("unreadable body", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest, response.BadBody(badJSON))
		return in, false
	}

	in = in.Trim()
	if errs := res.val.Struct(in); len(errs) > 0 {
		res.log.Info("validation failed", slog.Int("violations", len(errs)))
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(errs))
		return in, false
	}
	return in, true
}

func (res *Resource[T, In]) notFound(w http.ResponseWriter) {
	response.WriteJSON(w, http.StatusNotFound, response.Text(res.names.Title+" not found"))
}

func (res *Resource[T, In]) serverError(w http.ResponseWriter, msg string, err error) {
	res.log.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.ServerError(msg, err, res.dev))
}
