// Package book wires the Book resource into the HTTP router. Both the
// library API and the standalone book service mount it.
package book

import (
	"net/http"

	"github.com/aanand-mishra/library-api/internal/http/handlers/resource"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

const Prefix = "/api/books"

var names = resource.Names{Singular: "book", Plural: "books", Title: "Book"}

func New(repo storage.Repository[types.Book, types.BookInput], opts resource.Options) *resource.Resource[types.Book, types.BookInput] {
	return resource.New(names, repo, opts)
}

func Register(mux *http.ServeMux, repo storage.Repository[types.Book, types.BookInput], opts resource.Options) {
	New(repo, opts).Register(mux, Prefix)
}
