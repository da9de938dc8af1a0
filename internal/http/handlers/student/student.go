// Package student wires the Student resource into the HTTP router.
//
// Route table:
//
//	GET    /api/students        → list all students
//	POST   /api/students        → create a student
//	GET    /api/students/{id}   → get one student
//	PUT    /api/students/{id}   → replace a student's fields
//	DELETE /api/students/{id}   → delete a student
package student

import (
	"net/http"

	"github.com/aanand-mishra/library-api/internal/http/handlers/resource"
	"github.com/aanand-mishra/library-api/internal/storage"
	"github.com/aanand-mishra/library-api/internal/types"
)

const Prefix = "/api/students"

var names = resource.Names{Singular: "student", Plural: "students", Title: "Student"}

func New(repo storage.Repository[types.Student, types.StudentInput], opts resource.Options) *resource.Resource[types.Student, types.StudentInput] {
	return resource.New(names, repo, opts)
}

// Register mounts the student routes on mux.
func Register(mux *http.ServeMux, repo storage.Repository[types.Student, types.StudentInput], opts resource.Options) {
	New(repo, opts).Register(mux, Prefix)
}
