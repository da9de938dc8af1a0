package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/library-api/internal/types"
)

func decodeBook(t *testing.T, body string) types.BookInput {
	t.Helper()
	var in types.BookInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in.Trim()
}

func TestStruct_Student(t *testing.T) {
	v := New()

	t.Run("valid input has no violations", func(t *testing.T) {
		errs := v.Struct(types.StudentInput{Name: "Ada", Class: "10B", StudentID: "S-1"})
		assert.Nil(t, errs)
	})

	t.Run("every missing field is reported", func(t *testing.T) {
		errs := v.Struct(types.StudentInput{})
		assert.Equal(t, []FieldError{
			{Field: "name", Message: "Name is required"},
			{Field: "class", Message: "Class is required"},
			{Field: "studentId", Message: "Student ID is required"},
		}, errs)
	})

	t.Run("whitespace only counts as missing after trim", func(t *testing.T) {
		in := types.StudentInput{Name: "  ", Class: "10B", StudentID: "\t"}.Trim()
		errs := v.Struct(in)
		require.Len(t, errs, 2)
		assert.Equal(t, "name", errs[0].Field)
		assert.Equal(t, "studentId", errs[1].Field)
	})
}

func TestStruct_Book(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"valid integer quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":5}`, nil},
		{"zero quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":0}`, nil},
		{"numeric string quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":"7"}`, nil},
		{"negative quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":-1}`, []string{"quantity"}},
		{"fractional quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":2.5}`, []string{"quantity"}},
		{"text quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":"abc"}`, []string{"quantity"}},
		{"null quantity", `{"title":"Dune","author":"Herbert","isbn":"123","quantity":null}`, []string{"quantity"}},
		{"missing quantity", `{"title":"Dune","author":"Herbert","isbn":"123"}`, []string{"quantity"}},
		{"everything missing", `{}`, []string{"title", "author", "isbn", "quantity"}},
		{"blank strings", `{"title":" ","author":"","isbn":"  ","quantity":1}`, []string{"title", "author", "isbn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Struct(decodeBook(t, tt.body))

			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestStruct_BookQuantityMessage(t *testing.T) {
	errs := New().Struct(decodeBook(t, `{"title":"a","author":"b","isbn":"c","quantity":-3}`))

	require.Len(t, errs, 1)
	assert.Equal(t, FieldError{Field: "quantity", Message: "Quantity must be a positive number"}, errs[0])
}
