// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and validation can all import types without
// depending on each other.
//
// Each resource has two shapes:
//
//   - the record (Student, Book) as stored and returned, carrying the
//     generated id;
//   - the input (StudentInput, BookInput) as accepted on POST and PUT,
//     carrying only the mutable fields plus their validate:"..." rules.
//
// A record is only ever built from a validated input through Record(id).
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Student represents a student record.
type Student struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	StudentID string `json:"studentId"`
}

// StudentInput is the body of POST and PUT /api/students.
// The label:"..." tag is the human name used in validation messages.
type StudentInput struct {
	Name      Text `json:"name"      validate:"required" label:"Name"`
	Class     Text `json:"class"     validate:"required" label:"Class"`
	StudentID Text `json:"studentId" validate:"required" label:"Student ID"`
}

// Trim returns a copy with surrounding whitespace removed from every field.
func (in StudentInput) Trim() StudentInput {
	return StudentInput{
		Name:      in.Name.Trim(),
		Class:     in.Class.Trim(),
		StudentID: in.StudentID.Trim(),
	}
}

// Values returns the column values in the order name, class, student_id.
func (in StudentInput) Values() []any {
	return []any{string(in.Name), string(in.Class), string(in.StudentID)}
}

func (in StudentInput) Record(id int64) Student {
	return Student{ID: id, Name: string(in.Name), Class: string(in.Class), StudentID: string(in.StudentID)}
}

// Book represents a book record.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

// BookInput is the body of POST and PUT /api/books.
type BookInput struct {
	Title    Text     `json:"title"    validate:"required" label:"Title"`
	Author   Text     `json:"author"   validate:"required" label:"Author"`
	ISBN     Text     `json:"isbn"     validate:"required" label:"ISBN"`
	Quantity Quantity `json:"quantity" validate:"min=0"    label:"Quantity"`
}

func (in BookInput) Trim() BookInput {
	return BookInput{
		Title:    in.Title.Trim(),
		Author:   in.Author.Trim(),
		ISBN:     in.ISBN.Trim(),
		Quantity: in.Quantity,
	}
}

// Values returns the column values in the order title, author, isbn, quantity.
func (in BookInput) Values() []any {
	n, _ := in.Quantity.Int()
	return []any{string(in.Title), string(in.Author), string(in.ISBN), n}
}

func (in BookInput) Record(id int64) Book {
	n, _ := in.Quantity.Int()
	return Book{ID: id, Title: string(in.Title), Author: string(in.Author), ISBN: string(in.ISBN), Quantity: n}
}

// Text is a text field that accepts any JSON scalar. A number or boolean
// keeps its literal spelling (5 becomes "5"). null, arrays and objects
// decode to "" so they fail the required rule for that field alone rather
// than rejecting the whole body.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 {
		*t = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = Text(s)
	case 'n', '[', '{':
		*t = ""
	default:
		*t = Text(raw)
	}
	return nil
}

func (t Text) Trim() Text {
	return Text(strings.TrimSpace(string(t)))
}

// Quantity keeps the raw JSON of the quantity field so that a wrong type
// ("abc", 2.5, null) reaches validation as a rule violation instead of
// failing the whole body decode.
//
// A JSON number is accepted when its value is integral (5, 5.0, 5e0). A
// JSON string must spell an integer exactly, sign and digits only: " 3 "
// and "3.0" are rejected.
type Quantity struct {
	raw []byte
}

var integerText = regexp.MustCompile(`^[-+]?[0-9]+$`)

func (q *Quantity) UnmarshalJSON(b []byte) error {
	q.raw = append(q.raw[:0], b...)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if n, ok := q.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	if len(q.raw) == 0 {
		return []byte("null"), nil
	}
	return q.raw, nil
}

// Int returns the parsed integer and whether the raw value was an integer
// at all. Sign is not checked here; that is a validation rule.
func (q Quantity) Int() (int, bool) {
	raw := bytes.TrimSpace(q.raw)
	if len(raw) == 0 {
		return 0, false
	}

	switch {
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !integerText.MatchString(s) {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true

	case raw[0] == '-' || (raw[0] >= '0' && raw[0] <= '9'):
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
			return 0, false
		}
		return int(f), true

	default:
		return 0, false
	}
}
