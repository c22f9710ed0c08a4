package student

import (
	"fmt"
	"strings"
)

// ConfirmToken must be typed by the operator to confirm deletion
const ConfirmToken = "DELETE"

// Changes describes an update as typed by the operator.
// Empty (or whitespace only) value means: keep current value.
type Changes struct {
	Name   string
	Grade  string
	Gender string
	Age    string
}

// Store is an ordered, in-memory collection of students.
// Order of insertion is the order in which students are listed and saved.
// Not safe for concurrent use.
type Store struct {
	students []*Student
	nextID   int
}

func NewStore() *Store {
	return &Store{
		nextID: FirstID,
	}
}

// NextID returns id that will be given to the next added student
func (s *Store) NextID() int {
	return s.nextID
}

func (s *Store) Len() int {
	return len(s.students)
}

// List returns copies of all students in insertion order
func (s *Store) List() []Student {
	res := make([]Student, 0, len(s.students))
	for _, st := range s.students {
		res = append(res, *st)
	}
	return res
}

func (s *Store) find(regNo string) (int, *Student) {
	regNo = strings.TrimSpace(regNo)
	for i, st := range s.students {
		if strings.EqualFold(st.RegNo, regNo) {
			return i, st
		}
	}
	return -1, nil
}

// Find returns a copy of a student with a given registration number.
// Comparison is case-insensitive.
func (s *Store) Find(regNo string) (*Student, error) {
	_, st := s.find(regNo)
	if st == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, strings.TrimSpace(regNo))
	}
	res := *st
	return &res, nil
}

// Add validates and appends a new student, assigning it the next id
func (s *Store) Add(name, regNo, grade, gender string, age int) (*Student, error) {
	ns := &newStudent{
		Name:   strings.TrimSpace(name),
		RegNo:  strings.TrimSpace(regNo),
		Grade:  strings.TrimSpace(grade),
		Gender: strings.ToUpper(strings.TrimSpace(gender)),
		Age:    age,
	}
	if err := validateNew(ns); err != nil {
		return nil, err
	}
	if _, existing := s.find(ns.RegNo); existing != nil {
		return nil, fmt.Errorf("%w: '%s'", ErrDuplicate, ns.RegNo)
	}
	st := &Student{
		ID:     s.nextID,
		Name:   ns.Name,
		RegNo:  ns.RegNo,
		Grade:  ns.Grade,
		Gender: Gender(ns.Gender),
		Age:    ns.Age,
	}
	s.nextID++
	s.students = append(s.students, st)
	res := *st
	return &res, nil
}

// Update applies non-empty changes to a student.
// An invalid gender or age doesn't stop other changes from being applied,
// the rejected values are returned as warnings.
func (s *Store) Update(regNo string, c Changes) ([]*ValidationError, error) {
	_, st := s.find(regNo)
	if st == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrNotFound, strings.TrimSpace(regNo))
	}
	var warnings []*ValidationError

	if v := strings.TrimSpace(c.Name); v != "" {
		st.Name = v
	}
	if v := strings.TrimSpace(c.Grade); v != "" {
		st.Grade = v
	}
	if v := strings.TrimSpace(c.Gender); v != "" {
		if g, ok := ParseGender(v); ok {
			st.Gender = g
		} else {
			warnings = append(warnings, &ValidationError{Field: "Gender", Value: v, Reason: "must be one of MALE FEMALE OTHERS"})
		}
	}
	if v := strings.TrimSpace(c.Age); v != "" {
		age, err := ParseUpdatedAge(v)
		if err == nil {
			st.Age = age
		} else {
			warnings = append(warnings, err.(*ValidationError))
		}
	}
	return warnings, nil
}

// Delete removes a student but only if confirmation matches ConfirmToken
// (case-insensitive). Otherwise returns ErrDeleteCancelled and the store
// is not modified.
func (s *Store) Delete(regNo string, confirmation string) error {
	idx, st := s.find(regNo)
	if st == nil {
		return fmt.Errorf("%w: '%s'", ErrNotFound, strings.TrimSpace(regNo))
	}
	if !strings.EqualFold(strings.TrimSpace(confirmation), ConfirmToken) {
		return ErrDeleteCancelled
	}
	s.students = append(s.students[:idx], s.students[idx+1:]...)
	return nil
}

// Restore appends students read from persisted state, as-is.
// Id counter is advanced past the highest id seen.
func (s *Store) Restore(students []Student) {
	for i := range students {
		st := students[i]
		s.students = append(s.students, &st)
		if st.ID >= s.nextID {
			s.nextID = st.ID + 1
		}
	}
}
