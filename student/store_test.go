package student

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/kjk/students/require"
)

func mustAdd(t *testing.T, s *Store, name, regNo, grade, gender string, age int) *Student {
	st, err := s.Add(name, regNo, grade, gender, age)
	require.NoError(t, err)
	return st
}

func TestAddThenFind(t *testing.T) {
	s := NewStore()
	added := mustAdd(t, s, "Jane Doe", "REG-001", "10th", "female", 15)
	assert.Equal(t, FirstID, added.ID)
	assert.Equal(t, FirstID+1, s.NextID())

	got, err := s.Find("  reg-001 ")
	require.NoError(t, err)
	exp := &Student{
		ID:     FirstID,
		Name:   "Jane Doe",
		RegNo:  "REG-001",
		Grade:  "10th",
		Gender: Female,
		Age:    15,
	}
	assert.Equal(t, exp, got)
}

func TestAddTrimsInput(t *testing.T) {
	s := NewStore()
	st := mustAdd(t, s, "  Bob ", " r1 ", " A+ ", " Male ", 20)
	assert.Equal(t, "Bob", st.Name)
	assert.Equal(t, "r1", st.RegNo)
	assert.Equal(t, "A+", st.Grade)
	assert.Equal(t, Male, st.Gender)
}

func TestAddDuplicateDiffersInCase(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "A", "abc", "1", "MALE", 10)
	_, err := s.Add("B", "ABC", "2", "FEMALE", 11)
	require.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, FirstID+1, s.NextID())
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		regNo  string
		grade  string
		gender string
		age    int
		field  string
	}{
		{"", "r", "g", "MALE", 10, "Name"},
		{"n", "   ", "g", "MALE", 10, "RegNo"},
		{"n", "r", "", "MALE", 10, "Grade"},
		{"n", "r", "g", "XYZ", 10, "Gender"},
		{"n", "r", "g", "MALE", 4, "Age"},
		{"n", "r", "g", "MALE", 101, "Age"},
	}
	for _, test := range tests {
		s := NewStore()
		_, err := s.Add(test.name, test.regNo, test.grade, test.gender, test.age)
		require.ErrorIs(t, err, ErrValidation)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, test.field, verr.Field)
		assert.Equal(t, 0, s.Len())
	}

	s := NewStore()
	mustAdd(t, s, "n", "r5", "g", "others", MinAge)
	mustAdd(t, s, "n", "r100", "g", "others", MaxAge)
}

func TestFindNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Find("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, len(s.List()))
	mustAdd(t, s, "C", "c", "1", "MALE", 10)
	mustAdd(t, s, "A", "a", "1", "MALE", 10)
	mustAdd(t, s, "B", "b", "1", "MALE", 10)
	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].RegNo)
	assert.Equal(t, "a", list[1].RegNo)
	assert.Equal(t, "b", list[2].RegNo)

	// returned values are copies
	list[0].Name = "changed"
	got, err := s.Find("c")
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)
}

func TestUpdateEmptyChangesKeepRecord(t *testing.T) {
	s := NewStore()
	before := mustAdd(t, s, "Jane", "r1", "5th", "FEMALE", 11)
	warnings, err := s.Update("R1", Changes{Name: "", Grade: "  ", Gender: "", Age: ""})
	require.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	after, err := s.Find("r1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdateInvalidGenderStillAppliesName(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "Jane", "r1", "5th", "FEMALE", 11)
	warnings, err := s.Update("r1", Changes{Name: "Janet", Gender: "XYZ"})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "Gender", warnings[0].Field)
	got, _ := s.Find("r1")
	assert.Equal(t, "Janet", got.Name)
	assert.Equal(t, Female, got.Gender)
}

func TestUpdateAge(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "Jane", "r1", "5th", "FEMALE", 11)

	// only positive is required on update, unlike on add
	warnings, err := s.Update("r1", Changes{Age: "150", Gender: "others", Grade: "6th"})
	require.NoError(t, err)
	assert.Equal(t, 0, len(warnings))
	got, _ := s.Find("r1")
	assert.Equal(t, 150, got.Age)
	assert.Equal(t, Others, got.Gender)
	assert.Equal(t, "6th", got.Grade)

	for _, age := range []string{"0", "-3", "abc", "1.5"} {
		warnings, err = s.Update("r1", Changes{Age: age})
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "Age", warnings[0].Field)
		got, _ = s.Find("r1")
		assert.Equal(t, 150, got.Age)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Update("x", Changes{Name: "y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	mustAdd(t, s, "A", "a", "1", "MALE", 10)
	mustAdd(t, s, "B", "b", "1", "MALE", 10)

	for _, confirm := range []string{"", "yes", "DEL", "DELETE!"} {
		err := s.Delete("a", confirm)
		require.ErrorIs(t, err, ErrDeleteCancelled)
		assert.Equal(t, 2, s.Len())
	}

	err := s.Delete("missing", ConfirmToken)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, s.Len())

	err = s.Delete("A", " delete ")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	_, err = s.Find("a")
	require.ErrorIs(t, err, ErrNotFound)

	// ids are never reused
	st := mustAdd(t, s, "C", "c", "1", "MALE", 10)
	assert.Equal(t, FirstID+2, st.ID)
}

func TestRestoreAdvancesCounter(t *testing.T) {
	s := NewStore()
	s.Restore([]Student{
		{ID: 1050, Name: "A", RegNo: "a", Grade: "1", Gender: Male, Age: 10},
		{ID: 1003, Name: "B", RegNo: "b", Grade: "1", Gender: Male, Age: 10},
	})
	assert.Equal(t, 2, s.Len())
	st := mustAdd(t, s, "C", "c", "1", "MALE", 10)
	assert.Equal(t, 1051, st.ID)

	s = NewStore()
	s.Restore([]Student{{ID: 5, Name: "A", RegNo: "a", Grade: "1", Gender: Male, Age: 10}})
	assert.Equal(t, FirstID, s.NextID())
}

func TestParseGender(t *testing.T) {
	tests := []string{
		"male", "MALE",
		" Female ", "FEMALE",
		"oThErS", "OTHERS",
		"xyz", "",
		"", "",
	}
	n := len(tests)
	for i := 0; i < n; i += 2 {
		got, ok := ParseGender(tests[i])
		assert.Equal(t, Gender(tests[i+1]), got)
		assert.Equal(t, tests[i+1] != "", ok, "%#v", tests[i])
	}
}

func TestParseNewAge(t *testing.T) {
	n, err := ParseNewAge(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	for _, s := range []string{"4", "101", "x", ""} {
		_, err = ParseNewAge(s)
		require.ErrorIs(t, err, ErrValidation)
	}
}
