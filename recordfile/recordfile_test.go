package recordfile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/alecthomas/assert"
	"github.com/kjk/students/require"
	"github.com/kjk/students/student"
)

func testStudents() []student.Student {
	return []student.Student{
		{ID: 1000, Name: "Jane Doe", RegNo: "REG-001", Grade: "10th", Gender: student.Female, Age: 15},
		{ID: 1001, Name: "John Roe", RegNo: "reg-002", Grade: "A+", Gender: student.Male, Age: 16},
		{ID: 1005, Name: "Sam", RegNo: "R3", Grade: "", Gender: student.Others, Age: 7},
	}
}

func TestFormatLine(t *testing.T) {
	s := testStudents()[0]
	assert.Equal(t, "1000|Jane Doe|REG-001|10th|FEMALE|15", FormatLine(&s))
}

func TestParseLine(t *testing.T) {
	var s student.Student
	err := ParseLine(" 1000 |Jane Doe|REG-001|10th|female| 15 ", &s)
	require.NoError(t, err)
	assert.Equal(t, testStudents()[0], s)

	invalid := []string{
		"1000|a|b|c|MALE",
		"1000|a|b|c|MALE|10|x",
		"abc|a|b|c|MALE|10",
		"1000|a|b|c|MALE|ten",
		"1000|a|b|c|MALE|",
	}
	for _, line := range invalid {
		err = ParseLine(line, &s)
		assert.Error(t, err, "%#v", line)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")

	require.NoError(t, Save(path, nil))
	got, corrupted, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, len(got))
	assert.Equal(t, 0, len(corrupted))

	exp := testStudents()
	require.NoError(t, Save(path, exp))
	got, corrupted, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, len(corrupted))
	assert.Equal(t, exp, got)

	d, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(d), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "1001|John Roe|reg-002|A+|MALE|16", lines[1])
	assert.Equal(t, "", lines[3])
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.txt")
	require.NoError(t, Save(path, testStudents()))
	require.NoError(t, Save(path, testStudents()[:1]))
	got, _, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestLoadMissingFile(t *testing.T) {
	got, corrupted, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, len(got))
	assert.Equal(t, 0, len(corrupted))
}

func TestLoadSkipsCorruptedLines(t *testing.T) {
	data := `1000|A|a|1|MALE|10
1001|B|b|1|FEMALE|11
1002|C|c|1|MALE
1003|D|d|1|OTHERS|12

1004|E|e|1|MALE|13
`
	path := filepath.Join(t.TempDir(), "students.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	got, corrupted, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "a", got[0].RegNo)
	assert.Equal(t, "b", got[1].RegNo)
	assert.Equal(t, "d", got[2].RegNo)
	assert.Equal(t, "e", got[3].RegNo)

	require.Len(t, corrupted, 1)
	assert.Equal(t, 3, corrupted[0].LineNo)
	assert.Equal(t, "1002|C|c|1|MALE", corrupted[0].Line)
	assert.True(t, errors.Is(corrupted[0], ErrCorrupted))
}

func TestLoadSkipsBadNumbers(t *testing.T) {
	data := "x|A|a|1|MALE|10\n1001|B|b|1|FEMALE|old\n1050|C|c|1|MALE|12\r\n"
	got, corrupted, err := Parse(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1050, got[0].ID)
	assert.Equal(t, 12, got[0].Age)
	require.Len(t, corrupted, 2)
	assert.Equal(t, 1, corrupted[0].LineNo)
	assert.Equal(t, 2, corrupted[1].LineNo)

	// id counter continues after the highest loaded id
	store := student.NewStore()
	store.Restore(got)
	st, err := store.Add("D", "d", "1", "MALE", 10)
	require.NoError(t, err)
	assert.Equal(t, 1051, st.ID)
}

func TestLoadLongLine(t *testing.T) {
	longName := strings.Repeat("n", 70*1024)
	data := "1000|A|a|1|MALE|10\n1001|" + longName + "|b|1|MALE|10\n1002|C|c|1|MALE|12\n"
	path := filepath.Join(t.TempDir(), "students.txt")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	got, corrupted, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, len(corrupted))
	require.Len(t, got, 3)
	assert.Equal(t, longName, got[1].Name)
	assert.Equal(t, 1002, got[2].ID)
}

func TestParseLastLineWithoutNewline(t *testing.T) {
	got, corrupted, err := Parse(strings.NewReader("1000|A|a|1|MALE|10\n1001|B|b|1|FEMALE|11"))
	require.NoError(t, err)
	assert.Equal(t, 0, len(corrupted))
	require.Len(t, got, 2)
	assert.Equal(t, 11, got[1].Age)
}

func TestParseReadErrorKeepsRecords(t *testing.T) {
	errDisk := errors.New("disk failure")
	r := io.MultiReader(
		strings.NewReader("1000|A|a|1|MALE|10\nbad\n1001|B|b|1|FEMALE|11\n"),
		iotest.ErrReader(errDisk),
	)
	got, corrupted, err := Parse(r)
	require.ErrorIs(t, err, errDisk)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].RegNo)
	require.Len(t, corrupted, 1)
	assert.Equal(t, 2, corrupted[0].LineNo)
}

func TestLoadDirectoryFails(t *testing.T) {
	_, _, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestSaveToMissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "students.txt")
	err := Save(path, testStudents())
	require.Error(t, err)
}
