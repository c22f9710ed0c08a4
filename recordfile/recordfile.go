// Package recordfile loads and saves students in a flat text file.
//
// Each student is one line with 6 fields separated by '|':
//
//	id|name|regNo|grade|gender|age
//
// There's no header and no escaping. A '|' inside a value makes the
// line unreadable on next load.
package recordfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kjk/students/atomicfile"
	"github.com/kjk/students/student"
	"github.com/kjk/students/u"
)

const (
	Delimiter = "|"
	nFields   = 6
)

var ErrCorrupted = errors.New("corrupted record")

// CorruptLineError describes a line skipped during load
type CorruptLineError struct {
	LineNo int
	Line   string
	Reason string
}

func (e *CorruptLineError) Error() string {
	return fmt.Sprintf("line %d: %s: '%s'", e.LineNo, e.Reason, e.Line)
}

func (e *CorruptLineError) Unwrap() error {
	return ErrCorrupted
}

// FormatLine serializes a student without trailing newline
func FormatLine(s *student.Student) string {
	return fmt.Sprintf("%d|%s|%s|%s|%s|%d", s.ID, s.Name, s.RegNo, s.Grade, s.Gender, s.Age)
}

// ParseLine parses a line created with FormatLine
// perf: allows re-using res
func ParseLine(line string, res *student.Student) error {
	parts := strings.Split(line, Delimiter)
	if len(parts) != nFields {
		return fmt.Errorf("expected %d fields, got %d", nFields, len(parts))
	}
	id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return fmt.Errorf("invalid id '%s'", parts[0])
	}
	age, err := strconv.Atoi(strings.TrimSpace(parts[5]))
	if err != nil {
		return fmt.Errorf("invalid age '%s'", parts[5])
	}
	res.ID = id
	res.Name = strings.TrimSpace(parts[1])
	res.RegNo = strings.TrimSpace(parts[2])
	res.Grade = strings.TrimSpace(parts[3])
	res.Gender = student.Gender(strings.ToUpper(strings.TrimSpace(parts[4])))
	res.Age = age
	return nil
}

// Parse reads students from r. Blank lines are skipped. Lines that fail
// to parse are skipped and returned as corrupted, they don't stop the parse.
// Lines can be of any length.
// Returned error is only for failures to read from r, in which case
// students and corrupted lines read so far are returned with it.
func Parse(r io.Reader) ([]student.Student, []*CorruptLineError, error) {
	var res []student.Student
	var corrupted []*CorruptLineError
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return res, corrupted, fmt.Errorf("error reading line %d: %w", lineNo+1, err)
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			var s student.Student
			if perr := ParseLine(line, &s); perr != nil {
				corrupted = append(corrupted, &CorruptLineError{
					LineNo: lineNo,
					Line:   line,
					Reason: perr.Error(),
				})
			} else {
				res = append(res, s)
			}
		}
		if err == io.EOF {
			break
		}
	}
	return res, corrupted, nil
}

// Load reads students from a file. A file that doesn't exist
// is not an error, it returns no students.
// On read error, students read before the error are returned with it.
func Load(path string) ([]student.Student, []*CorruptLineError, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer u.CloseNoError(f)
	res, corrupted, err := Parse(f)
	if err != nil {
		return res, corrupted, fmt.Errorf("failed to read '%s': %w", path, err)
	}
	return res, corrupted, nil
}

// Marshal serializes students, one per line
func Marshal(students []student.Student) []byte {
	var sb strings.Builder
	for i := range students {
		sb.WriteString(FormatLine(&students[i]))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Save over-writes the file with all students.
// The file is replaced atomically: on failure it keeps previous content.
func Save(path string, students []student.Student) error {
	err := atomicfile.WriteFile(path, Marshal(students))
	if err != nil {
		return fmt.Errorf("failed to save '%s': %w", path, err)
	}
	return nil
}
