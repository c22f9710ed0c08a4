// Package session runs the interactive, menu-driven session
// on top of a student.Store persisted with recordfile.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kjk/students/log"
	"github.com/kjk/students/recordfile"
	"github.com/kjk/students/student"
	"github.com/kjk/students/u"
)

// errInputClosed is returned by prompts when there's no more input.
// It ends the session the same way as choosing Exit.
var errInputClosed = errors.New("input closed")

// Session is created once at startup and holds everything
// menu actions operate on
type Session struct {
	store    *student.Store
	dataPath string
	in       *bufio.Scanner
	out      io.Writer
}

func New(store *student.Store, dataPath string, in io.Reader, out io.Writer) *Session {
	return &Session{
		store:    store,
		dataPath: dataPath,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Session) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

func line(c string, n int) string {
	return strings.Repeat(c, n)
}

// readLine returns next line of input, trimmed
func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			log.Errorf("reading input failed with '%s'", err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) prompt(msg string) (string, error) {
	s.printf("%s", msg)
	return s.readLine()
}

// Load reads students from data file into the store. Corrupted lines
// are reported and skipped. On read error, students read before the
// error are kept, the error is reported and the session continues.
func (s *Session) Load() {
	if !u.PathExists(s.dataPath) {
		s.println("No previous data found. Starting with empty database.")
		return
	}
	students, corrupted, err := recordfile.Load(s.dataPath)
	for _, c := range corrupted {
		s.printf("Skipping corrupted line %d: %s\n", c.LineNo, c.Line)
		log.Logf("load: skipped %s\n", c)
	}
	if err != nil {
		s.printf("Error reading file: %s\n", err)
		log.Errorf("recordfile.Load('%s') failed with '%s'", s.dataPath, err)
	}
	s.store.Restore(students)
	s.printf("Successfully loaded %d student(s) from file.\n\n", len(students))
	log.Event("store.load", "path", s.dataPath, "count", len(students), "corrupted", len(corrupted))
}

// save writes all students to data file. Failure is reported but
// in-memory state is kept as is.
func (s *Session) save() {
	students := s.store.List()
	if err := recordfile.Save(s.dataPath, students); log.IfErrf(err) {
		s.printf("Failed to save data: %s\n", err)
		return
	}
	log.Verbosef("saved %d students to '%s'\n", len(students), s.dataPath)
	log.Event("store.save", "path", s.dataPath, "count", len(students))
}

func (s *Session) showMenu() {
	s.println()
	s.println(line("=", 50))
	s.println("               MAIN MENU")
	s.println(line("=", 50))
	s.println("1. Add New Student")
	s.println("2. View All Students")
	s.println("3. Search Student")
	s.println("4. Update Student")
	s.println("5. Delete Student")
	s.println("6. Exit")
	s.printf("Choose option (1-6): ")
}

// Run shows the menu and dispatches choices until operator chooses
// Exit or input ends. Data is saved after every add, update and delete
// and once more on exit.
func (s *Session) Run() error {
	s.println(line("=", 50))
	s.println("      STUDENT MANAGEMENT SYSTEM")
	s.println(line("=", 50))
	for {
		s.showMenu()
		choice, err := s.readLine()
		if err != nil {
			s.println()
			return s.exit()
		}
		switch choice {
		case "1":
			err = s.addStudent()
			s.save()
		case "2":
			s.listStudents()
		case "3":
			err = s.searchStudent()
		case "4":
			err = s.updateStudent()
			s.save()
		case "5":
			err = s.deleteStudent()
			s.save()
		case "6":
			return s.exit()
		default:
			s.println("Invalid option! Please enter 1-6")
		}
		if errors.Is(err, errInputClosed) {
			s.println()
			return s.exit()
		}
	}
}

func (s *Session) exit() error {
	s.save()
	s.println("\nAll data saved. Goodbye!")
	log.Logf("session ended, %d students\n", s.store.Len())
	return nil
}
