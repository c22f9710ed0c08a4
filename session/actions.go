package session

import (
	"errors"
	"fmt"

	"github.com/kjk/students/log"
	"github.com/kjk/students/student"
)

const rowFormat = "%-8s %-25s %-18s %-12s %-8s %s\n"

// promptNonEmpty asks until operator types a non-empty value
func (s *Session) promptNonEmpty(field string, msg string) (string, error) {
	for {
		v, err := s.prompt(msg + ": ")
		if err != nil {
			return "", err
		}
		if err = student.CheckRequired(field, v); err == nil {
			return v, nil
		}
		s.println("This field cannot be empty!")
	}
}

func (s *Session) promptGender() (student.Gender, error) {
	for {
		v, err := s.prompt("Enter Gender (MALE / FEMALE / OTHERS): ")
		if err != nil {
			return "", err
		}
		if g, ok := student.ParseGender(v); ok {
			return g, nil
		}
		s.println("Invalid! Please choose MALE, FEMALE, or OTHERS")
	}
}

func (s *Session) promptAge() (int, error) {
	for {
		v, err := s.prompt("Enter Age (years): ")
		if err != nil {
			return 0, err
		}
		age, err := student.ParseNewAge(v)
		if err == nil {
			return age, nil
		}
		s.printf("Invalid age: %s\n", err)
	}
}

func (s *Session) addStudent() error {
	s.println()
	s.println(line("=", 50))
	s.println("           ADD NEW STUDENT")
	s.println(line("=", 50))

	name, err := s.promptNonEmpty("Name", "Enter Name")
	if err != nil {
		return err
	}
	regNo, err := s.promptNonEmpty("RegNo", "Enter Registration Number")
	if err != nil {
		return err
	}
	// checked early so operator doesn't type everything else in vain
	if _, err = s.store.Find(regNo); err == nil {
		s.printf("Error: Student with Registration Number '%s' already exists!\n", regNo)
		return nil
	}
	grade, err := s.promptNonEmpty("Grade", "Enter Grade")
	if err != nil {
		return err
	}
	gender, err := s.promptGender()
	if err != nil {
		return err
	}
	age, err := s.promptAge()
	if err != nil {
		return err
	}

	st, err := s.store.Add(name, regNo, grade, string(gender), age)
	if err != nil {
		s.printf("Error: %s\n", err)
		return nil
	}
	s.printf("SUCCESS! Student added with ID: %d\n", st.ID)
	s.printf("Student: %s | Age: %d | Grade: %s\n", st.Name, st.Age, st.Grade)
	log.Event("student.add", "id", st.ID, "regNo", st.RegNo)
	return nil
}

func (s *Session) printHeader(regNoTitle string) {
	s.printf(rowFormat, "ID", "Name", regNoTitle, "Grade", "Gender", "Age")
}

func (s *Session) listStudents() {
	students := s.store.List()
	s.println()
	s.println(line("=", 100))
	s.printf("                           ALL STUDENTS (%d total)\n", len(students))
	s.println(line("=", 100))
	if len(students) == 0 {
		s.println("           No students found. Add your first student!")
		s.println(line("=", 100))
		return
	}
	s.printHeader("Registration No.")
	s.println(line("-", 100))
	for i := range students {
		s.println(students[i].String())
	}
	s.println(line("-", 100))
}

func (s *Session) searchStudent() error {
	regNo, err := s.prompt("Enter Registration Number to search: ")
	if err != nil {
		return err
	}
	st, err := s.store.Find(regNo)
	if err != nil {
		s.printf("No student found with Registration Number: %s\n", regNo)
		return nil
	}
	s.println("STUDENT FOUND!")
	s.println(line("-", 80))
	s.printHeader("Reg No.")
	s.println(st.String())
	s.println(line("-", 80))
	return nil
}

func (s *Session) updateStudent() error {
	regNo, err := s.prompt("Enter Registration Number to update: ")
	if err != nil {
		return err
	}
	st, err := s.store.Find(regNo)
	if err != nil {
		s.println("Student not found!")
		return nil
	}
	s.printf("Current student: %s\n", st)
	s.println("Leave field empty and press Enter to keep current value.")
	s.println()

	var c student.Changes
	if c.Name, err = s.prompt(fmt.Sprintf("New Name [%s]: ", st.Name)); err != nil {
		return err
	}
	if c.Grade, err = s.prompt(fmt.Sprintf("New Grade [%s]: ", st.Grade)); err != nil {
		return err
	}
	if c.Gender, err = s.prompt(fmt.Sprintf("New Gender (MALE/FEMALE/OTHERS) [%s]: ", st.Gender)); err != nil {
		return err
	}
	if c.Age, err = s.prompt(fmt.Sprintf("New Age [%d]: ", st.Age)); err != nil {
		return err
	}

	warnings, err := s.store.Update(regNo, c)
	if err != nil {
		s.printf("Error: %s\n", err)
		return nil
	}
	for _, w := range warnings {
		s.printf("Invalid %s. Keeping old value.\n", w)
	}
	s.println("Student updated successfully!")
	log.Event("student.update", "id", st.ID, "regNo", st.RegNo, "rejected", len(warnings))
	return nil
}

func (s *Session) deleteStudent() error {
	regNo, err := s.prompt("Enter Registration Number to DELETE: ")
	if err != nil {
		return err
	}
	st, err := s.store.Find(regNo)
	if err != nil {
		s.println("Student not found!")
		return nil
	}
	s.printf("Found: %s (ID: %d)\n", st.Name, st.ID)
	confirm, err := s.prompt(fmt.Sprintf("Type '%s' to confirm permanent deletion: ", student.ConfirmToken))
	if err != nil {
		return err
	}
	err = s.store.Delete(regNo, confirm)
	if errors.Is(err, student.ErrDeleteCancelled) {
		s.println("Deletion cancelled.")
		return nil
	}
	if err != nil {
		s.printf("Error: %s\n", err)
		return nil
	}
	s.println("Student permanently deleted.")
	log.Event("student.delete", "id", st.ID, "regNo", st.RegNo)
	return nil
}
