package analysis

import "errors"

var (
	ErrEmptyDataset    = errors.New("dataset has no grades")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrStudentNotFound = errors.New("student not found")
)

// IsNotFound reports whether err is one of the lookup failures.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrStudentNotFound)
}
