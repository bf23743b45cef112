package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frenchCSV = `student_id,departement,Code_ue,intitulé_matière,enseignant,note
1001,INFO,UE1,Algo,Smith,12
1001,INFO,UE1,Algo,Smith,16.5
1002.0,INFO,UE1,Algo,,8
1003,INFO,UE1,Algo,Smith,abc
,INFO,UE1,Algo,Smith,10
1004,INFO,UE1,Algo,Smith,25
1005,MATH,UE2,Analyse,Dupont,
`

func TestParseCSV(t *testing.T) {
	t.Run("Success: valid rows loaded, malformed rows quarantined", func(t *testing.T) {
		result, err := ParseCSV(strings.NewReader(frenchCSV))
		require.NoError(t, err)
		require.Len(t, result.Records, 3)

		first := result.Records[0]
		assert.Equal(t, "1001", first.StudentID)
		assert.Equal(t, "INFO", first.Department)
		assert.Equal(t, "UE1", first.SubjectCode)
		assert.Equal(t, "Algo", first.SubjectName)
		assert.Equal(t, "Smith", first.Teacher)
		assert.True(t, first.HasTeacher)
		assert.Equal(t, 12.0, first.Grade)
		assert.Equal(t, 16.5, result.Records[1].Grade)

		// id numerik dinormalisasi sekali saat load
		noTeacher := result.Records[2]
		assert.Equal(t, "1002", noTeacher.StudentID)
		assert.False(t, noTeacher.HasTeacher)
		assert.Equal(t, "", noTeacher.Teacher)

		require.Len(t, result.Rejected, 4)
		lines := make([]int, len(result.Rejected))
		for i, r := range result.Rejected {
			lines[i] = r.Line
		}
		assert.Equal(t, []int{5, 6, 7, 8}, lines)
		assert.Contains(t, result.Rejected[0].Reason, "invalid grade")
		assert.Equal(t, "empty student id", result.Rejected[1].Reason)
		assert.Contains(t, result.Rejected[2].Reason, "out of range")
		assert.Equal(t, "empty grade", result.Rejected[3].Reason)
	})

	t.Run("Success: english headers", func(t *testing.T) {
		csv := "student_id,department,subject_code,subject_name,teacher,grade\nS1,D,C,Subject,T,20\n"
		result, err := ParseCSV(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "S1", result.Records[0].StudentID)
		assert.Equal(t, 20.0, result.Records[0].Grade)
		assert.Empty(t, result.Rejected)
	})

	t.Run("Success: header with byte order mark", func(t *testing.T) {
		csv := "\ufeffstudent_id,departement,Code_ue,intitulé_matière,enseignant,note\n1001,INFO,UE1,Algo,Smith,14\n"
		result, err := ParseCSV(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "1001", result.Records[0].StudentID)
	})

	t.Run("Success: ragged row quarantined, rest kept", func(t *testing.T) {
		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n" +
			"1001,INFO,UE1,Algo,Smith,12\n" +
			"1002,INFO,UE1,Algo,14\n" +
			"1003,INFO,UE1,Algo,Smith,-2\n" +
			"1004,INFO,UE1,Algo,Smith,9\n"
		result, err := ParseCSV(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "1001", result.Records[0].StudentID)
		assert.Equal(t, "1004", result.Records[1].StudentID)

		require.Len(t, result.Rejected, 2)
		assert.Equal(t, RejectedRow{Line: 3, Reason: "expected 6 fields, got 5"}, result.Rejected[0])
		assert.Equal(t, 4, result.Rejected[1].Line)
		assert.Contains(t, result.Rejected[1].Reason, "out of range")
	})

	t.Run("Error: header only", func(t *testing.T) {
		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n"
		result, err := ParseCSV(strings.NewReader(csv))
		assert.ErrorIs(t, err, ErrNoValidRows)
		assert.Empty(t, result.Records)
	})

	t.Run("Error: empty file", func(t *testing.T) {
		_, err := ParseCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoValidRows)
	})

	t.Run("Error: every row rejected", func(t *testing.T) {
		csv := "student_id,departement,Code_ue,intitulé_matière,enseignant,note\n1,INFO,UE1,Algo,Smith,abc\n2,INFO\n"
		result, err := ParseCSV(strings.NewReader(csv))
		assert.ErrorIs(t, err, ErrNoValidRows)
		assert.Len(t, result.Rejected, 2)
	})

	t.Run("Error: missing column", func(t *testing.T) {
		csv := "student_id,department,subject_code,subject_name,grade\nS1,D,C,Subject,12\n"
		_, err := ParseCSV(strings.NewReader(csv))
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "teacher")
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("Success: reads from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "grades.csv")
		require.NoError(t, os.WriteFile(path, []byte(frenchCSV), 0o644))

		result, err := LoadFile(path)
		require.NoError(t, err)
		assert.Len(t, result.Records, 3)
	})

	t.Run("Error: missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
