// Package export converts quiz lists and teacher rosters to and from xlsx workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mind-engage/ifat/internal/quiz"
)

const quizSheet = "Quizzes"

var quizHeader = []any{"ID", "Code", "Title", "Questions", "Options", "Answer Key", "Created By", "Created At"}

// WriteQuizzes writes one row per quiz to a single-sheet workbook.
func WriteQuizzes(w io.Writer, quizzes []quiz.Quiz) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), quizSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(quizSheet, "A1", &quizHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, q := range quizzes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		created := ""
		if q.CreatedAt > 0 {
			created = time.Unix(q.CreatedAt, 0).UTC().Format(time.RFC3339)
		}
		row := []any{q.ID, q.Code, q.QuizTitle, q.QuestionCount, q.OptionCount,
			strings.Join(q.CorrectAnswers, ","), q.CreatedBy, created}
		if err := f.SetSheetRow(quizSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// TeacherRow is one account read from an import workbook.
type TeacherRow struct {
	Line     int
	Email    string
	Password string
}

// ReadTeachers reads the first sheet of an xlsx workbook. Row 1 is a header;
// column A holds the email and column B the initial password. Rows missing
// either value are skipped.
func ReadTeachers(r io.Reader) ([]TeacherRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("close workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	out := []TeacherRow{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		var email, password string
		if len(row) > 0 {
			email = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			password = row[1]
		}
		if email == "" || password == "" {
			log.Printf("import: skipping row %d (missing email or password)", i+1)
			continue
		}
		out = append(out, TeacherRow{Line: i + 1, Email: email, Password: password})
	}
	return out, nil
}
