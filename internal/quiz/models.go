package quiz

import (
	"errors"
	"strings"
)

var (
	ErrNotFound  = errors.New("quiz not found")
	ErrCodeTaken = errors.New("quiz code already in use")
)

// answerSep joins the answer key into the forms.correct_answers column.
const answerSep = ","

type Quiz struct {
	ID             int64    `json:"id"`
	Code           string   `json:"code"`
	QuestionCount  int      `json:"question_count"`
	OptionCount    int      `json:"option_count"`
	CorrectAnswers []string `json:"correct_answers"`
	CreatedBy      string   `json:"created_by"` // creator email
	QuizTitle      string   `json:"quiz_title"`
	CreatedAt      int64    `json:"created_at,omitempty"`
}

// View is what a student sees after resolving a code. It carries the answer
// key because the answer sheet scores itself in the browser.
type View struct {
	Code           string   `json:"code"`
	QuestionCount  int      `json:"question_count"`
	OptionCount    int      `json:"option_count"`
	CorrectAnswers []string `json:"correct_answers"`
	QuizTitle      string   `json:"quiz_title"`
}

func (q Quiz) View() View {
	answers := make([]string, len(q.CorrectAnswers))
	copy(answers, q.CorrectAnswers)
	return View{
		Code:           q.Code,
		QuestionCount:  q.QuestionCount,
		OptionCount:    q.OptionCount,
		CorrectAnswers: answers,
		QuizTitle:      q.QuizTitle,
	}
}

func EncodeAnswers(answers []string) string {
	return strings.Join(answers, answerSep)
}

func DecodeAnswers(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, answerSep)
}

// ParseAnswers splits free-form user input ("A, b ,C" or "A B C") into
// trimmed, upper-cased answers.
func ParseAnswers(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToUpper(f))
	}
	return out
}
