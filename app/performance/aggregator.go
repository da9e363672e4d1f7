// Package performance computes student performance figures: the overall
// percentage for the most recent exam and the per-subject breakdown
// shown on the student dashboard.
package performance

import (
	"errors"
	"math"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

// historyLimit caps the recent-changes list on the overview.
const historyLimit = 10

// Grade is a per-exam mark pair a caller may already hold, newest
// first. It feeds the third fallback step so an already-loaded row is
// not refetched.
type Grade struct {
	ExamType      models.ExamType `json:"exam_type"`
	MarksObtained float64         `json:"marks_obtained"`
	TotalMarks    float64         `json:"total_marks"`
}

// SubjectScore is one subject row of the latest-exam breakdown. Percent
// is rounded independently per row.
type SubjectScore struct {
	SubjectID   string          `json:"subject_id"`
	SubjectName string          `json:"subject_name"`
	ExamType    models.ExamType `json:"exam_type"`
	Obtained    float64         `json:"marks_obtained"`
	Total       float64         `json:"total_marks"`
	Percent     float64         `json:"percent"`
	Remarks     string          `json:"remarks,omitempty"`
}

// Overview is the student dashboard payload.
type Overview struct {
	Student       *models.Student        `json:"student"`
	LatestExam    models.ExamType        `json:"latest_exam,omitempty"`
	Percentage    *float64               `json:"percentage"`
	HeadlineWhole *float64               `json:"headline_percent"`
	Scores        []SubjectScore         `json:"scores"`
	ExamsAppeared int                    `json:"exams_appeared"`
	History       []*models.MarksHistory `json:"recent_changes"`
}

// Aggregator derives percentage figures from whichever source can
// produce one.
type Aggregator struct {
	store store.Store
}

func NewAggregator(st store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// LatestPercentage resolves the student's overall percentage for their
// most recent exam, trying sources in order until one yields a figure:
//
//  1. the server-side aggregate function,
//  2. the denormalized summary row,
//  3. the caller's preloaded grades (first entry),
//  4. a raw sum over the latest exam's mark rows.
//
// A source that errors is treated the same as one with nothing to say;
// the chain moves on. So is one reporting zero or less: stale aggregate
// rows return 0 even when real marks exist, so only a positive figure
// stops the chain. nil means no source produced a usable figure, which
// is distinct from a real 0%.
func (a *Aggregator) LatestPercentage(studentID string, preloaded []Grade) *float64 {
	if pct, err := a.store.LatestExamPercentage(studentID); err == nil && pct != nil && *pct > 0 {
		v := round2(*pct)
		return &v
	}

	if pct, err := a.store.LatestExamSummary(studentID); err == nil && pct != nil && *pct > 0 {
		v := round2(*pct)
		return &v
	}

	if len(preloaded) > 0 && preloaded[0].TotalMarks > 0 {
		pct := preloaded[0].MarksObtained / preloaded[0].TotalMarks * 100
		if pct > 0 {
			v := round2(pct)
			return &v
		}
	}

	return a.rawPercentage(studentID)
}

// rawPercentage is the last-resort source: sum obtained and total over
// every mark row of the student's most recent exam type.
func (a *Aggregator) rawPercentage(studentID string) *float64 {
	examType, err := a.store.LatestExamType(studentID)
	if err != nil {
		return nil
	}
	marks, err := a.store.MarksForExam(studentID, examType)
	if err != nil || len(marks) == 0 {
		return nil
	}

	var obtained, total float64
	for _, m := range marks {
		obtained += m.MarksObtained
		total += m.TotalMarks
	}
	if total <= 0 {
		return nil
	}
	v := round2(obtained / total * 100)
	return &v
}

// Overview assembles the dashboard payload for one student. Only the
// student themselves or an admin may view it.
func (a *Aggregator) Overview(caller models.Identity, studentID string) (*Overview, error) {
	if !caller.IsAdmin() && !(caller.IsStudent() && caller.StudentID == studentID) {
		return nil, store.ErrNotAuthorized
	}

	student, err := a.store.StudentByID(studentID)
	if err != nil {
		return nil, err
	}

	ov := &Overview{Student: student}

	examTypes, err := a.store.DistinctExamTypes(studentID)
	if err != nil {
		return nil, err
	}
	ov.ExamsAppeared = len(examTypes)

	if latest, err := a.store.LatestExamType(studentID); err == nil {
		ov.LatestExam = latest
		marks, err := a.store.MarksForExam(studentID, latest)
		if err != nil {
			return nil, err
		}
		for _, m := range marks {
			score := SubjectScore{
				SubjectID: m.SubjectID,
				ExamType:  m.ExamType,
				Obtained:  m.MarksObtained,
				Total:     m.TotalMarks,
				Percent:   RowPercent(m),
				Remarks:   m.Remarks,
			}
			if m.Subject != nil {
				score.SubjectName = m.Subject.Name
			}
			ov.Scores = append(ov.Scores, score)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	ov.Percentage = a.LatestPercentage(studentID, nil)
	if ov.Percentage != nil {
		whole := math.Round(*ov.Percentage)
		ov.HeadlineWhole = &whole
	}

	history, err := a.store.MarksHistoryByStudent(studentID, historyLimit)
	if err != nil {
		return nil, err
	}
	ov.History = history

	return ov, nil
}

// RowPercent computes one mark row's percentage, rounded to two
// decimals. Rows with a non-positive total score as 0.
func RowPercent(m *models.Mark) float64 {
	if m.TotalMarks <= 0 {
		return 0
	}
	return round2(m.MarksObtained / m.TotalMarks * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
