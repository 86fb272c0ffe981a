package services

import (
	"testing"
	"time"

	"ieltsprep/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore serves canned rows and counts every call so tests can assert the
// aggregator batches its reads instead of fetching per row.
type fakeStore struct {
	skills       []models.Skill
	sets         []models.PracticeSet
	questions    []models.Question
	options      []models.QuestionOption
	practice     []models.PracticeSession
	pAnswers     []models.PracticeAnswer
	examSessions []models.ExamSession
	sections     []models.ExamSectionResult
	eAnswers     []models.ExamAnswer
	writingEvals []models.WritingEvaluation
	attempts     []models.SpeakingAttempt
	spkEvals     []models.SpeakingEvaluation

	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{calls: map[string]int{}}
}

func (f *fakeStore) count(name string) { f.calls[name]++ }

func (f *fakeStore) SkillBySlug(slug string) (*models.Skill, error) {
	f.count("SkillBySlug")
	for i := range f.skills {
		if f.skills[i].Slug == slug {
			return &f.skills[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SkillsByIDs(ids []uint) ([]models.Skill, error) {
	f.count("SkillsByIDs")
	return f.skills, nil
}

func (f *fakeStore) PracticeSetByID(id uint) (*models.PracticeSet, error) {
	f.count("PracticeSetByID")
	for i := range f.sets {
		if f.sets[i].ID == id {
			return &f.sets[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) PracticeSetsByIDs(ids []uint) ([]models.PracticeSet, error) {
	f.count("PracticeSetsByIDs")
	return f.sets, nil
}

func (f *fakeStore) QuestionByID(id uint) (*models.Question, error) {
	f.count("QuestionByID")
	for i := range f.questions {
		if f.questions[i].ID == id {
			return &f.questions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) QuestionsByIDs(ids []uint) ([]models.Question, error) {
	f.count("QuestionsByIDs")
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Question
	for _, q := range f.questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) QuestionsByPracticeSet(setID uint) ([]models.Question, error) {
	f.count("QuestionsByPracticeSet")
	var out []models.Question
	for _, q := range f.questions {
		if q.PracticeSetID != nil && *q.PracticeSetID == setID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeStore) OptionsByQuestionIDs(ids []uint) ([]models.QuestionOption, error) {
	f.count("OptionsByQuestionIDs")
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []models.QuestionOption
	for _, o := range f.options {
		if want[o.QuestionID] {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeStore) CorrectOptionByQuestion(questionID uint) (*models.QuestionOption, error) {
	f.count("CorrectOptionByQuestion")
	for i := range f.options {
		if f.options[i].QuestionID == questionID && f.options[i].IsCorrect {
			return &f.options[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreatePracticeSession(s *models.PracticeSession) error {
	f.count("CreatePracticeSession")
	s.ID = uint(len(f.practice) + 1)
	f.practice = append(f.practice, *s)
	return nil
}

func (f *fakeStore) PracticeSessionByID(id uint) (*models.PracticeSession, error) {
	f.count("PracticeSessionByID")
	for i := range f.practice {
		if f.practice[i].ID == id {
			return &f.practice[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdatePracticeSession(id uint, fields map[string]interface{}) error {
	f.count("UpdatePracticeSession")
	return nil
}

func (f *fakeStore) RecentPracticeSessions(userID string, limit int) ([]models.PracticeSession, error) {
	f.count("RecentPracticeSessions")
	var out []models.PracticeSession
	for _, s := range f.practice {
		if s.UserID == userID && s.CompletedAt != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CreatePracticeAnswer(a *models.PracticeAnswer) error {
	f.count("CreatePracticeAnswer")
	a.ID = uint(len(f.pAnswers) + 1)
	f.pAnswers = append(f.pAnswers, *a)
	return nil
}

func (f *fakeStore) PracticeAnswerByID(id uint) (*models.PracticeAnswer, error) {
	f.count("PracticeAnswerByID")
	for i := range f.pAnswers {
		if f.pAnswers[i].ID == id {
			return &f.pAnswers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) PracticeAnswersBySession(sessionID uint) ([]models.PracticeAnswer, error) {
	f.count("PracticeAnswersBySession")
	var out []models.PracticeAnswer
	for _, a := range f.pAnswers {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateExamSession(s *models.ExamSession) error {
	f.count("CreateExamSession")
	s.ID = uint(len(f.examSessions) + 1)
	f.examSessions = append(f.examSessions, *s)
	return nil
}

func (f *fakeStore) ExamSessionByID(id uint) (*models.ExamSession, error) {
	f.count("ExamSessionByID")
	for i := range f.examSessions {
		if f.examSessions[i].ID == id {
			return &f.examSessions[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateExamSession(id uint, fields map[string]interface{}) error {
	f.count("UpdateExamSession")
	return nil
}

func (f *fakeStore) CreateSectionResult(r *models.ExamSectionResult) error {
	f.count("CreateSectionResult")
	r.ID = uint(len(f.sections) + 1)
	f.sections = append(f.sections, *r)
	return nil
}

func (f *fakeStore) SectionResultByID(id uint) (*models.ExamSectionResult, error) {
	f.count("SectionResultByID")
	for i := range f.sections {
		if f.sections[i].ID == id {
			return &f.sections[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SectionResultsBySession(sessionID uint) ([]models.ExamSectionResult, error) {
	f.count("SectionResultsBySession")
	var out []models.ExamSectionResult
	for _, s := range f.sections {
		if s.ExamSessionID == sessionID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateSectionResult(id uint, fields map[string]interface{}) error {
	f.count("UpdateSectionResult")
	return nil
}

func (f *fakeStore) CreateExamAnswer(a *models.ExamAnswer) error {
	f.count("CreateExamAnswer")
	a.ID = uint(len(f.eAnswers) + 1)
	f.eAnswers = append(f.eAnswers, *a)
	return nil
}

func (f *fakeStore) ExamAnswerByID(id uint) (*models.ExamAnswer, error) {
	f.count("ExamAnswerByID")
	for i := range f.eAnswers {
		if f.eAnswers[i].ID == id {
			return &f.eAnswers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ExamAnswersBySection(sectionID uint) ([]models.ExamAnswer, error) {
	f.count("ExamAnswersBySection")
	var out []models.ExamAnswer
	for _, a := range f.eAnswers {
		if a.SectionResultID == sectionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CountCorrectExamAnswers(sectionID uint) (int64, error) {
	f.count("CountCorrectExamAnswers")
	var n int64
	for _, a := range f.eAnswers {
		if a.SectionResultID == sectionID && a.IsCorrect != nil && *a.IsCorrect {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateWritingEvaluation(e *models.WritingEvaluation) error {
	f.count("CreateWritingEvaluation")
	e.ID = uint(len(f.writingEvals) + 1)
	f.writingEvals = append(f.writingEvals, *e)
	return nil
}

func (f *fakeStore) WritingEvaluationsByAnswerIDs(mode string, answerIDs []uint) ([]models.WritingEvaluation, error) {
	f.count("WritingEvaluationsByAnswerIDs")
	want := map[uint]bool{}
	for _, id := range answerIDs {
		want[id] = true
	}
	var out []models.WritingEvaluation
	for _, e := range f.writingEvals {
		if e.Mode == mode && want[e.AnswerID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSpeakingAttempt(a *models.SpeakingAttempt) error {
	f.count("CreateSpeakingAttempt")
	a.ID = uint(len(f.attempts) + 1)
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeStore) SpeakingAttemptByID(id uint) (*models.SpeakingAttempt, error) {
	f.count("SpeakingAttemptByID")
	for i := range f.attempts {
		if f.attempts[i].ID == id {
			return &f.attempts[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SpeakingAttemptsByExamSession(sessionID uint) ([]models.SpeakingAttempt, error) {
	f.count("SpeakingAttemptsByExamSession")
	var out []models.SpeakingAttempt
	for _, a := range f.attempts {
		if a.ExamSessionID != nil && *a.ExamSessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSpeakingEvaluation(e *models.SpeakingEvaluation) error {
	f.count("CreateSpeakingEvaluation")
	e.ID = uint(len(f.spkEvals) + 1)
	f.spkEvals = append(f.spkEvals, *e)
	return nil
}

func (f *fakeStore) SpeakingEvaluationsByAttemptIDs(attemptIDs []uint) ([]models.SpeakingEvaluation, error) {
	f.count("SpeakingEvaluationsByAttemptIDs")
	want := map[uint]bool{}
	for _, id := range attemptIDs {
		want[id] = true
	}
	var out []models.SpeakingEvaluation
	for _, e := range f.spkEvals {
		if want[e.AttemptID] {
			out = append(out, e)
		}
	}
	return out, nil
}

func uintPtr(v uint) *uint           { return &v }
func intPtr(v int) *int              { return &v }
func boolPtr(v bool) *bool           { return &v }
func floatPtr(v float64) *float64    { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func withID(id uint) gorm.Model { return gorm.Model{ID: id} }

func TestScore(t *testing.T) {
	assert.Equal(t, 0.0, Score(0, 0))
	assert.Equal(t, 0.0, Score(5, 0))
	assert.Equal(t, 100.0, Score(3, 3))
	assert.InDelta(t, 66.6666, Score(2, 3), 0.001)
}

func TestBuildPracticeSummary(t *testing.T) {
	store := newFakeStore()

	setID := uintPtr(10)
	store.questions = []models.Question{
		{Model: withID(1), PracticeSetID: setID, SkillID: 1, Type: models.QuestionTypeObjective, Prompt: "Q1"},
		{Model: withID(2), PracticeSetID: setID, SkillID: 1, Type: models.QuestionTypeObjective, Prompt: "Q2"},
		{Model: withID(3), PracticeSetID: setID, SkillID: 1, Type: models.QuestionTypeSubjective, Prompt: "Q3"},
	}
	store.options = []models.QuestionOption{
		{Model: withID(11), QuestionID: 1, Text: "right", IsCorrect: true},
		{Model: withID(12), QuestionID: 1, Text: "wrong"},
		{Model: withID(13), QuestionID: 2, Text: "right", IsCorrect: true},
		{Model: withID(14), QuestionID: 2, Text: "wrong"},
	}
	now := time.Now()
	store.pAnswers = []models.PracticeAnswer{
		{Model: withID(1), SessionID: 5, QuestionID: 1, OptionID: uintPtr(11), IsCorrect: boolPtr(true)},
		{Model: withID(2), SessionID: 5, QuestionID: 2, OptionID: uintPtr(14), IsCorrect: boolPtr(false)},
		{Model: withID(3), SessionID: 5, QuestionID: 3, AnswerText: "my essay"},
	}
	store.writingEvals = []models.WritingEvaluation{
		{Model: withID(1), AnswerID: 3, Mode: models.EvalModePractice, OverallBand: floatPtr(6.5)},
	}

	sess := &models.PracticeSession{
		Model:            withID(5),
		UserID:           "user-1",
		PracticeSetID:    10,
		CompletedAt:      timePtr(now),
		TimeTakenSeconds: intPtr(300),
	}

	summary, err := NewAggregator(store).BuildPracticeSummary(sess)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Stats.TotalQuestions)
	assert.Equal(t, 1, summary.Stats.CorrectQuestions)
	assert.InDelta(t, 33.3333, summary.Stats.Score, 0.001)
	require.Len(t, summary.Answers, 3)

	// Selected option text replaces free text; correct answer text only for
	// objective questions.
	assert.Equal(t, "right", summary.Answers[0].UserAnswer)
	assert.Equal(t, "right", summary.Answers[0].CorrectAnswer)
	assert.Equal(t, "wrong", summary.Answers[1].UserAnswer)
	assert.Equal(t, "right", summary.Answers[1].CorrectAnswer)
	assert.Equal(t, "my essay", summary.Answers[2].UserAnswer)
	assert.Empty(t, summary.Answers[2].CorrectAnswer)
	assert.Nil(t, summary.Answers[2].IsCorrect)
	require.NotNil(t, summary.Answers[2].Evaluation)
	assert.Equal(t, 6.5, *summary.Answers[2].Evaluation.OverallBand)

	// One batched read per concern regardless of answer count.
	assert.Equal(t, 1, store.calls["PracticeAnswersBySession"])
	assert.Equal(t, 1, store.calls["QuestionsByPracticeSet"])
	assert.Equal(t, 1, store.calls["OptionsByQuestionIDs"])
	assert.Equal(t, 1, store.calls["WritingEvaluationsByAnswerIDs"])
	assert.Zero(t, store.calls["QuestionByID"])
	assert.Zero(t, store.calls["CorrectOptionByQuestion"])
}

func TestBuildPracticeSummaryCountsDuplicateAnswers(t *testing.T) {
	store := newFakeStore()
	setID := uintPtr(10)
	store.questions = []models.Question{
		{Model: withID(1), PracticeSetID: setID, SkillID: 1, Type: models.QuestionTypeObjective, Prompt: "Q1"},
	}
	store.options = []models.QuestionOption{
		{Model: withID(11), QuestionID: 1, Text: "right", IsCorrect: true},
	}
	store.pAnswers = []models.PracticeAnswer{
		{Model: withID(1), SessionID: 5, QuestionID: 1, OptionID: uintPtr(11), IsCorrect: boolPtr(true)},
		{Model: withID(2), SessionID: 5, QuestionID: 1, OptionID: uintPtr(11), IsCorrect: boolPtr(true)},
	}

	sess := &models.PracticeSession{Model: withID(5), UserID: "user-1", PracticeSetID: 10}
	summary, err := NewAggregator(store).BuildPracticeSummary(sess)
	require.NoError(t, err)

	// Every answer row counts; totals come from the catalog.
	assert.Equal(t, 1, summary.Stats.TotalQuestions)
	assert.Equal(t, 2, summary.Stats.CorrectQuestions)
	assert.Equal(t, 200.0, summary.Stats.Score)
}

func TestBuildPracticeSummaryEmptySession(t *testing.T) {
	store := newFakeStore()
	sess := &models.PracticeSession{Model: withID(5), UserID: "user-1", PracticeSetID: 99}

	summary, err := NewAggregator(store).BuildPracticeSummary(sess)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Stats.TotalQuestions)
	assert.Equal(t, 0.0, summary.Stats.Score)
	assert.Empty(t, summary.Answers)
}

func TestBuildExamSummary(t *testing.T) {
	store := newFakeStore()
	store.skills = []models.Skill{
		{Model: withID(1), Slug: "listening", Name: "Listening"},
		{Model: withID(2), Slug: "reading", Name: "Reading"},
	}
	store.questions = []models.Question{
		{Model: withID(1), SkillID: 1, Type: models.QuestionTypeObjective, Prompt: "L1"},
		{Model: withID(2), SkillID: 2, Type: models.QuestionTypeObjective, Prompt: "R1"},
		{Model: withID(3), SkillID: 3, Type: models.QuestionTypeSubjective, Prompt: "Speak about home"},
	}
	store.options = []models.QuestionOption{
		{Model: withID(11), QuestionID: 1, Text: "yes", IsCorrect: true},
		{Model: withID(21), QuestionID: 2, Text: "no", IsCorrect: true},
	}
	store.sections = []models.ExamSectionResult{
		{Model: withID(1), ExamSessionID: 7, SkillID: 1, TotalQuestions: 2, CorrectQuestions: 1, Score: 50},
		{Model: withID(2), ExamSessionID: 7, SkillID: 2, TotalQuestions: 1, CorrectQuestions: 1, Score: 100},
	}
	store.eAnswers = []models.ExamAnswer{
		{Model: withID(1), ExamSessionID: 7, SectionResultID: 1, SkillID: 1, QuestionID: 1, OptionID: uintPtr(11), IsCorrect: boolPtr(true)},
		{Model: withID(2), ExamSessionID: 7, SectionResultID: 2, SkillID: 2, QuestionID: 2, OptionID: uintPtr(21), IsCorrect: boolPtr(true)},
	}
	store.attempts = []models.SpeakingAttempt{
		{Model: withID(1), UserID: "user-1", QuestionID: 3, Mode: models.EvalModeExam, ExamSessionID: uintPtr(7), AudioPath: "rec/a1.mp3", DurationSeconds: 45},
	}
	store.spkEvals = []models.SpeakingEvaluation{
		{Model: withID(1), AttemptID: 1, OverallBand: floatPtr(7.0)},
	}

	sess := &models.ExamSession{Model: withID(7), UserID: "user-1"}
	summary, err := NewAggregator(store).BuildExamSummary(sess)
	require.NoError(t, err)

	require.Len(t, summary.Sections, 2)
	assert.Equal(t, "listening", summary.Sections[0].SkillSlug)
	assert.Equal(t, "reading", summary.Sections[1].SkillSlug)

	// Section stats come from the stored rows, not a recount.
	assert.Equal(t, 2, summary.Sections[0].Stats.TotalQuestions)
	assert.Equal(t, 50.0, summary.Sections[0].Stats.Score)
	assert.Equal(t, 100.0, summary.Sections[1].Stats.Score)

	require.Len(t, summary.SpeakingAttempts, 1)
	require.NotNil(t, summary.SpeakingAttempts[0].Evaluation)
	assert.Equal(t, 7.0, *summary.SpeakingAttempts[0].Evaluation.OverallBand)

	// Skill slugs and speaking evaluations resolve through single batched reads.
	assert.Equal(t, 1, store.calls["SkillsByIDs"])
	assert.Equal(t, 1, store.calls["SpeakingAttemptsByExamSession"])
	assert.Equal(t, 1, store.calls["SpeakingEvaluationsByAttemptIDs"])
	assert.Zero(t, store.calls["SkillBySlug"])
}
