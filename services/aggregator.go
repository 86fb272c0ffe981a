package services

import (
	"time"

	"ieltsprep/models"
)

// AnswerSummary is one enriched answer record: the question prompt, what the
// user answered (selected option text or free text), the correct option text
// for objective questions, and any writing evaluation attached to the answer.
type AnswerSummary struct {
	AnswerID      uint                      `json:"answer_id"`
	QuestionID    uint                      `json:"question_id"`
	Prompt        string                    `json:"prompt"`
	UserAnswer    string                    `json:"user_answer"`
	CorrectAnswer string                    `json:"correct_answer,omitempty"`
	IsCorrect     *bool                     `json:"is_correct"`
	Evaluation    *models.WritingEvaluation `json:"evaluation,omitempty"`
}

// SessionStats are the numeric totals of one scored scope.
type SessionStats struct {
	TotalQuestions   int     `json:"total_questions"`
	CorrectQuestions int     `json:"correct_questions"`
	TimeTakenSeconds *int    `json:"time_taken_seconds"`
	Score            float64 `json:"score"`
}

// PracticeSummary is the client-ready result of a completed practice session.
type PracticeSummary struct {
	SessionID   uint            `json:"session_id"`
	PracticeSet PracticeSetRef  `json:"practice_set"`
	Stats       SessionStats    `json:"stats"`
	Answers     []AnswerSummary `json:"answers"`
	CompletedAt time.Time       `json:"completed_at"`
}

// PracticeSetRef identifies the practiced set in summaries and listings.
type PracticeSetRef struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	SkillSlug string `json:"skill_slug"`
}

// SectionSummary is the per-skill slice of an exam summary.
type SectionSummary struct {
	SectionResultID uint            `json:"section_result_id"`
	SkillSlug       string          `json:"skill_slug"`
	Stats           SessionStats    `json:"stats"`
	Answers         []AnswerSummary `json:"answers"`
}

// SpeakingAttemptSummary pairs a speaking attempt with its evaluation, if any.
type SpeakingAttemptSummary struct {
	AttemptID       uint                       `json:"attempt_id"`
	QuestionID      uint                       `json:"question_id"`
	AudioPath       string                     `json:"audio_path"`
	DurationSeconds int                        `json:"duration_seconds"`
	Evaluation      *models.SpeakingEvaluation `json:"evaluation,omitempty"`
}

// ExamSummary is the session-level envelope nesting all section results.
type ExamSummary struct {
	ExamSession      models.ExamSession       `json:"exam_session"`
	Sections         []SectionSummary         `json:"sections"`
	SpeakingAttempts []SpeakingAttemptSummary `json:"speaking_attempts"`
}

// Aggregator assembles completed-session summaries. It only ever batch-fetches:
// one answers query, one question-catalog query, one options query and one
// evaluations query per scope, then joins everything through in-memory maps.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Score computes the percentage score, 0 when there is nothing to score.
// The result is never rounded server-side.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(correct) / float64(total)
}

// BuildPracticeSummary loads the session's answers, joins them against the
// set's question catalog and any writing evaluations, and computes the totals.
// total comes from the catalog, correct from the answer rows; every answer row
// counts (duplicate submissions for one question are not deduplicated).
func (ag *Aggregator) BuildPracticeSummary(sess *models.PracticeSession) (*PracticeSummary, error) {
	answers, err := ag.store.PracticeAnswersBySession(sess.ID)
	if err != nil {
		return nil, err
	}
	questions, err := ag.store.QuestionsByPracticeSet(sess.PracticeSetID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}
	options, err := ag.store.OptionsByQuestionIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	answerIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		answerIDs = append(answerIDs, a.ID)
	}
	evals, err := ag.store.WritingEvaluationsByAnswerIDs(models.EvalModePractice, answerIDs)
	if err != nil {
		return nil, err
	}

	questionByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}
	optionByID, correctByQuestion := indexOptions(options)
	evalByAnswer := make(map[uint]models.WritingEvaluation, len(evals))
	for _, e := range evals {
		evalByAnswer[e.AnswerID] = e
	}

	out := make([]AnswerSummary, 0, len(answers))
	correct := 0
	for _, a := range answers {
		if a.IsCorrect != nil && *a.IsCorrect {
			correct++
		}
		out = append(out, buildAnswerSummary(
			a.ID, a.QuestionID, a.OptionID, a.AnswerText, a.IsCorrect,
			questionByID, optionByID, correctByQuestion, evalByAnswer,
		))
	}

	summary := &PracticeSummary{
		SessionID: sess.ID,
		Stats: SessionStats{
			TotalQuestions:   len(questions),
			CorrectQuestions: correct,
			TimeTakenSeconds: sess.TimeTakenSeconds,
			Score:            Score(correct, len(questions)),
		},
		Answers: out,
	}
	if sess.CompletedAt != nil {
		summary.CompletedAt = *sess.CompletedAt
	}
	return summary, nil
}

// BuildExamSummary nests one SectionSummary per section result under the
// session envelope, plus the session's speaking attempts joined with their
// evaluations. Section stats are read from the section rows (write-once at
// section completion), not recomputed here.
func (ag *Aggregator) BuildExamSummary(sess *models.ExamSession) (*ExamSummary, error) {
	sections, err := ag.store.SectionResultsBySession(sess.ID)
	if err != nil {
		return nil, err
	}

	skillIDs := make([]uint, 0, len(sections))
	for _, sec := range sections {
		skillIDs = append(skillIDs, sec.SkillID)
	}
	skills, err := ag.store.SkillsByIDs(skillIDs)
	if err != nil {
		return nil, err
	}
	slugBySkill := make(map[uint]string, len(skills))
	for _, sk := range skills {
		slugBySkill[sk.ID] = sk.Slug
	}

	out := make([]SectionSummary, 0, len(sections))
	for _, sec := range sections {
		secSummary, err := ag.buildSectionSummary(sec, slugBySkill[sec.SkillID])
		if err != nil {
			return nil, err
		}
		out = append(out, *secSummary)
	}

	attempts, err := ag.store.SpeakingAttemptsByExamSession(sess.ID)
	if err != nil {
		return nil, err
	}
	attemptIDs := make([]uint, 0, len(attempts))
	for _, a := range attempts {
		attemptIDs = append(attemptIDs, a.ID)
	}
	speakingEvals, err := ag.store.SpeakingEvaluationsByAttemptIDs(attemptIDs)
	if err != nil {
		return nil, err
	}
	evalByAttempt := make(map[uint]models.SpeakingEvaluation, len(speakingEvals))
	for _, e := range speakingEvals {
		evalByAttempt[e.AttemptID] = e
	}

	speaking := make([]SpeakingAttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		item := SpeakingAttemptSummary{
			AttemptID:       a.ID,
			QuestionID:      a.QuestionID,
			AudioPath:       a.AudioPath,
			DurationSeconds: a.DurationSeconds,
		}
		if e, ok := evalByAttempt[a.ID]; ok {
			ev := e
			item.Evaluation = &ev
		}
		speaking = append(speaking, item)
	}

	return &ExamSummary{
		ExamSession:      *sess,
		Sections:         out,
		SpeakingAttempts: speaking,
	}, nil
}

func (ag *Aggregator) buildSectionSummary(sec models.ExamSectionResult, skillSlug string) (*SectionSummary, error) {
	answers, err := ag.store.ExamAnswersBySection(sec.ID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	answerIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		answerIDs = append(answerIDs, a.ID)
		if !seen[a.QuestionID] {
			seen[a.QuestionID] = true
			questionIDs = append(questionIDs, a.QuestionID)
		}
	}

	questions, err := ag.store.QuestionsByIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	options, err := ag.store.OptionsByQuestionIDs(questionIDs)
	if err != nil {
		return nil, err
	}
	evals, err := ag.store.WritingEvaluationsByAnswerIDs(models.EvalModeExam, answerIDs)
	if err != nil {
		return nil, err
	}

	questionByID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}
	optionByID, correctByQuestion := indexOptions(options)
	evalByAnswer := make(map[uint]models.WritingEvaluation, len(evals))
	for _, e := range evals {
		evalByAnswer[e.AnswerID] = e
	}

	out := make([]AnswerSummary, 0, len(answers))
	for _, a := range answers {
		out = append(out, buildAnswerSummary(
			a.ID, a.QuestionID, a.OptionID, a.AnswerText, a.IsCorrect,
			questionByID, optionByID, correctByQuestion, evalByAnswer,
		))
	}

	return &SectionSummary{
		SectionResultID: sec.ID,
		SkillSlug:       skillSlug,
		Stats: SessionStats{
			TotalQuestions:   sec.TotalQuestions,
			CorrectQuestions: sec.CorrectQuestions,
			TimeTakenSeconds: sec.TimeTakenSeconds,
			Score:            sec.Score,
		},
		Answers: out,
	}, nil
}

// indexOptions builds the option lookup maps: by option id, and the designated
// correct option per question.
func indexOptions(options []models.QuestionOption) (map[uint]models.QuestionOption, map[uint]models.QuestionOption) {
	optionByID := make(map[uint]models.QuestionOption, len(options))
	correctByQuestion := make(map[uint]models.QuestionOption)
	for _, o := range options {
		optionByID[o.ID] = o
		if o.IsCorrect {
			correctByQuestion[o.QuestionID] = o
		}
	}
	return optionByID, correctByQuestion
}

func buildAnswerSummary(
	answerID, questionID uint,
	optionID *uint,
	answerText string,
	isCorrect *bool,
	questionByID map[uint]models.Question,
	optionByID map[uint]models.QuestionOption,
	correctByQuestion map[uint]models.QuestionOption,
	evalByAnswer map[uint]models.WritingEvaluation,
) AnswerSummary {
	item := AnswerSummary{
		AnswerID:   answerID,
		QuestionID: questionID,
		UserAnswer: answerText,
		IsCorrect:  isCorrect,
	}
	if q, ok := questionByID[questionID]; ok {
		item.Prompt = q.Prompt
		if q.Type == models.QuestionTypeObjective {
			if correct, ok := correctByQuestion[questionID]; ok {
				item.CorrectAnswer = correct.Text
			}
		}
	}
	if optionID != nil {
		if opt, ok := optionByID[*optionID]; ok {
			item.UserAnswer = opt.Text
		}
	}
	if e, ok := evalByAnswer[answerID]; ok {
		ev := e
		item.Evaluation = &ev
	}
	return item
}
