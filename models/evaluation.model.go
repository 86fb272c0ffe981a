package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Evaluation mode enum values
const (
	EvalModePractice = "practice"
	EvalModeExam     = "exam"
)

// WritingEvaluation holds the AI examiner's verdict for one writing answer.
// Band pointers stay nil when the model did not return that sub-score;
// nil means "not scored", never "scored zero". Rows are immutable once written.
type WritingEvaluation struct {
	gorm.Model
	AnswerID         uint           `json:"answer_id" gorm:"index;not null"`
	Mode             string         `json:"mode" gorm:"not null;type:varchar(20)"` // practice, exam
	UserID           string         `json:"user_id" gorm:"index;not null"`
	QuestionID       uint           `json:"question_id" gorm:"index;not null"`
	OverallBand      *float64       `json:"overall_band"`
	BandTaskResponse *float64       `json:"band_task_response"`
	BandCoherence    *float64       `json:"band_coherence"`
	BandLexical      *float64       `json:"band_lexical"`
	BandGrammar      *float64       `json:"band_grammar"`
	IsGoodEnough     *bool          `json:"is_good_enough"`
	FeedbackShort    string         `json:"feedback_short" gorm:"type:text"`
	FeedbackDetailed string         `json:"feedback_detailed" gorm:"type:text"`
	ModelAnswer      string         `json:"model_answer" gorm:"type:text"`
	Raw              datatypes.JSON `json:"-"`
}

func (WritingEvaluation) TableName() string {
	return "writing_evaluations"
}

// SpeakingAttempt is a recorded audio submission pending or having received evaluation
type SpeakingAttempt struct {
	gorm.Model
	UserID              string `json:"user_id" gorm:"index;not null"`
	QuestionID          uint   `json:"question_id" gorm:"index;not null"`
	AudioPath           string `json:"audio_path" gorm:"not null"`
	DurationSeconds     int    `json:"duration_seconds"`
	Mode                string `json:"mode" gorm:"not null;type:varchar(20)"` // practice, exam
	ExamSessionID       *uint  `json:"exam_session_id"`
	ExamSectionResultID *uint  `json:"exam_section_result_id"`
}

func (SpeakingAttempt) TableName() string {
	return "speaking_attempts"
}

// SpeakingEvaluation is 1:1 with a SpeakingAttempt
type SpeakingEvaluation struct {
	gorm.Model
	AttemptID         uint           `json:"attempt_id" gorm:"uniqueIndex;not null"`
	UserID            string         `json:"user_id" gorm:"index;not null"`
	QuestionID        uint           `json:"question_id" gorm:"index;not null"`
	Mode              string         `json:"mode" gorm:"type:varchar(20)"`
	OverallBand       *float64       `json:"overall_band"`
	BandFluency       *float64       `json:"band_fluency"`
	BandLexical       *float64       `json:"band_lexical"`
	BandGrammar       *float64       `json:"band_grammar"`
	BandPronunciation *float64       `json:"band_pronunciation"`
	IsGoodEnough      *bool          `json:"is_good_enough"`
	FeedbackShort     string         `json:"feedback_short" gorm:"type:text"`
	FeedbackDetailed  string         `json:"feedback_detailed" gorm:"type:text"`
	Transcript        string         `json:"transcript" gorm:"type:text"`
	Raw               datatypes.JSON `json:"-"`
}

func (SpeakingEvaluation) TableName() string {
	return "speaking_evaluations"
}
