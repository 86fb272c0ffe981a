package services

import (
	"testing"

	"ieltsprep/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"

	gormdb "gorm.io/gorm"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gormdb.Open(sqlite.Open(":memory:"), &gormdb.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Skill{},
		&models.PracticeSet{},
		&models.ListeningTrack{},
		&models.Question{},
		&models.QuestionOption{},
		&models.PracticeSession{},
		&models.PracticeAnswer{},
		&models.ExamSession{},
		&models.ExamSectionResult{},
		&models.ExamAnswer{},
		&models.WritingEvaluation{},
		&models.SpeakingAttempt{},
		&models.SpeakingEvaluation{},
		&models.Profile{},
		&models.PremiumEvent{},
		&models.SubscriptionPlan{},
		&models.PaymentSession{},
		&models.Subscription{},
	))
	return NewGormStore(db)
}

func newSessionService(store *GormStore) (*SessionService, *ProfileService) {
	profiles := NewProfileService(store)
	entitlements := NewEntitlementService(profiles)
	return NewSessionService(store, entitlements, NewAggregator(store)), profiles
}

// seedCatalog creates one skill with one practice set of three objective
// questions, each with a correct and a wrong option. Returns the set id and
// the option ids keyed by question id.
func seedCatalog(t *testing.T, store *GormStore, premiumSet bool) (uint, map[uint][2]uint) {
	t.Helper()
	skill := models.Skill{Slug: "reading", Name: "Reading"}
	require.NoError(t, store.db.Create(&skill).Error)

	set := models.PracticeSet{SkillID: skill.ID, Title: "Academic Reading 1", IsPremium: premiumSet, IsActive: true}
	require.NoError(t, store.db.Create(&set).Error)

	options := map[uint][2]uint{}
	for i := 0; i < 3; i++ {
		q := models.Question{
			PracticeSetID: &set.ID,
			SkillID:       skill.ID,
			Type:          models.QuestionTypeObjective,
			OrderIndex:    i,
			Prompt:        "question",
		}
		require.NoError(t, store.db.Create(&q).Error)

		right := models.QuestionOption{QuestionID: q.ID, OptionIndex: 0, Text: "right", IsCorrect: true}
		wrong := models.QuestionOption{QuestionID: q.ID, OptionIndex: 1, Text: "wrong"}
		require.NoError(t, store.db.Create(&right).Error)
		require.NoError(t, store.db.Create(&wrong).Error)
		options[q.ID] = [2]uint{right.ID, wrong.ID}
	}
	return set.ID, options
}

func grantPremium(t *testing.T, store *GormStore, profiles *ProfileService, userID string) {
	t.Helper()
	_, err := profiles.GetOrCreate(userID)
	require.NoError(t, err)
	require.NoError(t, store.SetProfilePremium(userID, true, nil))
}

func TestStartPracticeUnknownSet(t *testing.T) {
	store := newTestStore(t)
	sessions, _ := newSessionService(store)

	_, err := sessions.StartPractice("user-1", 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartPracticePremiumGate(t *testing.T) {
	store := newTestStore(t)
	sessions, profiles := newSessionService(store)
	setID, _ := seedCatalog(t, store, true)

	_, err := sessions.StartPractice("user-1", setID)
	assert.ErrorIs(t, err, ErrForbidden)

	grantPremium(t, store, profiles, "user-1")

	started, err := sessions.StartPractice("user-1", setID)
	require.NoError(t, err)
	assert.Equal(t, "Academic Reading 1", started.PracticeSet.Title)
}

func TestPracticeSessionFlow(t *testing.T) {
	store := newTestStore(t)
	sessions, _ := newSessionService(store)
	setID, options := seedCatalog(t, store, false)

	started, err := sessions.StartPractice("user-1", setID)
	require.NoError(t, err)

	i := 0
	for questionID, opts := range options {
		// Two correct picks, one wrong.
		pick := opts[0]
		if i == 2 {
			pick = opts[1]
		}
		answer, err := sessions.RecordPracticeAnswer("user-1", started.ID, questionID, uintPtr(pick), "")
		require.NoError(t, err)
		require.NotNil(t, answer.IsCorrect)
		assert.Equal(t, i < 2, *answer.IsCorrect)
		i++
	}

	summary, err := sessions.CompletePractice("user-1", started.ID, intPtr(420))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Stats.TotalQuestions)
	assert.Equal(t, 2, summary.Stats.CorrectQuestions)
	assert.InDelta(t, 66.6666, summary.Stats.Score, 0.001)
	assert.Equal(t, "reading", summary.PracticeSet.SkillSlug)
	assert.False(t, summary.CompletedAt.IsZero())

	// Totals are write-once; completing again is rejected.
	_, err = sessions.CompletePractice("user-1", started.ID, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	recent, err := sessions.RecentPractice("user-1")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Academic Reading 1", recent[0].PracticeSetTitle)
	assert.InDelta(t, 66.6666, recent[0].Score, 0.001)
}

func TestPracticeSessionOwnership(t *testing.T) {
	store := newTestStore(t)
	sessions, _ := newSessionService(store)
	setID, options := seedCatalog(t, store, false)

	started, err := sessions.StartPractice("user-1", setID)
	require.NoError(t, err)

	var anyQuestion uint
	for q := range options {
		anyQuestion = q
		break
	}

	// Another user's reads and writes look like the session does not exist.
	_, err = sessions.RecordPracticeAnswer("user-2", started.ID, anyQuestion, nil, "text")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = sessions.CompletePractice("user-2", started.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGradeObjectiveWithoutCorrectOption(t *testing.T) {
	store := newTestStore(t)
	sessions, _ := newSessionService(store)
	setID, _ := seedCatalog(t, store, false)

	var set models.PracticeSet
	require.NoError(t, store.db.First(&set, setID).Error)
	q := models.Question{PracticeSetID: &setID, SkillID: set.SkillID, Type: models.QuestionTypeObjective, Prompt: "unkeyed"}
	require.NoError(t, store.db.Create(&q).Error)
	opt := models.QuestionOption{QuestionID: q.ID, Text: "a"}
	require.NoError(t, store.db.Create(&opt).Error)

	started, err := sessions.StartPractice("user-1", setID)
	require.NoError(t, err)

	// No option marked correct: correctness stays unknown, never false.
	answer, err := sessions.RecordPracticeAnswer("user-1", started.ID, q.ID, uintPtr(opt.ID), "")
	require.NoError(t, err)
	assert.Nil(t, answer.IsCorrect)
}

func TestStartExamRequiresPremium(t *testing.T) {
	store := newTestStore(t)
	sessions, profiles := newSessionService(store)

	_, err := sessions.StartExam("user-1")
	assert.ErrorIs(t, err, ErrForbidden)

	grantPremium(t, store, profiles, "user-1")
	sess, err := sessions.StartExam("user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.UserID)
}

func TestExamSessionFlow(t *testing.T) {
	store := newTestStore(t)
	sessions, profiles := newSessionService(store)
	setID, options := seedCatalog(t, store, false)
	_ = setID
	grantPremium(t, store, profiles, "user-1")

	sess, err := sessions.StartExam("user-1")
	require.NoError(t, err)

	section, err := sessions.StartSection("user-1", sess.ID, "reading")
	require.NoError(t, err)

	_, err = sessions.StartSection("user-1", sess.ID, "no-such-skill")
	assert.ErrorIs(t, err, ErrNotFound)

	i := 0
	for questionID, opts := range options {
		if i == 2 {
			break
		}
		pick := opts[0]
		if i == 1 {
			pick = opts[1]
		}
		_, err := sessions.RecordExamAnswer("user-1", sess.ID, section.ID, questionID, uintPtr(pick), "")
		require.NoError(t, err)
		i++
	}

	// Correct count comes from the answer rows, total from the caller.
	completed, err := sessions.CompleteSection("user-1", section.ID, 3, intPtr(900))
	require.NoError(t, err)
	assert.Equal(t, 3, completed.TotalQuestions)
	assert.Equal(t, 1, completed.CorrectQuestions)
	assert.InDelta(t, 33.3333, completed.Score, 0.001)

	_, err = sessions.CompleteSection("user-1", section.ID, 3, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	summary, err := sessions.CompleteExam("user-1", sess.ID, intPtr(3600))
	require.NoError(t, err)
	require.Len(t, summary.Sections, 1)
	assert.Equal(t, "reading", summary.Sections[0].SkillSlug)
	assert.InDelta(t, 33.3333, summary.Sections[0].Stats.Score, 0.001)
	require.NotNil(t, summary.ExamSession.CompletedAt)

	_, err = sessions.CompleteExam("user-1", sess.ID, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCompleteEmptySectionScoresZero(t *testing.T) {
	store := newTestStore(t)
	sessions, profiles := newSessionService(store)
	seedCatalog(t, store, false)
	grantPremium(t, store, profiles, "user-1")

	sess, err := sessions.StartExam("user-1")
	require.NoError(t, err)
	section, err := sessions.StartSection("user-1", sess.ID, "reading")
	require.NoError(t, err)

	completed, err := sessions.CompleteSection("user-1", section.ID, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, completed.Score)
}
