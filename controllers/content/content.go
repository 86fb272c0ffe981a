package contentController

import (
	"strconv"

	"ieltsprep/middleware"
	"ieltsprep/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ContentController serves the read-only skill and practice-set catalog.
type ContentController struct {
	DB *gorm.DB
}

func NewContentController(db *gorm.DB) *ContentController {
	return &ContentController{DB: db}
}

// ListSkills returns all skills ordered by name
func (ctl *ContentController) ListSkills(c *fiber.Ctx) error {
	var skills []models.Skill
	if err := ctl.DB.Order("name").Find(&skills).Error; err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Skills fetched!", skills)
}

// SkillPracticeSets lists the active practice sets of one skill with per-set
// question counts resolved in a single grouped query.
func (ctl *ContentController) SkillPracticeSets(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var skill models.Skill
	if err := ctl.DB.Where("slug = ?", slug).First(&skill).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Skill not found!", nil)
		}
		return middleware.ErrorResponse(c, err)
	}

	var sets []models.PracticeSet
	err := ctl.DB.
		Where("skill_id = ? AND is_active = ?", skill.ID, true).
		Order("created_at DESC").
		Find(&sets).Error
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	setIDs := make([]uint, 0, len(sets))
	for _, ps := range sets {
		setIDs = append(setIDs, ps.ID)
	}
	countBySet := map[uint]int64{}
	if len(setIDs) > 0 {
		type setCount struct {
			PracticeSetID uint
			Count         int64
		}
		var counts []setCount
		err = ctl.DB.Model(&models.Question{}).
			Select("practice_set_id, COUNT(*) as count").
			Where("practice_set_id IN ?", setIDs).
			Group("practice_set_id").
			Scan(&counts).Error
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}
		for _, sc := range counts {
			countBySet[sc.PracticeSetID] = sc.Count
		}
	}

	items := make([]fiber.Map, 0, len(sets))
	for _, ps := range sets {
		items = append(items, fiber.Map{
			"id":                ps.ID,
			"title":             ps.Title,
			"level_tag":         ps.LevelTag,
			"short_description": ps.ShortDescription,
			"estimated_minutes": ps.EstimatedMinutes,
			"is_premium":        ps.IsPremium,
			"question_count":    countBySet[ps.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practice sets fetched!", fiber.Map{
		"skill": fiber.Map{"slug": skill.Slug, "name": skill.Name},
		"items": items,
	})
}

// GetPracticeSet returns one practice set with its skill, question count and
// listening tracks.
func (ctl *ContentController) GetPracticeSet(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid practice set id!", nil)
	}

	var ps models.PracticeSet
	if err := ctl.DB.Where("id = ?", id).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Practice set not found!", nil)
		}
		return middleware.ErrorResponse(c, err)
	}

	var skill models.Skill
	if err := ctl.DB.Where("id = ?", ps.SkillID).First(&skill).Error; err != nil && err != gorm.ErrRecordNotFound {
		return middleware.ErrorResponse(c, err)
	}

	var questionCount int64
	if err := ctl.DB.Model(&models.Question{}).Where("practice_set_id = ?", ps.ID).Count(&questionCount).Error; err != nil {
		return middleware.ErrorResponse(c, err)
	}

	var tracks []models.ListeningTrack
	if err := ctl.DB.Where("practice_set_id = ?", ps.ID).Find(&tracks).Error; err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practice set fetched!", fiber.Map{
		"practice_set":     ps,
		"skill":            fiber.Map{"slug": skill.Slug, "name": skill.Name},
		"question_count":   questionCount,
		"listening_tracks": tracks,
	})
}

// PracticeSetQuestions lists a set's questions with options and listening
// tracks attached through batch lookups, never per question.
func (ctl *ContentController) PracticeSetQuestions(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid practice set id!", nil)
	}

	var ps models.PracticeSet
	if err := ctl.DB.Where("id = ?", id).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Practice set not found!", nil)
		}
		return middleware.ErrorResponse(c, err)
	}

	var questions []models.Question
	err = ctl.DB.Where("practice_set_id = ?", ps.ID).Order("order_index").Find(&questions).Error
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	questionIDs := make([]uint, 0, len(questions))
	trackIDs := make([]uint, 0)
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
		if q.ListeningTrackID != nil {
			trackIDs = append(trackIDs, *q.ListeningTrackID)
		}
	}

	// The correct flag never leaves the server on catalog reads.
	optionsByQuestion := map[uint][]fiber.Map{}
	if len(questionIDs) > 0 {
		var options []models.QuestionOption
		err = ctl.DB.Where("question_id IN ?", questionIDs).Order("option_index").Find(&options).Error
		if err != nil {
			return middleware.ErrorResponse(c, err)
		}
		for _, o := range options {
			optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], fiber.Map{
				"id":           o.ID,
				"option_index": o.OptionIndex,
				"text":         o.Text,
			})
		}
	}

	trackByID := map[uint]models.ListeningTrack{}
	if len(trackIDs) > 0 {
		var tracks []models.ListeningTrack
		if err := ctl.DB.Where("id IN ?", trackIDs).Find(&tracks).Error; err != nil {
			return middleware.ErrorResponse(c, err)
		}
		for _, t := range tracks {
			trackByID[t.ID] = t
		}
	}

	out := make([]fiber.Map, 0, len(questions))
	for _, q := range questions {
		item := fiber.Map{
			"id":              q.ID,
			"type":            q.Type,
			"order_index":     q.OrderIndex,
			"prompt":          q.Prompt,
			"passage":         q.Passage,
			"max_score":       q.MaxScore,
			"audio_start_sec": q.AudioStartSec,
			"audio_end_sec":   q.AudioEndSec,
			"options":         optionsByQuestion[q.ID],
		}
		if q.ListeningTrackID != nil {
			if track, ok := trackByID[*q.ListeningTrackID]; ok {
				item["listening_track"] = track
			}
		}
		out = append(out, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched!", out)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
