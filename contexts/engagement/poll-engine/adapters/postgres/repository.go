package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"atrium/contexts/engagement/poll-engine/domain/entities"
	domainerrors "atrium/contexts/engagement/poll-engine/domain/errors"
	"atrium/contexts/engagement/poll-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates the poll engine schema, including the partial unique
// key closing the duplicate-submission race (single_vote_key is NULL for
// multi-vote polls, so the index only binds single-vote submissions).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&pollModel{},
		&pollQuestionModel{},
		&pollOptionModel{},
		&pollResponseModel{},
		&pollAnswerModel{},
		&outboxModel{},
	)
}

func (r *Repository) CreatePoll(ctx context.Context, poll entities.Poll) error {
	pollRow, questionRows, optionRows := pollRowsFromEntity(poll)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pollRow).Error; err != nil {
			return err
		}
		if len(questionRows) > 0 {
			if err := tx.Create(&questionRows).Error; err != nil {
				return err
			}
		}
		if len(optionRows) > 0 {
			if err := tx.Create(&optionRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return r.logError("poll_repo_create_poll_failed", err,
			"poll_id", strings.TrimSpace(poll.PollID),
			"owner_id", strings.TrimSpace(poll.OwnerID),
		)
	}
	return nil
}

func (r *Repository) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(pollID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("poll_repo_get_poll_failed", err, "poll_id", strings.TrimSpace(pollID))
	}

	questionsByPoll, err := r.loadQuestions(ctx, []string{row.ID})
	if err != nil {
		return entities.Poll{}, err
	}
	return row.toEntity(questionsByPoll[row.ID]), nil
}

func (r *Repository) UpdatePoll(ctx context.Context, poll entities.Poll) error {
	result := r.db.WithContext(ctx).
		Model(&pollModel{}).
		Where("id = ?", strings.TrimSpace(poll.PollID)).
		Updates(map[string]any{
			"title":                strings.TrimSpace(poll.Title),
			"description":          strings.TrimSpace(poll.Description),
			"poll_type":            int(poll.PollType),
			"allow_multiple_votes": poll.AllowMultipleVotes,
			"is_active":            poll.IsActive,
			"end_date":             normalizeOptionalTime(poll.EndDate),
			"updated_at":           poll.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_update_poll_failed", result.Error,
			"poll_id", strings.TrimSpace(poll.PollID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) DeletePoll(ctx context.Context, pollID string) error {
	pollID = strings.TrimSpace(pollID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", pollID).Delete(&pollAnswerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&pollResponseModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&pollOptionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", pollID).Delete(&pollQuestionModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", pollID).Delete(&pollModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrPollNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPollNotFound) {
			return err
		}
		return r.logError("poll_repo_delete_poll_failed", err, "poll_id", pollID)
	}
	return nil
}

func (r *Repository) ListActivePolls(ctx context.Context, now time.Time) ([]entities.Poll, error) {
	var rows []pollModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("end_date IS NULL OR end_date >= ?", now.UTC()).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_list_active_failed", err)
	}
	return r.toPollEntities(ctx, rows)
}

func (r *Repository) ListPollsByOwner(ctx context.Context, ownerID string) ([]entities.Poll, error) {
	var rows []pollModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", strings.TrimSpace(ownerID)).
		Order("created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_list_by_owner_failed", err, "owner_id", strings.TrimSpace(ownerID))
	}
	return r.toPollEntities(ctx, rows)
}

func (r *Repository) ListPollsPastEndDate(ctx context.Context, now time.Time) ([]entities.Poll, error) {
	var rows []pollModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("end_date IS NOT NULL AND end_date < ?", now.UTC()).
		Order("end_date ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_list_past_end_date_failed", err)
	}
	return r.toPollEntities(ctx, rows)
}

func (r *Repository) MarkPollClosed(ctx context.Context, pollID string, updatedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&pollModel{}).
		Where("id = ?", strings.TrimSpace(pollID)).
		Updates(map[string]any{
			"is_active":  false,
			"updated_at": updatedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_mark_closed_failed", result.Error, "poll_id", strings.TrimSpace(pollID))
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrPollNotFound
	}
	return nil
}

func (r *Repository) HasRespondent(ctx context.Context, pollID string, userID string, ipAddress string) (bool, error) {
	key := entities.RespondentKey(strings.TrimSpace(userID), strings.TrimSpace(ipAddress))
	if key == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&pollResponseModel{}).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Where("respondent_key = ?", key).
		Count(&count).
		Error
	if err != nil {
		return false, r.logError("poll_repo_has_respondent_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}
	return count > 0, nil
}

// AddResponse persists the response, its answers and every referenced tally
// increment inside one transaction. Tallies use a store-side counter
// expression rather than read-modify-write so concurrent submissions to the
// same option never lose an increment; the single-vote unique key turns a
// losing racer into ErrDuplicateResponse.
func (r *Repository) AddResponse(ctx context.Context, response entities.PollResponse, enforceSingle bool) error {
	responseRow, answerRows := responseRowsFromEntity(response, enforceSingle)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&responseRow).Error; err != nil {
			return err
		}
		if len(answerRows) > 0 {
			if err := tx.Create(&answerRows).Error; err != nil {
				return err
			}
		}
		for _, answer := range answerRows {
			if answer.OptionID == nil {
				continue
			}
			result := tx.Model(&pollOptionModel{}).
				Where("id = ?", *answer.OptionID).
				UpdateColumn("vote_count", gorm.Expr("vote_count + ?", 1))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerrors.ErrOptionNotFound
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateResponse
		}
		if errors.Is(err, domainerrors.ErrOptionNotFound) {
			return err
		}
		return r.logError("poll_repo_add_response_failed", err,
			"poll_id", strings.TrimSpace(response.PollID),
			"response_id", strings.TrimSpace(response.ResponseID),
		)
	}
	return nil
}

func (r *Repository) ListResponsesByPoll(ctx context.Context, pollID string) ([]entities.PollResponse, error) {
	pollID = strings.TrimSpace(pollID)
	var responseRows []pollResponseModel
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("submitted_at ASC, id ASC").
		Find(&responseRows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_list_responses_failed", err, "poll_id", pollID)
	}
	if len(responseRows) == 0 {
		return []entities.PollResponse{}, nil
	}

	var answerRows []pollAnswerModel
	err = r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Find(&answerRows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_list_answers_failed", err, "poll_id", pollID)
	}

	answersByResponse := make(map[string][]entities.PollAnswer, len(responseRows))
	for _, row := range answerRows {
		answersByResponse[row.ResponseID] = append(answersByResponse[row.ResponseID], row.toEntity())
	}

	items := make([]entities.PollResponse, 0, len(responseRows))
	for _, row := range responseRows {
		items = append(items, row.toEntity(answersByResponse[row.ID]))
	}
	return items, nil
}

func (r *Repository) GetRespondentResponse(
	ctx context.Context,
	pollID string,
	userID string,
	ipAddress string,
) (entities.PollResponse, bool, error) {
	key := entities.RespondentKey(strings.TrimSpace(userID), strings.TrimSpace(ipAddress))
	if key == "" {
		return entities.PollResponse{}, false, nil
	}

	var row pollResponseModel
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", strings.TrimSpace(pollID)).
		Where("respondent_key = ?", key).
		Order("submitted_at DESC").
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.PollResponse{}, false, nil
		}
		return entities.PollResponse{}, false, r.logError("poll_repo_get_respondent_response_failed", err,
			"poll_id", strings.TrimSpace(pollID),
		)
	}

	var answerRows []pollAnswerModel
	err = r.db.WithContext(ctx).
		Where("response_id = ?", row.ID).
		Order("position ASC").
		Find(&answerRows).
		Error
	if err != nil {
		return entities.PollResponse{}, false, r.logError("poll_repo_get_respondent_answers_failed", err,
			"response_id", row.ID,
		)
	}

	answers := make([]entities.PollAnswer, 0, len(answerRows))
	for _, answerRow := range answerRows {
		answers = append(answers, answerRow.toEntity())
	}
	return row.toEntity(answers), true, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("poll_repo_append_outbox_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("poll_repo_append_outbox_insert_failed", create.Error,
			"outbox_id", row.OutboxID,
		)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return r.logError("poll_repo_append_outbox_load_existing_failed", err,
			"outbox_id", row.OutboxID,
		)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return r.logError("poll_repo_append_outbox_payload_mismatch", errOutboxPayloadMismatch,
			"outbox_id", row.OutboxID,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("poll_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("poll_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) loadQuestions(ctx context.Context, pollIDs []string) (map[string][]entities.PollQuestion, error) {
	if len(pollIDs) == 0 {
		return map[string][]entities.PollQuestion{}, nil
	}

	var questionRows []pollQuestionModel
	err := r.db.WithContext(ctx).
		Where("poll_id IN ?", pollIDs).
		Order("display_order ASC").
		Find(&questionRows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_load_questions_failed", err)
	}

	var optionRows []pollOptionModel
	err = r.db.WithContext(ctx).
		Where("poll_id IN ?", pollIDs).
		Order("display_order ASC").
		Find(&optionRows).
		Error
	if err != nil {
		return nil, r.logError("poll_repo_load_options_failed", err)
	}

	optionsByQuestion := make(map[string][]entities.PollOption, len(questionRows))
	for _, row := range optionRows {
		optionsByQuestion[row.QuestionID] = append(optionsByQuestion[row.QuestionID], row.toEntity())
	}

	questionsByPoll := make(map[string][]entities.PollQuestion, len(pollIDs))
	for _, row := range questionRows {
		questionsByPoll[row.PollID] = append(questionsByPoll[row.PollID], row.toEntity(optionsByQuestion[row.ID]))
	}
	return questionsByPoll, nil
}

func (r *Repository) toPollEntities(ctx context.Context, rows []pollModel) ([]entities.Poll, error) {
	pollIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		pollIDs = append(pollIDs, row.ID)
	}
	questionsByPoll, err := r.loadQuestions(ctx, pollIDs)
	if err != nil {
		return nil, err
	}
	items := make([]entities.Poll, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(questionsByPoll[row.ID]))
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "engagement/poll-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("poll repository operation failed", fields...)
	return err
}

var errOutboxPayloadMismatch = errors.New("outbox row exists with different payload")

type pollModel struct {
	ID                 string     `gorm:"column:id;primaryKey"`
	OwnerID            string     `gorm:"column:owner_id;index"`
	Title              string     `gorm:"column:title"`
	Description        string     `gorm:"column:description"`
	PollType           int        `gorm:"column:poll_type"`
	AllowMultipleVotes bool       `gorm:"column:allow_multiple_votes"`
	IsActive           bool       `gorm:"column:is_active"`
	EndDate            *time.Time `gorm:"column:end_date"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (pollModel) TableName() string {
	return "polls"
}

func (m pollModel) toEntity(questions []entities.PollQuestion) entities.Poll {
	return entities.Poll{
		PollID:             m.ID,
		OwnerID:            m.OwnerID,
		Title:              m.Title,
		Description:        m.Description,
		PollType:           entities.PollType(m.PollType),
		AllowMultipleVotes: m.AllowMultipleVotes,
		IsActive:           m.IsActive,
		EndDate:            normalizeOptionalTime(m.EndDate),
		Questions:          questions,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}
}

type pollQuestionModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	PollID       string `gorm:"column:poll_id;index"`
	Text         string `gorm:"column:text"`
	QuestionType int    `gorm:"column:question_type"`
	DisplayOrder int    `gorm:"column:display_order"`
	IsRequired   bool   `gorm:"column:is_required"`
}

func (pollQuestionModel) TableName() string {
	return "poll_questions"
}

func (m pollQuestionModel) toEntity(options []entities.PollOption) entities.PollQuestion {
	return entities.PollQuestion{
		QuestionID:   m.ID,
		Text:         m.Text,
		QuestionType: entities.QuestionType(m.QuestionType),
		Order:        m.DisplayOrder,
		IsRequired:   m.IsRequired,
		Options:      options,
	}
}

type pollOptionModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	QuestionID   string `gorm:"column:question_id;index"`
	PollID       string `gorm:"column:poll_id;index"`
	Text         string `gorm:"column:text"`
	DisplayOrder int    `gorm:"column:display_order"`
	VoteCount    int    `gorm:"column:vote_count"`
}

func (pollOptionModel) TableName() string {
	return "poll_options"
}

func (m pollOptionModel) toEntity() entities.PollOption {
	return entities.PollOption{
		OptionID:  m.ID,
		Text:      m.Text,
		Order:     m.DisplayOrder,
		VoteCount: m.VoteCount,
	}
}

type pollResponseModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	PollID        string    `gorm:"column:poll_id;index;uniqueIndex:idx_poll_responses_single_vote"`
	UserID        string    `gorm:"column:user_id"`
	IPAddress     string    `gorm:"column:ip_address"`
	UserAgent     string    `gorm:"column:user_agent"`
	RespondentKey string    `gorm:"column:respondent_key;index"`
	SingleVoteKey *string   `gorm:"column:single_vote_key;uniqueIndex:idx_poll_responses_single_vote"`
	SubmittedAt   time.Time `gorm:"column:submitted_at"`
}

func (pollResponseModel) TableName() string {
	return "poll_responses"
}

func (m pollResponseModel) toEntity(answers []entities.PollAnswer) entities.PollResponse {
	return entities.PollResponse{
		ResponseID:  m.ID,
		PollID:      m.PollID,
		UserID:      m.UserID,
		IPAddress:   m.IPAddress,
		UserAgent:   m.UserAgent,
		SubmittedAt: m.SubmittedAt.UTC(),
		Answers:     answers,
	}
}

type pollAnswerModel struct {
	ID         string  `gorm:"column:id;primaryKey"`
	ResponseID string  `gorm:"column:response_id;index"`
	PollID     string  `gorm:"column:poll_id;index"`
	QuestionID string  `gorm:"column:question_id;index"`
	OptionID   *string `gorm:"column:option_id"`
	TextValue  *string `gorm:"column:text_value"`
	Rating     *int    `gorm:"column:rating"`
	Position   int     `gorm:"column:position"`
}

func (pollAnswerModel) TableName() string {
	return "poll_answers"
}

func (m pollAnswerModel) toEntity() entities.PollAnswer {
	answer := entities.PollAnswer{
		AnswerID:   m.ID,
		ResponseID: m.ResponseID,
		QuestionID: m.QuestionID,
	}
	switch {
	case m.OptionID != nil:
		answer.Value = entities.OptionValue(*m.OptionID)
	case m.Rating != nil:
		answer.Value = entities.RatingValue(*m.Rating)
	default:
		text := ""
		if m.TextValue != nil {
			text = *m.TextValue
		}
		answer.Value = entities.TextValue(text)
	}
	return answer
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "poll_outbox"
}

func pollRowsFromEntity(poll entities.Poll) (pollModel, []pollQuestionModel, []pollOptionModel) {
	row := pollModel{
		ID:                 strings.TrimSpace(poll.PollID),
		OwnerID:            strings.TrimSpace(poll.OwnerID),
		Title:              strings.TrimSpace(poll.Title),
		Description:        strings.TrimSpace(poll.Description),
		PollType:           int(poll.PollType),
		AllowMultipleVotes: poll.AllowMultipleVotes,
		IsActive:           poll.IsActive,
		EndDate:            normalizeOptionalTime(poll.EndDate),
		CreatedAt:          poll.CreatedAt.UTC(),
		UpdatedAt:          poll.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}

	questionRows := make([]pollQuestionModel, 0, len(poll.Questions))
	var optionRows []pollOptionModel
	for _, question := range poll.Questions {
		questionRows = append(questionRows, pollQuestionModel{
			ID:           question.QuestionID,
			PollID:       row.ID,
			Text:         question.Text,
			QuestionType: int(question.QuestionType),
			DisplayOrder: question.Order,
			IsRequired:   question.IsRequired,
		})
		for _, option := range question.Options {
			optionRows = append(optionRows, pollOptionModel{
				ID:           option.OptionID,
				QuestionID:   question.QuestionID,
				PollID:       row.ID,
				Text:         option.Text,
				DisplayOrder: option.Order,
				VoteCount:    option.VoteCount,
			})
		}
	}
	return row, questionRows, optionRows
}

func responseRowsFromEntity(response entities.PollResponse, enforceSingle bool) (pollResponseModel, []pollAnswerModel) {
	row := pollResponseModel{
		ID:            strings.TrimSpace(response.ResponseID),
		PollID:        strings.TrimSpace(response.PollID),
		UserID:        strings.TrimSpace(response.UserID),
		IPAddress:     strings.TrimSpace(response.IPAddress),
		UserAgent:     strings.TrimSpace(response.UserAgent),
		RespondentKey: response.RespondentKey(),
		SubmittedAt:   response.SubmittedAt.UTC(),
	}
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = time.Now().UTC()
	}
	if enforceSingle && row.RespondentKey != "" {
		key := row.RespondentKey
		row.SingleVoteKey = &key
	}

	answerRows := make([]pollAnswerModel, 0, len(response.Answers))
	for position, answer := range response.Answers {
		answerRow := pollAnswerModel{
			ID:         answer.AnswerID,
			ResponseID: row.ID,
			PollID:     row.PollID,
			QuestionID: answer.QuestionID,
			Position:   position,
		}
		if optionID, ok := answer.Value.OptionID(); ok {
			answerRow.OptionID = &optionID
		}
		if text, ok := answer.Value.Text(); ok {
			answerRow.TextValue = &text
		}
		if rating, ok := answer.Value.Rating(); ok {
			answerRow.Rating = &rating
		}
		answerRows = append(answerRows, answerRow)
	}
	return row, answerRows
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PollRepository = (*Repository)(nil)
var _ ports.ResponseRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
