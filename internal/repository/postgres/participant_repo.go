// internal/repository/postgres/participant_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"reviewspin-service/internal/domain/participant"
	xerrors "reviewspin-service/internal/pkg/errors"
)

type ParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

const participantColumns = `
	id, campaign_id, email, name, has_played, play_count, played_at,
	completed_conditions, played_conditions, created_at, updated_at
`

// scanParticipant reads a participantColumns row. The bigint[] columns go
// through plain []int64 destinations: pgx serves arrays in binary format,
// which pq.Int64Array's Scanner cannot parse (it only handles the text
// form), so the pq type is only converted into after the scan.
func scanParticipant(row pgx.Row) (*participant.Participant, error) {
	var p participant.Participant
	err := row.Scan(
		&p.ID, &p.CampaignID, &p.Email, &p.Name, &p.HasPlayed, &p.PlayCount, &p.PlayedAt,
		(*[]int64)(&p.CompletedConditions), (*[]int64)(&p.PlayedConditions),
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByEmailAndCampaign retrieves the participation row for one (email,
// campaign) pair.
func (r *ParticipantRepository) FindByEmailAndCampaign(ctx context.Context, email string, campaignID int64) (*participant.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE email = $1 AND campaign_id = $2`

	p, err := scanParticipant(r.db.QueryRow(ctx, query, email, campaignID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	return p, nil
}

// CountPlayed returns the number of distinct participants who have played
// the campaign, used for the maxParticipants capacity check.
func (r *ParticipantRepository) CountPlayed(ctx context.Context, campaignID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM participants WHERE campaign_id = $1 AND has_played`

	var count int64
	if err := r.db.QueryRow(ctx, query, campaignID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// AddCompletedCondition marks a condition as completed, creating the
// participation row on first completion. The array union keeps the call
// idempotent.
func (r *ParticipantRepository) AddCompletedCondition(ctx context.Context, campaignID int64, email, name string, conditionID int64) (*participant.Participant, error) {
	query := `
		INSERT INTO participants (campaign_id, email, name, completed_conditions)
		VALUES ($1, $2, NULLIF($3, ''), ARRAY[$4]::bigint[])
		ON CONFLICT (email, campaign_id) DO UPDATE SET
			completed_conditions = CASE
				WHEN $4 = ANY (participants.completed_conditions) THEN participants.completed_conditions
				ELSE array_append(participants.completed_conditions, $4)
			END,
			name = COALESCE(participants.name, EXCLUDED.name),
			updated_at = NOW()
		RETURNING ` + participantColumns

	p, err := scanParticipant(r.db.QueryRow(ctx, query, campaignID, email, name, conditionID))
	if err != nil {
		return nil, fmt.Errorf("failed to record condition completion: %w", err)
	}

	return p, nil
}

// RecordPlay upserts the participation row for a play: first play creates
// the row with playCount 1, later plays increment it; the unlocking
// condition id joins the played set (union, so retries stay idempotent).
func (r *ParticipantRepository) RecordPlay(ctx context.Context, campaignID int64, email, name string, playedAt time.Time, unlockingConditionID *int64) (*participant.Participant, error) {
	played := pq.Int64Array{}
	if unlockingConditionID != nil {
		played = pq.Int64Array{*unlockingConditionID}
	}

	query := `
		INSERT INTO participants (campaign_id, email, name, has_played, play_count, played_at, played_conditions)
		VALUES ($1, $2, NULLIF($3, ''), TRUE, 1, $4, $5::bigint[])
		ON CONFLICT (email, campaign_id) DO UPDATE SET
			has_played = TRUE,
			play_count = participants.play_count + 1,
			played_at = EXCLUDED.played_at,
			name = COALESCE(participants.name, EXCLUDED.name),
			played_conditions = (
				SELECT COALESCE(array_agg(DISTINCT cid ORDER BY cid), '{}')
				FROM unnest(participants.played_conditions || EXCLUDED.played_conditions) AS cid
			),
			updated_at = NOW()
		RETURNING ` + participantColumns

	p, err := scanParticipant(r.db.QueryRow(ctx, query, campaignID, email, name, playedAt, played))
	if err != nil {
		return nil, fmt.Errorf("failed to record play: %w", err)
	}

	return p, nil
}
