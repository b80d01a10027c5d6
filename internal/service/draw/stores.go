// internal/service/draw/stores.go
package draw

import (
	"context"
	"time"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/participant"
	"reviewspin-service/internal/domain/winner"
)

// The draw engine talks to the durable store through these narrow contracts.
// The postgres repositories implement them; tests use in-memory fakes.

type CampaignStore interface {
	GetConfig(ctx context.Context, campaignID int64) (*campaign.Config, error)
	GetInStockPrizes(ctx context.Context, campaignID int64) ([]campaign.Prize, error)
}

type ParticipantStore interface {
	FindByEmailAndCampaign(ctx context.Context, email string, campaignID int64) (*participant.Participant, error)
	CountPlayed(ctx context.Context, campaignID int64) (int64, error)
	AddCompletedCondition(ctx context.Context, campaignID int64, email, name string, conditionID int64) (*participant.Participant, error)
	RecordPlay(ctx context.Context, campaignID int64, email, name string, playedAt time.Time, unlockingConditionID *int64) (*participant.Participant, error)
}

type StorePlayedGameStore interface {
	Upsert(ctx context.Context, email string, storeID int64, conditionType campaign.ConditionType, campaignID int64, playedAt time.Time) error
	PlayedConditionTypes(ctx context.Context, email string, storeID int64) ([]campaign.ConditionType, error)
}

// WinCommitter persists a winning draw: the prize stock decrement and the
// winner/claim row are committed in one transaction. Implementations return
// xerrors.ErrPrizeExhausted when the conditional decrement affects no rows
// and xerrors.ErrDuplicateEntry on a claim code collision.
type WinCommitter interface {
	CommitWin(ctx context.Context, w *winner.Winner) error
}

type WinnerStore interface {
	ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]winner.Winner, error)
}

// ConfigCache caches the configuration half of a snapshot. Get returns
// (nil, nil) on a miss.
type ConfigCache interface {
	Get(ctx context.Context, campaignID int64) (*campaign.Config, error)
	Set(ctx context.Context, cfg *campaign.Config) error
}

// WinPublisher fans a winning draw out to live listeners (the store's winner
// feed). Implementations must not block the draw path.
type WinPublisher interface {
	PublishWin(event WinEvent)
}

// WinEvent is the payload pushed to a store's winner feed.
type WinEvent struct {
	StoreID     int64     `json:"store_id"`
	CampaignID  int64     `json:"campaign_id"`
	PrizeName   string    `json:"prize_name"`
	MaskedEmail string    `json:"masked_email"`
	WonAt       time.Time `json:"won_at"`
}
