package draw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"reviewspin-service/internal/domain/campaign"
	"reviewspin-service/internal/domain/participant"
	"reviewspin-service/internal/domain/winner"
	xerrors "reviewspin-service/internal/pkg/errors"
)

// In-memory fakes for the store contracts, mirroring the SQL upsert
// semantics closely enough to exercise the engine's invariants.

func key(email string, campaignID int64) string {
	return fmt.Sprintf("%s|%d", email, campaignID)
}

type fakeParticipantStore struct {
	mu     sync.Mutex
	rows   map[string]*participant.Participant
	nextID int64
}

func newFakeParticipantStore() *fakeParticipantStore {
	return &fakeParticipantStore{rows: map[string]*participant.Participant{}}
}

func (f *fakeParticipantStore) FindByEmailAndCampaign(_ context.Context, email string, campaignID int64) (*participant.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row, ok := f.rows[key(email, campaignID)]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeParticipantStore) CountPlayed(_ context.Context, campaignID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, row := range f.rows {
		if row.CampaignID == campaignID && row.HasPlayed {
			count++
		}
	}
	return count, nil
}

func (f *fakeParticipantStore) AddCompletedCondition(_ context.Context, campaignID int64, email, name string, conditionID int64) (*participant.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row := f.getOrCreate(email, campaignID, name)
	if !containsInt64(row.CompletedConditions, conditionID) {
		row.CompletedConditions = append(row.CompletedConditions, conditionID)
	}
	cp := *row
	return &cp, nil
}

func (f *fakeParticipantStore) RecordPlay(_ context.Context, campaignID int64, email, name string, playedAt time.Time, unlockingConditionID *int64) (*participant.Participant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	row := f.getOrCreate(email, campaignID, name)
	row.HasPlayed = true
	row.PlayCount++
	row.PlayedAt.Time = playedAt
	row.PlayedAt.Valid = true
	if unlockingConditionID != nil && !containsInt64(row.PlayedConditions, *unlockingConditionID) {
		row.PlayedConditions = append(row.PlayedConditions, *unlockingConditionID)
	}
	cp := *row
	return &cp, nil
}

func (f *fakeParticipantStore) getOrCreate(email string, campaignID int64, name string) *participant.Participant {
	k := key(email, campaignID)
	row, ok := f.rows[k]
	if !ok {
		f.nextID++
		row = &participant.Participant{
			ID:                  f.nextID,
			CampaignID:          campaignID,
			Email:               email,
			CompletedConditions: pq.Int64Array{},
			PlayedConditions:    pq.Int64Array{},
		}
		if name != "" {
			row.Name.String = name
			row.Name.Valid = true
		}
		f.rows[k] = row
	}
	return row
}

func containsInt64(ids pq.Int64Array, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type dedupKey struct {
	email         string
	storeID       int64
	conditionType campaign.ConditionType
}

type fakeStorePlayedGameStore struct {
	mu   sync.Mutex
	rows map[dedupKey]*participant.StorePlayedGame
}

func newFakeStorePlayedGameStore() *fakeStorePlayedGameStore {
	return &fakeStorePlayedGameStore{rows: map[dedupKey]*participant.StorePlayedGame{}}
}

func (f *fakeStorePlayedGameStore) Upsert(_ context.Context, email string, storeID int64, conditionType campaign.ConditionType, campaignID int64, playedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rows[dedupKey{email, storeID, conditionType}] = &participant.StorePlayedGame{
		Email:         email,
		StoreID:       storeID,
		ConditionType: conditionType,
		CampaignID:    campaignID,
		PlayedAt:      playedAt,
	}
	return nil
}

func (f *fakeStorePlayedGameStore) PlayedConditionTypes(_ context.Context, email string, storeID int64) ([]campaign.ConditionType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := []campaign.ConditionType{}
	for k := range f.rows {
		if k.email == email && k.storeID == storeID {
			types = append(types, k.conditionType)
		}
	}
	return types, nil
}

func (f *fakeStorePlayedGameStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// fakeCommitter enforces the conditional-decrement discipline: at most
// `stock` wins ever commit per prize, regardless of interleaving.
type fakeCommitter struct {
	mu         sync.Mutex
	stock      map[int64]int
	winners    []*winner.Winner
	duplicates int // claim code collisions to simulate before accepting
	failWith   error
}

func newFakeCommitter(stock map[int64]int) *fakeCommitter {
	return &fakeCommitter{stock: stock}
}

func (f *fakeCommitter) CommitWin(_ context.Context, w *winner.Winner) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}
	if f.duplicates > 0 {
		f.duplicates--
		return xerrors.ErrDuplicateEntry
	}
	if f.stock[w.PrizeID] <= 0 {
		return xerrors.ErrPrizeExhausted
	}
	f.stock[w.PrizeID]--
	f.winners = append(f.winners, w)
	return nil
}

func (f *fakeCommitter) winnerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.winners)
}

type fakeCampaignStore struct {
	cfg      *campaign.Config
	prizes   []campaign.Prize
	cfgCalls int
}

func (f *fakeCampaignStore) GetConfig(_ context.Context, campaignID int64) (*campaign.Config, error) {
	f.cfgCalls++
	if f.cfg == nil || f.cfg.Campaign.ID != campaignID {
		return nil, xerrors.ErrNotFound
	}
	return f.cfg, nil
}

func (f *fakeCampaignStore) GetInStockPrizes(_ context.Context, _ int64) ([]campaign.Prize, error) {
	in := []campaign.Prize{}
	for _, p := range f.prizes {
		if p.InStock() {
			in = append(in, p)
		}
	}
	return in, nil
}

type fakeConfigCache struct {
	mu      sync.Mutex
	entries map[int64]*campaign.Config
}

func newFakeConfigCache() *fakeConfigCache {
	return &fakeConfigCache{entries: map[int64]*campaign.Config{}}
}

func (f *fakeConfigCache) Get(_ context.Context, campaignID int64) (*campaign.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries[campaignID], nil
}

func (f *fakeConfigCache) Set(_ context.Context, cfg *campaign.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cfg.Campaign.ID] = cfg
	return nil
}
