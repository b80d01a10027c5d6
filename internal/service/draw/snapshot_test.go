package draw

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"reviewspin-service/internal/domain/campaign"
	xerrors "reviewspin-service/internal/pkg/errors"
)

func testConfig(active bool) *campaign.Config {
	return &campaign.Config{
		Campaign: campaign.Campaign{
			ID:                   1,
			StoreID:              10,
			Name:                 "Review & Spin",
			Active:               active,
			PrizeClaimExpiryDays: 30,
		},
		Conditions: twoConditions(),
	}
}

func TestSnapshotLoader_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown campaign", func(t *testing.T) {
		loader := NewSnapshotLoader(&fakeCampaignStore{}, nil, zap.NewNop())
		_, err := loader.Load(ctx, 99)
		if !errors.Is(err, xerrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("inactive campaign", func(t *testing.T) {
		loader := NewSnapshotLoader(&fakeCampaignStore{cfg: testConfig(false)}, nil, zap.NewNop())
		_, err := loader.Load(ctx, 1)
		if !errors.Is(err, xerrors.ErrCampaignInactive) {
			t.Fatalf("expected ErrCampaignInactive, got %v", err)
		}
	})

	t.Run("campaign with no conditions and no prizes", func(t *testing.T) {
		cfg := testConfig(true)
		cfg.Conditions = nil
		loader := NewSnapshotLoader(&fakeCampaignStore{cfg: cfg}, nil, zap.NewNop())
		_, err := loader.Load(ctx, 1)
		if !errors.Is(err, xerrors.ErrCampaignNotConfigured) {
			t.Fatalf("expected ErrCampaignNotConfigured, got %v", err)
		}
	})

	t.Run("only in-stock prizes appear", func(t *testing.T) {
		prizes := threePrizes()
		prizes[1].Remaining = 0
		loader := NewSnapshotLoader(&fakeCampaignStore{cfg: testConfig(true), prizes: prizes}, nil, zap.NewNop())

		snap, err := loader.Load(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snap.Prizes) != 2 {
			t.Fatalf("expected 2 in-stock prizes, got %d", len(snap.Prizes))
		}
		for _, p := range snap.Prizes {
			if p.ID == 12 {
				t.Error("exhausted prize leaked into snapshot")
			}
		}
	})

	t.Run("game config decoded once per load", func(t *testing.T) {
		cfg := testConfig(true)
		cfg.GameID = 7
		cfg.GameType = campaign.GameTypeWheel
		cfg.GameConfig = json.RawMessage(`{"segments":[{"id":1,"label":"Free Coffee","prize_index":0}]}`)
		loader := NewSnapshotLoader(&fakeCampaignStore{cfg: cfg, prizes: threePrizes()}, nil, zap.NewNop())

		snap, err := loader.Load(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if snap.Game == nil {
			t.Fatal("expected a game on the snapshot")
		}
		wheel, ok := snap.Game.Config.(campaign.WheelConfig)
		if !ok {
			t.Fatalf("expected WheelConfig, got %T", snap.Game.Config)
		}
		if len(wheel.Segments) != 1 || wheel.Segments[0].Label != "Free Coffee" {
			t.Fatalf("unexpected decoded config %+v", wheel)
		}
	})
}

func TestSnapshotLoader_Cache(t *testing.T) {
	ctx := context.Background()

	store := &fakeCampaignStore{cfg: testConfig(true), prizes: threePrizes()}
	cache := newFakeConfigCache()
	loader := NewSnapshotLoader(store, cache, zap.NewNop())

	if _, err := loader.Load(ctx, 1); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := loader.Load(ctx, 1); err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if store.cfgCalls != 1 {
		t.Errorf("expected one database config read, got %d", store.cfgCalls)
	}

	t.Run("stock bypasses the cache", func(t *testing.T) {
		store.prizes[0].Remaining = 0
		snap, err := loader.Load(ctx, 1)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		for _, p := range snap.Prizes {
			if p.ID == 11 {
				t.Error("stale stock served from cache")
			}
		}
	})
}
