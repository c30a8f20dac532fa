// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engagement derives the call-to-action signals for a campaign
// page: the support tier, the momentum flag, and the sticky CTA
// visibility. Evaluate is a pure reducer over live inputs; cheap,
// idempotent, and safe to run on every scroll signal. Event plumbing
// (throttling) lives in Throttle, not in the reducer.
package engagement

import (
	"github.com/google/uuid"

	"brandpress/internal/models"
)

const (
	// ScrollThreshold is the scroll offset in pixels below which the
	// sticky CTA never shows.
	ScrollThreshold = 400.0

	// anchorArrivalRatio marks the endorsement section as "arrived"
	// once its top edge rises above this share of the viewport height.
	anchorArrivalRatio = 0.8

	// earlyTierMax is the last endorsement count in the early tier.
	earlyTierMax = 9

	// MomentumMinimum is the total count required before recent
	// activity surfaces as momentum.
	MomentumMinimum = 25
)

// AnchorGeometry is the bounding position of the tracked endorsement
// section, in viewport coordinates.
type AnchorGeometry struct {
	Top    float64
	Height float64
}

// Input carries everything one evaluation needs. Anchor is nil when the
// endorsement section is missing or not yet mounted.
type Input struct {
	CampaignID       uuid.UUID
	EndorsementCount int
	RecentCount      int

	ScrollOffset   float64
	ViewportHeight float64
	Anchor         *AnchorGeometry

	FormActive bool
}

// Evaluate reduces the inputs to a fresh EngagementState. Counts are
// clamped to their invariants (total ≥ 0, recent ≤ total) rather than
// rejected, consistent with graceful degradation everywhere else.
func Evaluate(in Input) models.EngagementState {
	total := in.EndorsementCount
	if total < 0 {
		total = 0
	}
	recent := in.RecentCount
	if recent < 0 {
		recent = 0
	}
	if recent > total {
		recent = total
	}

	tier := tierFor(total)

	return models.EngagementState{
		CampaignID:       in.CampaignID,
		EndorsementCount: total,
		RecentCount:      recent,
		FormActive:       in.FormActive,
		StickyVisible:    stickyVisible(in),
		Tier:             tier,
		Momentum:         tier == models.TierEstablished && recent > 0 && total >= MomentumMinimum,
	}
}

// tierFor maps an endorsement count to its tier.
func tierFor(count int) models.EngagementTier {
	switch {
	case count <= 0:
		return models.TierFirst
	case count <= earlyTierMax:
		return models.TierEarly
	default:
		return models.TierEstablished
	}
}

// stickyVisible applies the visibility contract: scroll past the
// threshold, endorsement section not yet arrived, and form focus
// overriding both. A missing anchor suppresses visibility; absence of
// the signal is "condition not met", never a fault.
func stickyVisible(in Input) bool {
	if in.FormActive {
		return false
	}
	if in.ScrollOffset <= ScrollThreshold {
		return false
	}
	if in.Anchor == nil {
		return false
	}
	return in.Anchor.Top >= in.ViewportHeight*anchorArrivalRatio
}
