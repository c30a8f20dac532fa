// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// EngagementTier classifies a campaign's support level. It drives the
// call-to-action copy and the social-proof line.
type EngagementTier string

const (
	TierFirst       EngagementTier = "first"
	TierEarly       EngagementTier = "early"
	TierEstablished EngagementTier = "established"
)

// EngagementState is the derived output of one reducer evaluation. It is
// built fresh from live inputs on every scroll or data signal and never
// stored independently.
type EngagementState struct {
	CampaignID uuid.UUID `json:"campaign_id"`

	// EndorsementCount is the campaign total; RecentCount is the share
	// within the trailing seven days and never exceeds the total.
	EndorsementCount int `json:"endorsement_count"`
	RecentCount      int `json:"recent_count"`

	FormActive    bool `json:"form_active"`
	StickyVisible bool `json:"sticky_visible"`

	Tier EngagementTier `json:"tier"`

	// Momentum surfaces the recent-activity line for established
	// campaigns with enough total support.
	Momentum bool `json:"momentum"`
}
