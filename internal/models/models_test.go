package models

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTier_Valid(t *testing.T) {
	assert.True(t, TierBasic.Valid())
	assert.True(t, TierMiddle.Valid())
	assert.True(t, TierCustom.Valid())
	assert.False(t, Tier("platinum").Valid())
	assert.False(t, Tier("").Valid())
}

func TestTier_PriceCents(t *testing.T) {
	assert.Equal(t, int64(2900), TierBasic.PriceCents())
	assert.Equal(t, int64(9900), TierMiddle.PriceCents())
	assert.Equal(t, int64(49900), TierCustom.PriceCents())
	assert.Equal(t, int64(0), Tier("platinum").PriceCents())
}

func TestTier_PriceDollars(t *testing.T) {
	assert.Equal(t, int64(29), TierBasic.PriceDollars())
	assert.Equal(t, int64(99), TierMiddle.PriceDollars())
	assert.Equal(t, int64(499), TierCustom.PriceDollars())
}

func TestRequest_SelectedTopic(t *testing.T) {
	r := &Request{Description: "Selected Topic: Market Entry"}
	assert.Equal(t, "Market Entry", r.SelectedTopic())

	r.Description = "Market Entry"
	assert.Equal(t, "Market Entry", r.SelectedTopic())

	r.Description = "Selected Topic:  Pricing  "
	assert.Equal(t, "Pricing", r.SelectedTopic())

	r.Description = ""
	assert.Equal(t, "", r.SelectedTopic())
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusProcessing.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.True(t, StatusRejected.Valid())
	assert.False(t, Status("archived").Valid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusRejected, true},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusRejected, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusRejected, false},
		{StatusRejected, StatusCompleted, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequest_ResponseText(t *testing.T) {
	r := &Request{}
	assert.Equal(t, "", r.ResponseText())
	assert.False(t, r.HasResponse())

	r.Response = sql.NullString{String: "Focus on retention.", Valid: true}
	assert.Equal(t, "Focus on retention.", r.ResponseText())
	assert.True(t, r.HasResponse())

	r.Response = sql.NullString{String: "", Valid: true}
	assert.False(t, r.HasResponse())
}
