package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsageSummaryEligible(t *testing.T) {
	assert.True(t, UsageSummary{}.Eligible())
	assert.True(t, UsageSummary{Wins: 1}.Eligible())
	assert.False(t, UsageSummary{Wins: 2}.Eligible())
	assert.False(t, UsageSummary{Losses: 1}.Eligible())
	assert.False(t, UsageSummary{Wins: 1, Losses: 1}.Eligible())
}

func TestSummarizeUsage(t *testing.T) {
	entries := []*TeamUsage{
		{TeamID: 10, UsageType: UsageWinner},
		{TeamID: 10, UsageType: UsageWinner},
		{TeamID: 11, UsageType: UsageLoser},
		{TeamID: 12, UsageType: UsageWinner},
	}

	summary := SummarizeUsage(entries)
	assert.Equal(t, UsageSummary{Wins: 2}, summary[10])
	assert.Equal(t, UsageSummary{Losses: 1}, summary[11])
	assert.Equal(t, UsageSummary{Wins: 1}, summary[12])
	assert.Equal(t, UsageSummary{}, summary[99])
}

func TestUsageFromOutcome(t *testing.T) {
	usage, ok := UsageFromOutcome(PickOutcomeWon)
	assert.True(t, ok)
	assert.Equal(t, UsageWinner, usage)

	usage, ok = UsageFromOutcome(PickOutcomeLost)
	assert.True(t, ok)
	assert.Equal(t, UsageLoser, usage)

	// Pushes write no ledger entry
	_, ok = UsageFromOutcome(PickOutcomePush)
	assert.False(t, ok)
}
