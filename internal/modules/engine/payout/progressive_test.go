package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinesMultiplier(t *testing.T) {
	// Three safe reveals with three mines: 25/22 * 24/21 * 23/20 * 0.95.
	expected := (25.0 / 22.0) * (24.0 / 21.0) * (23.0 / 20.0) * 0.95
	assert.InDelta(t, expected, MinesMultiplier(3, 3), 1e-9)

	// One reveal never pays below the retention-scaled fair odds.
	assert.InDelta(t, (25.0/22.0)*0.95, MinesMultiplier(1, 3), 1e-9)

	// Zero reveals has nothing banked.
	assert.Equal(t, 0.0, MinesMultiplier(0, 3))
}

func TestMinesMultiplierMonotonicity(t *testing.T) {
	for mines := range MinesCounts {
		prev := 0.0
		for revealed := 1; revealed <= MinesGridSize-mines; revealed++ {
			m := MinesMultiplier(revealed, mines)
			assert.Greater(t, m, prev, "mines=%d revealed=%d", mines, revealed)
			prev = m
		}
	}
}

func TestMinesMultiplierMoreMinesPaysMore(t *testing.T) {
	assert.Greater(t, MinesMultiplier(3, 10), MinesMultiplier(3, 5))
	assert.Greater(t, MinesMultiplier(3, 5), MinesMultiplier(3, 3))
}

func TestValidateMinesCount(t *testing.T) {
	for _, mines := range []int{3, 5, 10} {
		require.NoError(t, ValidateMinesCount(mines))
	}
	assert.Error(t, ValidateMinesCount(0))
	assert.Error(t, ValidateMinesCount(4))
	assert.Error(t, ValidateMinesCount(24))
}

func TestTowerMultiplierTables(t *testing.T) {
	for tier, table := range TowerMultipliers {
		require.Len(t, table, TowerLevels, "tier %s", tier)
		prev := 1.0
		for i, m := range table {
			assert.Greater(t, m, prev, "tier %s level %d", tier, i+1)
			prev = m
		}
	}
}

func TestTowerMultiplier(t *testing.T) {
	m, err := TowerMultiplier("medium", 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.90, m, 0.0001)

	_, err = TowerMultiplier("medium", 0)
	assert.Error(t, err)
	_, err = TowerMultiplier("medium", TowerLevels+1)
	assert.Error(t, err)
	_, err = TowerMultiplier("impossible", 1)
	assert.Error(t, err)
}

func TestRoadMultiplierTables(t *testing.T) {
	for tier, table := range RoadMultipliers {
		require.Len(t, table, RoadStages, "tier %s", tier)
		prev := 1.0
		for i, m := range table {
			assert.Greater(t, m, prev, "tier %s stage %d", tier, i+1)
			prev = m
		}
	}
}

func TestRoadTiersCoverSurvival(t *testing.T) {
	// Every multiplier table has a matching survival probability and the
	// riskier tier always survives less.
	for tier := range RoadMultipliers {
		_, ok := RoadSurvival[tier]
		assert.True(t, ok, "tier %s has no survival entry", tier)
	}
	assert.Greater(t, RoadSurvival["easy"], RoadSurvival["medium"])
	assert.Greater(t, RoadSurvival["medium"], RoadSurvival["hard"])
	assert.Greater(t, RoadSurvival["hard"], RoadSurvival["daredevil"])
}

func TestValidateTiers(t *testing.T) {
	require.NoError(t, ValidateTowerTier("easy"))
	require.NoError(t, ValidateRoadTier("daredevil"))
	assert.Error(t, ValidateTowerTier("daredevil"))
	assert.Error(t, ValidateRoadTier(""))
}
