package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairval/pkg/core/valuation"
)

func sampleResult(t *testing.T) *valuation.ValuationResult {
	t.Helper()
	snap := valuation.FinancialSnapshot{
		Symbol:            "VNM",
		CurrentPrice:      65_000,
		SharesOutstanding: 2_000_000_000,
		EPS:               4_200,
		BookValuePerShare: 17_500,
		NetIncome:         8_400_000_000_000,
	}
	res, err := valuation.Compute(snap, valuation.AssumptionSet{
		RevenueGrowth:   0.07,
		TerminalGrowth:  0.03,
		RequiredReturn:  0.12,
		WACC:            0.10,
		TaxRate:         0.20,
		ProjectionYears: 5,
		PayoutRatio:     0.50,
		ROE:             0.20,
	}, valuation.EqualWeights())
	require.NoError(t, err)
	return res
}

func TestVaultFileRoundTrip(t *testing.T) {
	vault := NewValuationVault(nil, t.TempDir())
	ctx := context.Background()

	res := sampleResult(t)
	fp := Fingerprint(valuation.FinancialSnapshot{Symbol: "VNM", CurrentPrice: 65_000},
		valuation.AssumptionSet{RevenueGrowth: 0.07}, valuation.EqualWeights(), nil, 0)

	// Miss before save.
	got, err := vault.Get(ctx, "VNM", fp)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, vault.Exists(ctx, "VNM", fp))

	require.NoError(t, vault.Save(ctx, "VNM", fp, res))
	assert.True(t, vault.Exists(ctx, "VNM", fp))

	got, err = vault.Get(ctx, "VNM", fp)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, res.BlendedPrice, got.BlendedPrice)
	assert.Equal(t, res.Recommendation, got.Recommendation)
	assert.Equal(t, res.FCFE.ShareValue, got.FCFE.ShareValue)
}

func TestFingerprintStability(t *testing.T) {
	snap := valuation.FinancialSnapshot{
		Symbol:            "HPG",
		CurrentPrice:      80_000,
		SharesOutstanding: 1_000_000_000,
		EPS:               5_000,
		BookValuePerShare: 40_000,
		NetIncome:         5_000_000_000_000,
	}
	as := valuation.AssumptionSet{RevenueGrowth: 0.08, TerminalGrowth: 0.03, RequiredReturn: 0.12, WACC: 0.105, TaxRate: 0.2, ProjectionYears: 5, PayoutRatio: 0.4, ROE: 0.15}
	w := valuation.EqualWeights()

	base := Fingerprint(snap, as, w, nil, 0)
	assert.Equal(t, base, Fingerprint(snap, as, w, nil, 0), "equal inputs must hash equally")

	// Any changed input produces a different key; the cache can never
	// serve a stale result for tweaked inputs.
	snap2 := snap
	snap2.CurrentPrice = 48_000
	assert.NotEqual(t, base, Fingerprint(snap2, as, w, nil, 0), "a moved market price must miss")

	as2 := as
	as2.WACC = 0.11
	assert.NotEqual(t, base, Fingerprint(snap, as2, w, nil, 0))

	w2 := w
	w2.FCFF = 0
	assert.NotEqual(t, base, Fingerprint(snap, as, w2, nil, 0))

	p := valuation.DefaultProxies()
	p.DebtToEquity = 0.5
	assert.NotEqual(t, base, Fingerprint(snap, as, w, &p, 0), "changed proxies must miss")

	assert.NotEqual(t, base, Fingerprint(snap, as, w, nil, 0.05), "changed margin must miss")

	// Defaults spelled out hash like defaults omitted.
	def := valuation.DefaultProxies()
	assert.Equal(t, base, Fingerprint(snap, as, w, &def, valuation.DefaultMarginOfSafety))
}

func TestVaultDistinctSymbols(t *testing.T) {
	vault := NewValuationVault(nil, t.TempDir())
	ctx := context.Background()

	res := sampleResult(t)
	fp := Fingerprint(valuation.FinancialSnapshot{Symbol: "VNM"}, valuation.AssumptionSet{}, valuation.EqualWeights(), nil, 0)
	require.NoError(t, vault.Save(ctx, "VNM", fp, res))

	got, err := vault.Get(ctx, "HPG", fp)
	require.NoError(t, err)
	assert.Nil(t, got, "other symbols must miss")
}

func TestVaultGetReportsCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	vault := NewValuationVault(nil, dir)
	ctx := context.Background()

	fp := Fingerprint(valuation.FinancialSnapshot{Symbol: "VNM"}, valuation.AssumptionSet{}, valuation.EqualWeights(), nil, 0)
	path := filepath.Join(dir, fmt.Sprintf("VNM_%s.json", fp[:16]))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	// A broken entry is a real error, not a silent miss; callers decide
	// whether to recompute.
	got, err := vault.Get(ctx, "VNM", fp)
	assert.Error(t, err)
	assert.Nil(t, got)
}
