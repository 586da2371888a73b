package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fairval/pkg/core/valuation"
)

// ValuationVault caches computed valuation results on behalf of the
// engine's callers. The engine itself is stateless; per the caching
// contract, entries are keyed by the full input tuple (snapshot,
// assumption set, weights, proxies, margin) so a changed input can never
// serve a stale result. Hybrid storage: Postgres/JSONB primary,
// file-system fallback when no pool is configured.
type ValuationVault struct {
	pool    *pgxpool.Pool
	fileDir string
}

// NewValuationVault creates a vault. With a nil pool and empty dir it
// defaults to a local .cache directory.
func NewValuationVault(pool *pgxpool.Pool, dir string) *ValuationVault {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "valuations")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			dir = "" // degrade to no-op file cache
		}
	}
	return &ValuationVault{pool: pool, fileDir: dir}
}

// VaultEntry wraps a stored result with its cache identity.
type VaultEntry struct {
	ID          string                     `json:"id"`
	Symbol      string                     `json:"symbol"`
	Fingerprint string                     `json:"fingerprint"`
	Result      *valuation.ValuationResult `json:"result"`
	ComputedAt  time.Time                  `json:"computed_at"`
}

// Fingerprint derives the deterministic cache key component from every
// input that can change the result: the snapshot itself (prices move
// between requests for the same symbol), the assumption set, the model
// weights, the proxy ratios, and the margin-of-safety threshold. Nil
// proxies and a zero margin are canonicalized to their effective defaults
// before hashing, so spelling the default out yields the same key as
// omitting it. JSON field order over a struct is stable, so equal inputs
// always hash equally.
func Fingerprint(snap valuation.FinancialSnapshot, as valuation.AssumptionSet, w valuation.ModelWeights, proxies *valuation.ProxyConfig, marginOfSafety float64) string {
	p := valuation.DefaultProxies()
	if proxies != nil {
		p = *proxies
	}
	if marginOfSafety <= 0 {
		marginOfSafety = valuation.DefaultMarginOfSafety
	}
	payload, _ := json.Marshal(struct {
		S valuation.FinancialSnapshot `json:"s"`
		A valuation.AssumptionSet     `json:"a"`
		W valuation.ModelWeights      `json:"w"`
		P valuation.ProxyConfig       `json:"p"`
		M float64                     `json:"m"`
	}{snap, as, w, p, marginOfSafety})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached result, (nil, nil) on a miss.
func (v *ValuationVault) Get(ctx context.Context, symbol, fingerprint string) (*valuation.ValuationResult, error) {
	if v.pool != nil {
		query := `
			SELECT result
			FROM valuation_results
			WHERE symbol = $1 AND fingerprint = $2
			LIMIT 1
		`
		var resultJSON []byte
		err := v.pool.QueryRow(ctx, query, symbol, fingerprint).Scan(&resultJSON)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // cache miss
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read cached valuation: %w", err)
		}
		var res valuation.ValuationResult
		if err := json.Unmarshal(resultJSON, &res); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached valuation: %w", err)
		}
		return &res, nil
	}

	if v.fileDir != "" {
		return v.loadFromFile(v.entryPath(symbol, fingerprint))
	}
	return nil, nil
}

// Save stores a result under (symbol, fingerprint).
func (v *ValuationVault) Save(ctx context.Context, symbol, fingerprint string, res *valuation.ValuationResult) error {
	resultJSON, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal valuation result: %w", err)
	}

	if v.pool != nil {
		query := `
			INSERT INTO valuation_results (id, symbol, fingerprint, result, computed_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (symbol, fingerprint)
			DO UPDATE SET
				result = EXCLUDED.result,
				computed_at = EXCLUDED.computed_at
		`
		_, err = v.pool.Exec(ctx, query, uuid.NewString(), symbol, fingerprint, resultJSON, time.Now())
		if err != nil {
			return fmt.Errorf("failed to save valuation to db: %w", err)
		}
		return nil
	}

	if v.fileDir != "" {
		entry := VaultEntry{
			ID:          uuid.NewString(),
			Symbol:      symbol,
			Fingerprint: fingerprint,
			Result:      res,
			ComputedAt:  time.Now(),
		}
		fileBytes, _ := json.MarshalIndent(entry, "", "  ")
		if err := os.WriteFile(v.entryPath(symbol, fingerprint), fileBytes, 0644); err != nil {
			return fmt.Errorf("failed to save valuation to file cache: %w", err)
		}
	}
	return nil
}

// Exists reports whether a result is cached without decoding it.
func (v *ValuationVault) Exists(ctx context.Context, symbol, fingerprint string) bool {
	if v.pool != nil {
		query := `SELECT 1 FROM valuation_results WHERE symbol = $1 AND fingerprint = $2 LIMIT 1`
		var one int
		return v.pool.QueryRow(ctx, query, symbol, fingerprint).Scan(&one) == nil
	}
	if v.fileDir != "" {
		_, err := os.Stat(v.entryPath(symbol, fingerprint))
		return err == nil
	}
	return false
}

func (v *ValuationVault) entryPath(symbol, fingerprint string) string {
	// Fingerprint is hex; the short prefix keeps names readable.
	return filepath.Join(v.fileDir, fmt.Sprintf("%s_%s.json", symbol, fingerprint[:16]))
}

func (v *ValuationVault) loadFromFile(path string) (*valuation.ValuationResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault entry %s: %w", path, err)
	}
	var entry VaultEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("corrupt vault entry %s: %w", path, err)
	}
	return entry.Result, nil
}
