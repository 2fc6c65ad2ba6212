package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"stockdash/internal/domain"
	"stockdash/internal/logger"
	"time"

	"github.com/shopspring/decimal"
)

var ErrCorruptState = errors.New("portfolio state is corrupt")

type HoldingsRepository interface {
	List(ctx context.Context) (domain.Holdings, error)
	Save(ctx context.Context, holdings domain.Holdings) error
}

type holdingsRepositoryHandler struct {
	Path string
}

func NewHoldingsRepository(path string) HoldingsRepository {
	return holdingsRepositoryHandler{Path: path}
}

// holdingRecord is the on-disk shape. Files written before cost basis was
// tracked have no invested field and may repeat a symbol.
type holdingRecord struct {
	Symbol      string           `json:"symbol"`
	CompanyName string           `json:"companyName"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *decimal.Decimal `json:"quantity"`
	Invested    *decimal.Decimal `json:"invested,omitempty"`
}

type holdingRecordOut struct {
	Symbol      string      `json:"symbol"`
	CompanyName string      `json:"companyName"`
	Price       json.Number `json:"price"`
	Quantity    int64       `json:"quantity"`
	Invested    json.Number `json:"invested"`
}

// List returns an empty collection when the file does not exist yet. A file
// that cannot be parsed is copied aside before ErrCorruptState is returned,
// so a later Save cannot destroy the only copy.
func (h holdingsRepositoryHandler) List(ctx context.Context) (domain.Holdings, error) {
	log := logger.FromContext(ctx)

	b, err := os.ReadFile(h.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Holdings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", h.Path, err)
	}
	if len(b) == 0 {
		return domain.Holdings{}, nil
	}

	records := []holdingRecord{}
	if err := json.Unmarshal(b, &records); err != nil {
		backup, created, werr := h.backUpCorrupt(b)
		switch {
		case werr != nil:
			log.Errorf("failed to back up corrupt portfolio file %s: %v", h.Path, werr)
		case created:
			log.Warnf("backed up corrupt portfolio file to %s", backup)
		default:
			log.Warnf("portfolio file %s is still corrupt, backup at %s", h.Path, backup)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, h.Path, err)
	}

	holdings, migrated := holdingsFromRecords(records)
	if migrated {
		log.Infof("migrated legacy portfolio records in %s", h.Path)
	}

	return holdings, nil
}

// backUpCorrupt copies b next to the portfolio file unless an identical
// backup already exists. It returns the path holding the copy.
func (h holdingsRepositoryHandler) backUpCorrupt(b []byte) (string, bool, error) {
	existing, err := filepath.Glob(h.Path + ".corrupt-*")
	if err != nil {
		return "", false, err
	}
	for _, path := range existing {
		if prev, err := os.ReadFile(path); err == nil && bytes.Equal(prev, b) {
			return path, false, nil
		}
	}

	base := fmt.Sprintf("%s.corrupt-%d", h.Path, time.Now().Unix())
	backup := base
	for i := 1; ; i++ {
		if _, err := os.Stat(backup); errors.Is(err, fs.ErrNotExist) {
			break
		}
		backup = fmt.Sprintf("%s-%d", base, i)
	}
	if err := os.WriteFile(backup, b, 0644); err != nil {
		return "", false, err
	}
	return backup, true, nil
}

func holdingsFromRecords(records []holdingRecord) (domain.Holdings, bool) {
	out := domain.Holdings{}
	migrated := false

	for _, r := range records {
		symbol := domain.NormalizeSymbol(r.Symbol)
		price := decimal.Zero
		if r.Price != nil {
			price = *r.Price
		}
		rawQuantity := decimal.Zero
		if r.Quantity != nil {
			rawQuantity = *r.Quantity
		}
		// fractional quantities keep the whole shares only
		quantity := rawQuantity.IntPart()
		if symbol == "" || quantity <= 0 {
			migrated = true
			continue
		}
		if !rawQuantity.IsInteger() {
			migrated = true
		}

		// a missing or negative cost basis is rebuilt from the last price
		invested := price.Mul(decimal.NewFromInt(quantity))
		if r.Invested != nil && !r.Invested.IsNegative() {
			invested = *r.Invested
			if !rawQuantity.IsInteger() {
				invested = invested.Mul(decimal.NewFromInt(quantity)).Div(rawQuantity)
			}
		} else {
			migrated = true
		}
		if invested.IsNegative() {
			invested = decimal.Zero
		}

		if i := out.IndexOf(symbol); i >= 0 {
			migrated = true
			out[i].Quantity += quantity
			out[i].Invested = out[i].Invested.Add(invested)
			if !price.IsZero() {
				out[i].Price = price
			}
			if r.CompanyName != "" {
				out[i].CompanyName = r.CompanyName
			}
			continue
		}

		out = append(out, domain.Holding{
			Symbol:      symbol,
			CompanyName: r.CompanyName,
			Price:       price,
			Quantity:    quantity,
			Invested:    invested,
		})
	}

	return out, migrated
}

// Save rewrites the whole file: write a temp file, sync, then rename over
// the destination.
func (h holdingsRepositoryHandler) Save(ctx context.Context, holdings domain.Holdings) error {
	records := []holdingRecordOut{}
	for _, holding := range holdings {
		records = append(records, holdingRecordOut{
			Symbol:      holding.Symbol,
			CompanyName: holding.CompanyName,
			Price:       json.Number(holding.Price.String()),
			Quantity:    holding.Quantity,
			Invested:    json.Number(holding.Invested.String()),
		})
	}

	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal holdings: %w", err)
	}

	if dir := filepath.Dir(h.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	tmpFile := h.Path + ".tmp"
	f, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create temp portfolio file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("failed to write temp portfolio file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp portfolio file: %w", err)
	}
	// close before rename, required on windows
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp portfolio file: %w", err)
	}

	if err := os.Rename(tmpFile, h.Path); err != nil {
		return fmt.Errorf("failed to replace portfolio file: %w", err)
	}

	return nil
}
