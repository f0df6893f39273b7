package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"caseflow/models"
	"caseflow/utils"

	"go.uber.org/zap"
)

var ErrSheetNotConfigured = errors.New("bank sheet URL is not configured")

// sheetRow is one spreadsheet row as served by the JSON feed. Column headers
// become keys; codes is a comma-separated cell.
type sheetRow struct {
	BankName    string `json:"bankName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Fax         string `json:"fax"`
	Codes       string `json:"codes"`
}

func (s *DefaultBankService) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (s *DefaultBankService) fetchSheet(ctx context.Context) ([]sheetRow, error) {
	if s.SheetURL == "" {
		return nil, ErrSheetNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SheetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bank sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bank sheet returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []sheetRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode bank sheet: %w", err)
	}
	return rows, nil
}

// ImportFromSheet upserts each feed row by bank name. Rows without a bank
// name are skipped.
func (s *DefaultBankService) ImportFromSheet(ctx context.Context) (*ImportSummary, error) {
	logger := utils.GetLogger()

	rows, err := s.fetchSheet(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Banks: []string{}}
	// Rows written before a failure still reach the next analysis.
	defer func() {
		if summary.Imported > 0 {
			s.invalidatePatterns(ctx)
		}
	}()
	for _, row := range rows {
		bank := &models.BankAgencyCode{}
		applyInput(bank, models.BankInput{
			BankName:    row.BankName,
			PhoneNumber: row.PhoneNumber,
			Address:     row.Address,
			Fax:         row.Fax,
			CodesText:   row.Codes,
		})
		if bank.BankName == "" {
			summary.Skipped++
			continue
		}
		if err := s.Repo.UpsertByName(ctx, bank); err != nil {
			return summary, fmt.Errorf("failed to import bank %q: %w", bank.BankName, err)
		}
		summary.Imported++
		summary.Banks = append(summary.Banks, bank.BankName)
	}

	logger.Info("Bank sheet imported",
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}
