package bank

import (
	"strings"

	"caseflow/models"
)

// ParseCodes splits a comma-separated code list, trimming each entry and
// dropping empties. Duplicates are kept.
func ParseCodes(raw string) []string {
	codes := []string{}
	for _, part := range strings.Split(raw, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// codesFromInput merges the array and text forms of the payload.
func codesFromInput(input models.BankInput) []string {
	codes := []string{}
	for _, c := range input.Codes {
		codes = append(codes, ParseCodes(c)...)
	}
	return append(codes, ParseCodes(input.CodesText)...)
}

func applyInput(bank *models.BankAgencyCode, input models.BankInput) {
	bank.BankName = strings.TrimSpace(input.BankName)
	bank.PhoneNumber = input.PhoneNumber
	bank.Address = input.Address
	bank.Fax = input.Fax
	bank.Codes = codesFromInput(input)
}
