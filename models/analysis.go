package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// BankMatch lists the codes of one bank found on a page.
type BankMatch struct {
	BankName     string   `json:"bankName"`
	MatchedCodes []string `json:"matchedCodes"`
}

// PageResult is the analysis outcome for a single page. Matches is empty, not
// nil, when nothing on the page matched.
type PageResult struct {
	Page    int         `json:"page"`
	Matches []BankMatch `json:"matches"`
}

// AnalysisReport is the per-page pattern report for one document.
type AnalysisReport struct {
	FileID   string       `json:"fileId,omitempty"`
	FileName string       `json:"fileName,omitempty"`
	Pages    []PageResult `json:"pages"`
}

// ExtractedFields is the JSON object the model is asked to return.
type ExtractedFields struct {
	BusinessName       string     `json:"Business Name"`
	EIN                string     `json:"EIN"`
	MerchantName       string     `json:"Merchant's Name"`
	SSNLast4           string     `json:"SSN last 4"`
	AdditionalEntities EntityList `json:"Additional Entities"`
}

// ExtractionResult pairs the extracted fields with the prefilled form location.
type ExtractionResult struct {
	Fields      ExtractedFields `json:"fields"`
	RedirectURL string          `json:"redirectUrl"`
}

// EntityList decodes either a JSON array of names or a single comma-separated
// value. Numbers and booleans are kept as their literal text.
type EntityList []string

func (l *EntityList) UnmarshalJSON(b []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err == nil {
		out := EntityList{}
		for _, item := range items {
			if v := strings.TrimSpace(scalarText(item)); v != "" {
				out = append(out, v)
			}
		}
		*l = out
		return nil
	}
	out := EntityList{}
	for _, part := range strings.Split(scalarText(b), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

// UnmarshalJSON accepts any JSON value for each key. The model is free to
// answer "EIN": 123456789 or "SSN last 4": 1234.
func (f *ExtractedFields) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	// Any well-formed JSON is accepted; a value that is not an object carries
	// no fields.
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		*f = ExtractedFields{}
		return nil
	}
	*f = ExtractedFields{
		BusinessName: scalarText(raw["Business Name"]),
		EIN:          scalarText(raw["EIN"]),
		MerchantName: scalarText(raw["Merchant's Name"]),
		SSNLast4:     scalarText(raw["SSN last 4"]),
	}
	if v, ok := raw["Additional Entities"]; ok {
		if err := f.AdditionalEntities.UnmarshalJSON(v); err != nil {
			return err
		}
	}
	return nil
}

// scalarText renders a JSON value as plain text: strings unquoted, numbers
// and booleans verbatim, null as empty, anything else as compact JSON.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
