package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"caseflow/models"
)

// ErrMalformedAIResponse is returned when the reply has no decodable ```json block.
var ErrMalformedAIResponse = errors.New("could not read the extracted fields from the AI response")

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ParseExtraction decodes the first fenced json block of a model reply.
func ParseExtraction(text string) (models.ExtractedFields, error) {
	var fields models.ExtractedFields
	m := fencedJSON.FindStringSubmatch(text)
	if m == nil {
		return fields, fmt.Errorf("%w: no json block", ErrMalformedAIResponse)
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &fields); err != nil {
		return fields, fmt.Errorf("%w: %v", ErrMalformedAIResponse, err)
	}
	return fields, nil
}

// BuildRedirectURL encodes the fields as query parameters on the create-form path.
func BuildRedirectURL(base string, f models.ExtractedFields) string {
	q := url.Values{}
	q.Set("businessName", f.BusinessName)
	q.Set("ein", f.EIN)
	q.Set("merchantName", f.MerchantName)
	q.Set("ssn", f.SSNLast4)
	q.Set("additionalEntities", strings.Join(f.AdditionalEntities, ", "))

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode()
}
