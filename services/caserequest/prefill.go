package caserequest

import (
	"net/url"
	"strings"

	"caseflow/models"
)

// PrefillFromQuery decodes the analysis redirect parameters into an initial
// form state. Repeated additionalEntities values are joined with ", ".
func PrefillFromQuery(q url.Values) models.CaseRequestInput {
	in := models.CaseRequestInput{
		BusinessName:       q.Get("businessName"),
		EIN:                q.Get("ein"),
		MerchantName:       q.Get("merchantName"),
		SSN:                q.Get("ssn"),
		AdditionalEntities: strings.Join(q["additionalEntities"], ", "),
		RequestType:        models.RequestType(q.Get("requestType")),
		EINList:            SplitList(q["einList"]),
		SSNList:            SplitList(q["ssnList"]),
	}
	return in
}
