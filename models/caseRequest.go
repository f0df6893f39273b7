// File: models/caseRequest.go
package models

import "time"

// RequestType discriminates which document categories a case request collects.
type RequestType string

const (
	RequestLien        RequestType = "Lien"
	RequestGarnishment RequestType = "Garnishment"
	RequestRelease     RequestType = "Release"
)

// Valid reports whether t is one of the selectable request types.
func (t RequestType) Valid() bool {
	switch t {
	case RequestLien, RequestGarnishment, RequestRelease:
		return true
	}
	return false
}

// FileCategory names one of the attachment arrays on a case request.
type FileCategory string

const (
	CategoryUCC              FileCategory = "uccFiles"
	CategoryAgreement        FileCategory = "agreementFiles"
	CategoryBankStatements   FileCategory = "bankStatementsFiles"
	CategorySummonsComplaint FileCategory = "summonsAndComplaintFiles"
	CategoryJudgment         FileCategory = "judgmentFiles"
	CategoryUCCRelease       FileCategory = "uccReleaseFiles"
	CategoryTransactionProof FileCategory = "transactionProofFiles"
)

// AllFileCategories lists every attachment category in form order.
var AllFileCategories = []FileCategory{
	CategoryUCC,
	CategoryAgreement,
	CategoryBankStatements,
	CategorySummonsComplaint,
	CategoryJudgment,
	CategoryUCCRelease,
	CategoryTransactionProof,
}

// Valid reports whether c names one of the attachment arrays.
func (c FileCategory) Valid() bool {
	for _, known := range AllFileCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoriesFor returns the upload sections shown for a request type.
func CategoriesFor(t RequestType) []FileCategory {
	switch t {
	case RequestLien:
		return []FileCategory{CategoryUCC, CategoryAgreement, CategoryBankStatements, CategoryTransactionProof}
	case RequestGarnishment:
		return []FileCategory{CategorySummonsComplaint, CategoryJudgment, CategoryAgreement}
	case RequestRelease:
		return []FileCategory{CategoryUCCRelease}
	}
	return nil
}

// FileRef points at a StoredFile attached to a case request.
type FileRef struct {
	FileID string `bson:"fileId" json:"fileId"`
	Name   string `bson:"name" json:"name"`
	URL    string `bson:"url" json:"url"`
}

// CaseRequest is a lien/garnishment/release workflow record.
type CaseRequest struct {
	ID                 string      `bson:"id" json:"id"`
	RequesterEmail     string      `bson:"requesterEmail" json:"requesterEmail"`
	CreditorName       string      `bson:"creditorName" json:"creditorName"`
	MerchantName       string      `bson:"merchantName" json:"merchantName"`
	EIN                string      `bson:"ein" json:"ein"`
	SSN                string      `bson:"ssn" json:"ssn"`
	BusinessName       string      `bson:"businessName" json:"businessName"`
	DoingBusinessAs    string      `bson:"doingBusinessAs" json:"doingBusinessAs"`
	RequestType        RequestType `bson:"requestType" json:"requestType"`
	DefaultAmount      string      `bson:"defaultAmount" json:"defaultAmount"`
	LienBalance        string      `bson:"lienBalance" json:"lienBalance"`
	AdditionalEntities string      `bson:"additionalEntities" json:"additionalEntities"`
	DefaultDate        string      `bson:"defaultDate" json:"defaultDate"`
	Address            string      `bson:"address" json:"address"`
	State              string      `bson:"state" json:"state"`
	City               string      `bson:"city" json:"city"`
	Zipcode            string      `bson:"zipcode" json:"zipcode"`
	EmailAddress       string      `bson:"emailAddress" json:"emailAddress"`
	PhoneNumber        string      `bson:"phoneNumber" json:"phoneNumber"`
	EINList            []string    `bson:"einList" json:"einList"`
	SSNList            []string    `bson:"ssnList" json:"ssnList"`

	UCCFiles                 []FileRef `bson:"uccFiles" json:"uccFiles"`
	AgreementFiles           []FileRef `bson:"agreementFiles" json:"agreementFiles"`
	BankStatementsFiles      []FileRef `bson:"bankStatementsFiles" json:"bankStatementsFiles"`
	SummonsAndComplaintFiles []FileRef `bson:"summonsAndComplaintFiles" json:"summonsAndComplaintFiles"`
	JudgmentFiles            []FileRef `bson:"judgmentFiles" json:"judgmentFiles"`
	UCCReleaseFiles          []FileRef `bson:"uccReleaseFiles" json:"uccReleaseFiles"`
	TransactionProofFiles    []FileRef `bson:"transactionProofFiles" json:"transactionProofFiles"`

	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Files returns a pointer to the attachment array for a category.
func (r *CaseRequest) Files(c FileCategory) *[]FileRef {
	switch c {
	case CategoryUCC:
		return &r.UCCFiles
	case CategoryAgreement:
		return &r.AgreementFiles
	case CategoryBankStatements:
		return &r.BankStatementsFiles
	case CategorySummonsComplaint:
		return &r.SummonsAndComplaintFiles
	case CategoryJudgment:
		return &r.JudgmentFiles
	case CategoryUCCRelease:
		return &r.UCCReleaseFiles
	case CategoryTransactionProof:
		return &r.TransactionProofFiles
	}
	return nil
}

// Normalize replaces nil slices with empty ones so responses never carry null arrays.
func (r *CaseRequest) Normalize() {
	for _, c := range AllFileCategories {
		if f := r.Files(c); *f == nil {
			*f = []FileRef{}
		}
	}
	if r.EINList == nil {
		r.EINList = []string{}
	}
	if r.SSNList == nil {
		r.SSNList = []string{}
	}
}

// AllFileIDs collects the stored-file ids referenced by every category.
func (r *CaseRequest) AllFileIDs() []string {
	var ids []string
	for _, c := range AllFileCategories {
		for _, ref := range *r.Files(c) {
			ids = append(ids, ref.FileID)
		}
	}
	return ids
}

// CaseRequestInput is the flat form state submitted on create and update.
type CaseRequestInput struct {
	RequesterEmail     string      `form:"requesterEmail" json:"requesterEmail"`
	CreditorName       string      `form:"creditorName" json:"creditorName"`
	MerchantName       string      `form:"merchantName" json:"merchantName"`
	EIN                string      `form:"ein" json:"ein"`
	SSN                string      `form:"ssn" json:"ssn"`
	BusinessName       string      `form:"businessName" json:"businessName"`
	DoingBusinessAs    string      `form:"doingBusinessAs" json:"doingBusinessAs"`
	RequestType        RequestType `form:"requestType" json:"requestType"`
	DefaultAmount      string      `form:"defaultAmount" json:"defaultAmount"`
	LienBalance        string      `form:"lienBalance" json:"lienBalance"`
	AdditionalEntities string      `form:"additionalEntities" json:"additionalEntities"`
	DefaultDate        string      `form:"defaultDate" json:"defaultDate"`
	Address            string      `form:"address" json:"address"`
	State              string      `form:"state" json:"state"`
	City               string      `form:"city" json:"city"`
	Zipcode            string      `form:"zipcode" json:"zipcode"`
	EmailAddress       string      `form:"emailAddress" json:"emailAddress"`
	PhoneNumber        string      `form:"phoneNumber" json:"phoneNumber"`
	EINList            []string    `form:"einList" json:"einList"`
	SSNList            []string    `form:"ssnList" json:"ssnList"`
}

// Apply overwrites every tracked field of r with the input values.
func (in CaseRequestInput) Apply(r *CaseRequest) {
	r.RequesterEmail = in.RequesterEmail
	r.CreditorName = in.CreditorName
	r.MerchantName = in.MerchantName
	r.EIN = in.EIN
	r.SSN = in.SSN
	r.BusinessName = in.BusinessName
	r.DoingBusinessAs = in.DoingBusinessAs
	r.RequestType = in.RequestType
	r.DefaultAmount = in.DefaultAmount
	r.LienBalance = in.LienBalance
	r.AdditionalEntities = in.AdditionalEntities
	r.DefaultDate = in.DefaultDate
	r.Address = in.Address
	r.State = in.State
	r.City = in.City
	r.Zipcode = in.Zipcode
	r.EmailAddress = in.EmailAddress
	r.PhoneNumber = in.PhoneNumber
	r.EINList = in.EINList
	r.SSNList = in.SSNList
}
