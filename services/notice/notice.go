package notice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"caseflow/models"

	"github.com/go-pdf/fpdf"
)

// Filename is the attachment name of every generated notice.
const Filename = "notice.pdf"

var ErrMissingSlots = errors.New("notice is missing required fields")

// NoticeData holds every variable slot of the legal notice. Nothing is
// defaulted; a blank required slot fails validation.
type NoticeData struct {
	CreditorName       string `json:"creditorName"`
	DebtorBusinessName string `json:"debtorBusinessName"`
	DoingBusinessAs    string `json:"doingBusinessAs"`
	MerchantName       string `json:"merchantName"`
	AddressLine1       string `json:"addressLine1"`
	AddressLine2       string `json:"addressLine2"`
	EIN                string `json:"ein"`
	DefaultAmount      string `json:"defaultAmount"`
	LienBalance        string `json:"lienBalance"`
	DefaultDate        string `json:"defaultDate"`
	NoticeDate         string `json:"noticeDate"`

	PayeeName     string `json:"payeeName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail"`
}

// PaymentDetails are the slots a case request does not carry.
type PaymentDetails struct {
	NoticeDate    string `json:"noticeDate"`
	PayeeName     string `json:"payeeName"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	RoutingNumber string `json:"routingNumber"`
	ContactPhone  string `json:"contactPhone"`
	ContactEmail  string `json:"contactEmail"`
}

// MissingSlotsError lists the blank required slots by JSON name.
type MissingSlotsError struct {
	Slots []string
}

func (e *MissingSlotsError) Error() string {
	return ErrMissingSlots.Error() + ": " + strings.Join(e.Slots, ", ")
}

func (e *MissingSlotsError) Unwrap() error { return ErrMissingSlots }

// FromCaseRequest fills the debtor slots from a stored request.
func FromCaseRequest(req *models.CaseRequest, p PaymentDetails) NoticeData {
	var cityLine []string
	if req.City != "" {
		cityLine = append(cityLine, req.City)
	}
	if st := strings.TrimSpace(req.State + " " + req.Zipcode); st != "" {
		cityLine = append(cityLine, st)
	}
	return NoticeData{
		CreditorName:       req.CreditorName,
		DebtorBusinessName: req.BusinessName,
		DoingBusinessAs:    req.DoingBusinessAs,
		MerchantName:       req.MerchantName,
		AddressLine1:       req.Address,
		AddressLine2:       strings.Join(cityLine, ", "),
		EIN:                req.EIN,
		DefaultAmount:      req.DefaultAmount,
		LienBalance:        req.LienBalance,
		DefaultDate:        req.DefaultDate,
		NoticeDate:         p.NoticeDate,
		PayeeName:          p.PayeeName,
		BankName:           p.BankName,
		AccountNumber:      p.AccountNumber,
		RoutingNumber:      p.RoutingNumber,
		ContactPhone:       p.ContactPhone,
		ContactEmail:       p.ContactEmail,
	}
}

// Validate reports every blank required slot. DoingBusinessAs, AddressLine2
// and LienBalance are optional.
func (d NoticeData) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"creditorName", d.CreditorName},
		{"debtorBusinessName", d.DebtorBusinessName},
		{"merchantName", d.MerchantName},
		{"addressLine1", d.AddressLine1},
		{"ein", d.EIN},
		{"defaultAmount", d.DefaultAmount},
		{"defaultDate", d.DefaultDate},
		{"noticeDate", d.NoticeDate},
		{"payeeName", d.PayeeName},
		{"bankName", d.BankName},
		{"accountNumber", d.AccountNumber},
		{"routingNumber", d.RoutingNumber},
		{"contactPhone", d.ContactPhone},
		{"contactEmail", d.ContactEmail},
	}
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingSlotsError{Slots: missing}
	}
	return nil
}

// Render validates d and writes the notice PDF to w.
func Render(w io.Writer, d NoticeData) error {
	if err := d.Validate(); err != nil {
		return err
	}

	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetCatalogSort(true)
	fixed := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	doc.SetCreationDate(fixed)
	doc.SetModificationDate(fixed)
	doc.SetTitle("Notice of Lien and Demand for Payment", true)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, "NOTICE OF LIEN AND DEMAND FOR PAYMENT", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr("Date: "+d.NoticeDate), "", 1, "R", false, 0, "")
	doc.Ln(2)

	debtor := d.DebtorBusinessName
	if d.DoingBusinessAs != "" {
		debtor += " d/b/a " + d.DoingBusinessAs
	}
	for _, line := range []string{debtor, "Attn: " + d.MerchantName, d.AddressLine1, d.AddressLine2, "EIN: " + d.EIN} {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	paragraphs := []string{
		fmt.Sprintf("PLEASE TAKE NOTICE that %s (the \"Creditor\") holds a perfected security interest in the receivables, "+
			"accounts and proceeds of %s (the \"Debtor\") pursuant to a written agreement and the UCC financing statement "+
			"filed in its favor.", d.CreditorName, debtor),
		fmt.Sprintf("The Debtor defaulted on its obligations on %s. As of the date of this notice the amount in default is %s.",
			d.DefaultDate, d.DefaultAmount),
		"You are hereby directed to remit all amounts now due or hereafter owing to the Debtor directly to the Creditor " +
			"using the payment instructions below until you receive a written release from the Creditor. Payment to any " +
			"other party will not discharge your obligation.",
	}
	if d.LienBalance != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("The outstanding lien balance is %s.", d.LienBalance))
	}
	for _, p := range paragraphs {
		doc.MultiCell(0, 6, tr(p), "", "J", false)
		doc.Ln(3)
	}

	doc.Ln(3)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, "Payment Instructions", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Payee", d.PayeeName},
		{"Bank", d.BankName},
		{"Account Number", d.AccountNumber},
		{"Routing Number", d.RoutingNumber},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(50, 8, row[0], "1", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, tr(row[1]), "1", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	doc.MultiCell(0, 6, tr(fmt.Sprintf("Questions regarding this notice may be directed to %s at %s or %s.",
		d.CreditorName, d.ContactPhone, d.ContactEmail)), "", "L", false)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render notice: %w", err)
	}
	return nil
}

// RenderBytes renders the notice into memory.
func RenderBytes(d NoticeData) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
