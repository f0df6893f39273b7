package models

import "time"

// BankAgencyCode is a bank contact entry plus the literal codes that identify
// its documents in extracted PDF text.
type BankAgencyCode struct {
	ID          string    `bson:"id" json:"id"`
	BankName    string    `bson:"bankName" json:"bankName"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber"`
	Address     string    `bson:"address" json:"address"`
	Fax         string    `bson:"fax" json:"fax"`
	Codes       []string  `bson:"codes" json:"codes"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BankInput is the add/edit payload. Codes may arrive as an array or as a
// comma-separated string.
type BankInput struct {
	BankName    string   `json:"bankName" binding:"required"`
	PhoneNumber string   `json:"phoneNumber"`
	Address     string   `json:"address"`
	Fax         string   `json:"fax"`
	Codes       []string `json:"codes"`
	CodesText   string   `json:"codesText"`
}

// BankPattern is the snapshot of one bank's codes used during analysis.
type BankPattern struct {
	BankName string   `json:"bankName"`
	Codes    []string `json:"codes"`
}
