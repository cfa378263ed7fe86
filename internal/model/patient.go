package model

import "strings"

type PatientStatus string

const (
	PatientStatusActive    PatientStatus = "Active"
	PatientStatusCOPD      PatientStatus = "COPD"
	PatientStatusDischarge PatientStatus = "Discharge"
)

// Thai name prefixes. The prefix selects the sex branch of the predicted
// PEFR formula: นาย and ด.ช. are male, everything else female.
const (
	PrefixMr   = "นาย"
	PrefixMrs  = "นาง"
	PrefixMiss = "นางสาว"
	PrefixBoy  = "ด.ช."
	PrefixGirl = "ด.ญ."
)

// hnLength is the canonical zero-padded width of a hospital number.
const hnLength = 7

type Patient struct {
	HN            string `json:"hn"`
	Prefix        string `json:"prefix"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DOB           string `json:"dob"`
	PredictedPEFR string `json:"predicted_pefr"`
	Height        string `json:"height"`
	Status        string `json:"status"`
	PublicToken   string `json:"public_token,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// NormalizeHN returns the canonical form of a hospital number: trimmed and
// zero-padded to seven digits. Idempotent.
func NormalizeHN(hn string) string {
	hn = strings.TrimSpace(hn)
	for len(hn) < hnLength {
		hn = "0" + hn
	}
	return hn
}

// HNKey returns the lenient comparison key for a hospital number: trimmed
// with leading zeros stripped, so "123" and "0000123" collide.
func HNKey(hn string) string {
	hn = strings.TrimSpace(hn)
	trimmed := strings.TrimLeft(hn, "0")
	if trimmed == "" && hn != "" {
		return "0"
	}
	return trimmed
}

// SameHN reports whether two hospital numbers identify the same patient.
func SameHN(a, b string) bool {
	return HNKey(a) == HNKey(b)
}

type CreatePatientRequest struct {
	HN        string `json:"hn" binding:"required,hn"`
	Prefix    string `json:"prefix" binding:"required,oneof=นาย นาง นางสาว ด.ช. ด.ญ."`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DOB       string `json:"dob" binding:"required,datetime=2006-01-02"`
	Height    string `json:"height" binding:"required,numeric"`
	Phone     string `json:"phone"`
	Status    string `json:"status" binding:"omitempty,oneof=Active COPD Discharge"`
}

type UpdatePatientStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Active COPD Discharge"`
}

type PatientFilters struct {
	Status string
	Query  string
}
