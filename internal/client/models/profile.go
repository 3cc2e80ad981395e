// Package models defines the client-side data models shared by the naijatax
// HTTP client, the session manager and the CLI.
package models

import (
	"slices"
	"time"
)

// AccountTier is the subscription level attached to a profile.
type AccountTier string

const (
	TierFree       AccountTier = "free"
	TierPro        AccountTier = "pro"
	TierPremium    AccountTier = "premium"
	TierEnterprise AccountTier = "enterprise"
)

// Valid reports whether t is one of the known tiers.
func (t AccountTier) Valid() bool {
	switch t {
	case TierFree, TierPro, TierPremium, TierEnterprise:
		return true
	}
	return false
}

// Paid reports whether t is any tier above free.
func (t AccountTier) Paid() bool {
	return t.Valid() && t != TierFree
}

// IncomeStream tags a source of taxable income.
type IncomeStream string

const (
	IncomeEmployment IncomeStream = "employment"
	IncomeBusiness   IncomeStream = "business"
	IncomeFreelance  IncomeStream = "freelance"
	IncomeRental     IncomeStream = "rental"
	IncomeInvestment IncomeStream = "investment"
	IncomeCrypto     IncomeStream = "crypto"
	IncomeOther      IncomeStream = "other"
)

// Profile is the current user as returned by GET /api/auth/me and
// PUT /api/profile/update. The server representation is authoritative: a
// Profile is always replaced as a whole, never merged field by field.
type Profile struct {
	Email         string      `json:"email"`
	FullName      string      `json:"full_name"`
	Phone         string      `json:"phone,omitempty"`
	EmailVerified bool        `json:"email_verified"`
	PhoneVerified bool        `json:"phone_verified"`
	AccountTier   AccountTier `json:"account_tier"`
	AccountStatus string      `json:"account_status,omitempty"`
	CreatedAt     *time.Time  `json:"created_at,omitempty"`
	LastLogin     *time.Time  `json:"last_login,omitempty"`

	AdminEnabled bool   `json:"admin_enabled"`
	AdminRole    string `json:"admin_role,omitempty"`

	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	MarketingEmails    bool `json:"marketing_emails"`

	AccountType      string         `json:"account_type,omitempty"`
	EmploymentStatus string         `json:"employment_status,omitempty"`
	IncomeStreams    []IncomeStream `json:"income_streams,omitempty"`
	TIN              string         `json:"tin,omitempty"`
	CompanyName      string         `json:"company_name,omitempty"`
	BusinessType     string         `json:"business_type,omitempty"`

	Permissions []string `json:"permissions,omitempty"`
}

// HasPermission reports whether name is listed in p.Permissions.
// A nil profile has no permissions.
func (p *Profile) HasPermission(name string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Permissions, name)
}

// Clone returns a deep copy so callers can read a profile without racing
// the session that owns it.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		c.CreatedAt = &t
	}
	if p.LastLogin != nil {
		t := *p.LastLogin
		c.LastLogin = &t
	}
	c.IncomeStreams = slices.Clone(p.IncomeStreams)
	c.Permissions = slices.Clone(p.Permissions)
	return &c
}

// ProfileUpdate is the body of PUT /api/profile/update. Nil fields are left
// out of the request.
type ProfileUpdate struct {
	FullName           *string         `json:"full_name,omitempty"`
	Phone              *string         `json:"phone,omitempty"`
	AccountType        *string         `json:"account_type,omitempty"`
	EmploymentStatus   *string         `json:"employment_status,omitempty"`
	IncomeStreams      *[]IncomeStream `json:"income_streams,omitempty"`
	TIN                *string         `json:"tin,omitempty"`
	CompanyName        *string         `json:"company_name,omitempty"`
	BusinessType       *string         `json:"business_type,omitempty"`
	EmailNotifications *bool           `json:"email_notifications,omitempty"`
	SMSNotifications   *bool           `json:"sms_notifications,omitempty"`
	MarketingEmails    *bool           `json:"marketing_emails,omitempty"`
}

// Empty reports whether u carries no fields at all.
func (u ProfileUpdate) Empty() bool {
	return u == ProfileUpdate{}
}
