package domain

import "time"

// DomainRecord maps a sending domain to the Mailgun credential that
// authorizes it. A linked record (IsPrimary false) borrows the API key of the
// record referenced by PrimaryDomainID.
type DomainRecord struct {
	ID              int64     `json:"id" db:"id"`
	Domain          string    `json:"domain" db:"domain"`
	APIKey          string    `json:"api_key" db:"api_key"`
	IsPrimary       bool      `json:"is_primary" db:"is_primary"`
	PrimaryDomainID *int64    `json:"primary_domain_id" db:"primary_domain_id"`
	CreatedAt       time.Time `json:"-" db:"created_at"`
	UpdatedAt       time.Time `json:"-" db:"updated_at"`
}

// UpsertDomainRequest is the input of the add-domain operation.
type UpsertDomainRequest struct {
	Domain          string `validate:"required"`
	APIKey          string `validate:"required_if=IsPrimary true"`
	IsPrimary       bool
	PrimaryDomainID *int64 `validate:"required_if=IsPrimary false"`
}

// Record converts the request into the record to persist.
// A primary record never carries a link.
func (r *UpsertDomainRequest) Record() *DomainRecord {
	rec := &DomainRecord{
		Domain:    r.Domain,
		APIKey:    r.APIKey,
		IsPrimary: r.IsPrimary,
	}
	if !r.IsPrimary {
		rec.PrimaryDomainID = r.PrimaryDomainID
	}
	return rec
}

// DomainSummary is one entry of the get-domains listing.
type DomainSummary struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	APIKey          string `json:"api_key"`
	IsPrimary       bool   `json:"is_primary"`
	PrimaryDomainID *int64 `json:"primary_domain_id"`
}

// Summary returns the listing view of the record.
func (d *DomainRecord) Summary() DomainSummary {
	return DomainSummary{
		ID:              d.ID,
		Name:            d.Domain,
		APIKey:          d.APIKey,
		IsPrimary:       d.IsPrimary,
		PrimaryDomainID: d.PrimaryDomainID,
	}
}
