// internal/model/customer.go
package model

type Customer struct {
    ID               int    `db:"id" json:"id"`
    LastName         string `db:"last_name" json:"last_name"`
    FirstName        string `db:"first_name" json:"first_name"`
    Email            string `db:"email" json:"email"`
    Phone            string `db:"phone" json:"phone"`
    BirthDate        string `db:"birth_date" json:"birth_date"`
    Address          string `db:"address" json:"address"`
    MarketingConsent int    `db:"marketing_consent" json:"marketing_consent"` // 0 or 1
}
