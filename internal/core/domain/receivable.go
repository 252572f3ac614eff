package domain

import "time"

// ReceivableStatus is the collection state of a receivable.
type ReceivableStatus string

const (
	ReceivableOpen    ReceivableStatus = "open"
	ReceivablePaid    ReceivableStatus = "paid"
	ReceivableOverdue ReceivableStatus = "overdue"
)

// Receivable is an account-receivable entry owed by a unit.
type Receivable struct {
	ID            string           `json:"id" bson:"_id,omitempty"`
	CondominiumID string           `json:"condominium_id" bson:"condominium_id"`
	UnitNumber    string           `json:"unit_number" bson:"unit_number"`
	Concept       string           `json:"concept" bson:"concept"`
	Amount        float64          `json:"amount" bson:"amount"`
	Currency      string           `json:"currency" bson:"currency"`
	Status        ReceivableStatus `json:"status" bson:"status"`
	DueDate       time.Time        `json:"due_date" bson:"due_date"`
	CreatedAt     time.Time        `json:"created_at" bson:"created_at"`
}
