package domain

import "time"

// Resident is a person registered against a unit.
type Resident struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Unit is a single dwelling inside a condominium.
type Unit struct {
	Number    string     `json:"number" bson:"number"`
	Floor     int        `json:"floor" bson:"floor"`
	Residents []Resident `json:"residents,omitempty" bson:"residents,omitempty"`
}

// Condominium is the registry aggregate root.
type Condominium struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Address   string    `json:"address" bson:"address"`
	City      string    `json:"city" bson:"city"`
	Units     []Unit    `json:"units,omitempty" bson:"units,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
