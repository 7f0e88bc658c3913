package animals

import (
	"time"

	"livestock-registry/internal/domain/species"
)

// Sex del animal. Vacío = sin registrar.
// @Enum male, female
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexUnset  Sex = ""
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnset:
		return true
	}
	return false
}

// Status del animal en el hato.
// @Enum active, sold, deceased
type Status string

const (
	StatusActive   Status = "active"
	StatusSold     Status = "sold"
	StatusDeceased Status = "deceased"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSold, StatusDeceased:
		return true
	}
	return false
}

// Animal es un animal registrado. Identifier es el arete/caravana visible en
// campo y es único; CustomAttributes va tipado y validado contra el esquema
// de la especie al escribir.
type Animal struct {
	ID         string
	Identifier string
	Name       string
	SpeciesID  string

	BirthDate *time.Time
	Sex       Sex
	Status    Status

	Image string // base64 o URL
	Notes string

	CustomAttributes map[string]species.AttributeValue

	CreatedAt time.Time
	UpdatedAt time.Time
}
