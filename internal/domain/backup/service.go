// Package backup exporta e importa el contenido completo del registro en un
// único documento JSON. La importación hace upsert: especies por nombre y
// animales por identificador; los registros asociados se crean siempre.
package backup

import (
	"context"
	"fmt"
	"time"

	"livestock-registry/internal/domain/animals"
	"livestock-registry/internal/domain/feedings"
	"livestock-registry/internal/domain/reproduction"
	"livestock-registry/internal/domain/species"
	"livestock-registry/internal/domain/vaccinations"
	"livestock-registry/internal/platform/dates"
)

const DumpVersion = 1

type Dump struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`

	Species      []SpeciesDump      `json:"species"`
	Animals      []AnimalDump       `json:"animals"`
	Vaccinations []VaccinationDump  `json:"vaccinations"`
	Feedings     []FeedingDump      `json:"feedings"`
	Reproduction []ReproductionDump `json:"reproduction"`
}

type AttributeDump struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required bool   `json:"required"`
}

type SpeciesDump struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Icon          string          `json:"icon,omitempty"`
	Attributes    []AttributeDump `json:"attributes"`
	HeatCycleDays int             `json:"heat_cycle_days,omitempty"`
	GestationDays int             `json:"gestation_days,omitempty"`
}

type AnimalDump struct {
	ID               string                             `json:"id"`
	Identifier       string                             `json:"identifier"`
	Name             string                             `json:"name"`
	SpeciesID        string                             `json:"species_id"`
	BirthDate        string                             `json:"birth_date,omitempty"`
	Sex              string                             `json:"sex,omitempty"`
	Status           string                             `json:"status"`
	Image            string                             `json:"image,omitempty"`
	Notes            string                             `json:"notes,omitempty"`
	CustomAttributes map[string]species.AttributeValue `json:"custom_attributes,omitempty"`
}

type VaccinationDump struct {
	ID              string `json:"id"`
	AnimalID        string `json:"animal_id"`
	VaccineName     string `json:"vaccine_name"`
	ApplicationDate string `json:"application_date"`
	NextDoseDate    string `json:"next_dose_date,omitempty"`
	Veterinarian    string `json:"veterinarian,omitempty"`
	Batch           string `json:"batch,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type FeedingDump struct {
	ID       string  `json:"id"`
	AnimalID string  `json:"animal_id"`
	FoodType string  `json:"food_type"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes,omitempty"`
}

type ReproductionDump struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	AnimalID   string `json:"animal_id"`
	Date       string `json:"date"`
	Intensity  string `json:"intensity,omitempty"`
	Method     string `json:"method,omitempty"`
	SireCode   string `json:"sire_code,omitempty"`
	Result     string `json:"result,omitempty"`
	Technician string `json:"technician,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ImportSummary resume qué se creó, qué ya existía y qué se omitió.
type ImportSummary struct {
	SpeciesCreated  int `json:"species_created"`
	SpeciesExisting int `json:"species_existing"`
	AnimalsCreated  int `json:"animals_created"`
	AnimalsExisting int `json:"animals_existing"`
	Vaccinations    int `json:"vaccinations"`
	Feedings        int `json:"feedings"`
	Reproduction    int `json:"reproduction"`
	// Skipped cuenta registros completos no importados; los valores de
	// atributos sueltos que no se pudieron mapear van aparte.
	Skipped           int `json:"skipped"`
	AttributesSkipped int `json:"attributes_skipped"`
}

type Service struct {
	species      *species.Service
	animals      *animals.Service
	vaccinations *vaccinations.Service
	feedings     *feedings.Service
	reproduction *reproduction.Service

	now func() time.Time
}

func NewService(sp *species.Service, an *animals.Service, va *vaccinations.Service, fe *feedings.Service, re *reproduction.Service) *Service {
	return &Service{
		species:      sp,
		animals:      an,
		vaccinations: va,
		feedings:     fe,
		reproduction: re,
		now:          time.Now,
	}
}

func (s *Service) Export(ctx context.Context) (Dump, error) {
	dump := Dump{Version: DumpVersion, ExportedAt: s.now().UTC()}

	speciesList, err := s.species.List(ctx)
	if err != nil {
		return Dump{}, err
	}
	dump.Species = make([]SpeciesDump, 0, len(speciesList))
	for _, sp := range speciesList {
		attrs := make([]AttributeDump, 0, len(sp.Attributes))
		for _, d := range sp.Attributes {
			attrs = append(attrs, AttributeDump{
				ID:       d.ID,
				Name:     d.Name,
				Type:     string(d.Type),
				Options:  d.Options,
				Required: d.Required,
			})
		}
		dump.Species = append(dump.Species, SpeciesDump{
			ID:            sp.ID,
			Name:          sp.Name,
			Description:   sp.Description,
			Icon:          sp.Icon,
			Attributes:    attrs,
			HeatCycleDays: sp.HeatCycleDays,
			GestationDays: sp.GestationDays,
		})
	}

	animalList, err := s.animals.List(ctx, animals.ListFilter{})
	if err != nil {
		return Dump{}, err
	}
	dump.Animals = make([]AnimalDump, 0, len(animalList))
	for _, a := range animalList {
		dump.Animals = append(dump.Animals, AnimalDump{
			ID:               a.ID,
			Identifier:       a.Identifier,
			Name:             a.Name,
			SpeciesID:        a.SpeciesID,
			BirthDate:        dates.FormatPtr(a.BirthDate),
			Sex:              string(a.Sex),
			Status:           string(a.Status),
			Image:            a.Image,
			Notes:            a.Notes,
			CustomAttributes: a.CustomAttributes,
		})
	}

	vaccList, err := s.vaccinations.List(ctx, vaccinations.ListFilter{})
	if err != nil {
		return Dump{}, err
	}
	dump.Vaccinations = make([]VaccinationDump, 0, len(vaccList))
	for _, v := range vaccList {
		dump.Vaccinations = append(dump.Vaccinations, VaccinationDump{
			ID:              v.ID,
			AnimalID:        v.AnimalID,
			VaccineName:     v.VaccineName,
			ApplicationDate: dates.Format(v.ApplicationDate),
			NextDoseDate:    dates.FormatPtr(v.NextDoseDate),
			Veterinarian:    v.Veterinarian,
			Batch:           v.Batch,
			Notes:           v.Notes,
		})
	}

	feedList, err := s.feedings.List(ctx, feedings.ListFilter{})
	if err != nil {
		return Dump{}, err
	}
	dump.Feedings = make([]FeedingDump, 0, len(feedList))
	for _, f := range feedList {
		dump.Feedings = append(dump.Feedings, FeedingDump{
			ID:       f.ID,
			AnimalID: f.AnimalID,
			FoodType: f.FoodType,
			Quantity: f.Quantity,
			Unit:     string(f.Unit),
			Date:     dates.Format(f.Date),
			Notes:    f.Notes,
		})
	}

	reproList, err := s.reproduction.List(ctx, reproduction.ListFilter{})
	if err != nil {
		return Dump{}, err
	}
	dump.Reproduction = make([]ReproductionDump, 0, len(reproList))
	for _, r := range reproList {
		dump.Reproduction = append(dump.Reproduction, ReproductionDump{
			ID:         r.ID,
			Type:       string(r.Type),
			AnimalID:   r.AnimalID,
			Date:       dates.Format(r.Date),
			Intensity:  string(r.Intensity),
			Method:     string(r.Method),
			SireCode:   r.SireCode,
			Result:     string(r.Result),
			Technician: r.Technician,
			Notes:      r.Notes,
		})
	}

	return dump, nil
}

// Import vuelca un dump sobre los datos actuales. Los IDs del dump nunca se
// reutilizan: todo se re-mapea contra lo que ya existe o lo recién creado.
func (s *Service) Import(ctx context.Context, dump Dump) (ImportSummary, error) {
	if dump.Version != DumpVersion {
		return ImportSummary{}, fmt.Errorf("%w: unsupported dump version %d",
			species.ErrInvalidInput, dump.Version)
	}

	var sum ImportSummary

	// species por nombre
	speciesIDs := make(map[string]string)         // id del dump -> id real
	attrNames := make(map[string]string)          // id de atributo del dump -> nombre
	attrIDs := make(map[string]map[string]string) // id real de especie -> nombre -> id real de atributo

	for _, sd := range dump.Species {
		for _, ad := range sd.Attributes {
			attrNames[ad.ID] = ad.Name
		}

		existing, err := s.species.GetByName(ctx, sd.Name)
		if err == nil {
			sum.SpeciesExisting++
			speciesIDs[sd.ID] = existing.ID
			attrIDs[existing.ID] = attrIDsByName(existing)
			continue
		}

		in := species.CreateInput{
			Name:          sd.Name,
			Description:   sd.Description,
			Icon:          sd.Icon,
			HeatCycleDays: sd.HeatCycleDays,
			GestationDays: sd.GestationDays,
		}
		for _, ad := range sd.Attributes {
			in.Attributes = append(in.Attributes, species.AttributeInput{
				Name:     ad.Name,
				Type:     species.AttributeType(ad.Type),
				Options:  ad.Options,
				Required: ad.Required,
			})
		}
		created, err := s.species.Create(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("import species %q: %w", sd.Name, err)
		}
		sum.SpeciesCreated++
		speciesIDs[sd.ID] = created.ID
		attrIDs[created.ID] = attrIDsByName(created)
	}

	// animales por identificador
	animalIDs := make(map[string]string) // id del dump -> id real
	for _, ad := range dump.Animals {
		existing, err := s.animals.GetByIdentifier(ctx, ad.Identifier)
		if err == nil {
			sum.AnimalsExisting++
			animalIDs[ad.ID] = existing.ID
			continue
		}

		speciesID, ok := speciesIDs[ad.SpeciesID]
		if !ok {
			sum.Skipped++
			continue
		}

		in := animals.CreateInput{
			Identifier: ad.Identifier,
			Name:       ad.Name,
			SpeciesID:  speciesID,
			Sex:        animals.Sex(ad.Sex),
			Status:     animals.Status(ad.Status),
			Image:      ad.Image,
			Notes:      ad.Notes,
		}
		if ad.BirthDate != "" {
			t, err := dates.Parse(ad.BirthDate)
			if err != nil {
				return sum, fmt.Errorf("import animal %q: %w", ad.Identifier, err)
			}
			in.BirthDate = &t
		}
		if len(ad.CustomAttributes) > 0 {
			remapped := make(map[string]species.AttributeValue, len(ad.CustomAttributes))
			byName := attrIDs[speciesID]
			for oldID, val := range ad.CustomAttributes {
				newID, ok := byName[attrNames[oldID]]
				if !ok {
					sum.AttributesSkipped++
					continue
				}
				remapped[newID] = val
			}
			in.CustomAttributes = remapped
		}

		created, err := s.animals.Create(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("import animal %q: %w", ad.Identifier, err)
		}
		sum.AnimalsCreated++
		animalIDs[ad.ID] = created.ID
	}

	for _, vd := range dump.Vaccinations {
		animalID, ok := animalIDs[vd.AnimalID]
		if !ok {
			sum.Skipped++
			continue
		}
		applied, err := dates.Parse(vd.ApplicationDate)
		if err != nil {
			return sum, fmt.Errorf("import vaccination %q: %w", vd.VaccineName, err)
		}
		in := vaccinations.CreateInput{
			AnimalID:        animalID,
			VaccineName:     vd.VaccineName,
			ApplicationDate: applied,
			Veterinarian:    vd.Veterinarian,
			Batch:           vd.Batch,
			Notes:           vd.Notes,
		}
		if vd.NextDoseDate != "" {
			t, err := dates.Parse(vd.NextDoseDate)
			if err != nil {
				return sum, fmt.Errorf("import vaccination %q: %w", vd.VaccineName, err)
			}
			in.NextDoseDate = &t
		}
		if _, err := s.vaccinations.Create(ctx, in); err != nil {
			return sum, fmt.Errorf("import vaccination %q: %w", vd.VaccineName, err)
		}
		sum.Vaccinations++
	}

	for _, fd := range dump.Feedings {
		animalID, ok := animalIDs[fd.AnimalID]
		if !ok {
			sum.Skipped++
			continue
		}
		day, err := dates.Parse(fd.Date)
		if err != nil {
			return sum, fmt.Errorf("import feeding %q: %w", fd.FoodType, err)
		}
		if _, err := s.feedings.Create(ctx, feedings.CreateInput{
			AnimalID: animalID,
			FoodType: fd.FoodType,
			Quantity: fd.Quantity,
			Unit:     feedings.Unit(fd.Unit),
			Date:     day,
			Notes:    fd.Notes,
		}); err != nil {
			return sum, fmt.Errorf("import feeding %q: %w", fd.FoodType, err)
		}
		sum.Feedings++
	}

	for _, rd := range dump.Reproduction {
		animalID, ok := animalIDs[rd.AnimalID]
		if !ok {
			sum.Skipped++
			continue
		}
		day, err := dates.Parse(rd.Date)
		if err != nil {
			return sum, fmt.Errorf("import reproduction record: %w", err)
		}
		switch reproduction.Type(rd.Type) {
		case reproduction.TypeHeat:
			_, err = s.reproduction.CreateHeat(ctx, reproduction.HeatInput{
				AnimalID:  animalID,
				Date:      day,
				Intensity: reproduction.Intensity(rd.Intensity),
				Notes:     rd.Notes,
			})
		case reproduction.TypeInsemination:
			_, err = s.reproduction.CreateInsemination(ctx, reproduction.InseminationInput{
				AnimalID:   animalID,
				Date:       day,
				Method:     reproduction.Method(rd.Method),
				SireCode:   rd.SireCode,
				Result:     reproduction.Result(rd.Result),
				Technician: rd.Technician,
				Notes:      rd.Notes,
			})
		default:
			sum.Skipped++
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("import reproduction record: %w", err)
		}
		sum.Reproduction++
	}

	return sum, nil
}

func attrIDsByName(sp species.Species) map[string]string {
	out := make(map[string]string, len(sp.Attributes))
	for _, d := range sp.Attributes {
		out[d.Name] = d.ID
	}
	return out
}
