package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cimillas/eventfinder/internal/domain"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	ID               string `yaml:"id"`
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	ShortDescription string `yaml:"short_description"`
	StartsAt         string `yaml:"starts_at"`
	EndsAt           string `yaml:"ends_at"`
	Location         string `yaml:"location"`
	City             string `yaml:"city"`
	ImageURL         string `yaml:"image_url"`
	Category         string `yaml:"category"`
	Organizer        struct {
		Name     string `yaml:"name"`
		ImageURL string `yaml:"image_url"`
	} `yaml:"organizer"`
	Price        string `yaml:"price"`
	SpecialOffer string `yaml:"special_offer"`
	Featured     bool   `yaml:"featured"`
}

// LoadSeed decodes the catalog compiled into the binary.
func LoadSeed() ([]domain.Event, error) {
	return LoadYAML(bytes.NewReader(seedYAML))
}

// LoadYAML decodes a seed document. Timestamps are RFC 3339.
func LoadYAML(r io.Reader) ([]domain.Event, error) {
	var doc seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	events := make([]domain.Event, 0, len(doc.Events))
	for i, se := range doc.Events {
		e, err := se.toDomain()
		if err != nil {
			return nil, fmt.Errorf("seed event %d (%q): %w", i, se.ID, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (se seedEvent) toDomain() (domain.Event, error) {
	start, err := time.Parse(time.RFC3339, se.StartsAt)
	if err != nil {
		return domain.Event{}, fmt.Errorf("starts_at: %w", err)
	}
	e := domain.Event{
		ID:               se.ID,
		Title:            se.Title,
		Description:      se.Description,
		ShortDescription: se.ShortDescription,
		StartsAt:         start,
		Location:         se.Location,
		City:             se.City,
		ImageURL:         se.ImageURL,
		Category:         se.Category,
		Organizer: domain.Organizer{
			Name:     se.Organizer.Name,
			ImageURL: se.Organizer.ImageURL,
		},
		Price:        domain.Price(se.Price),
		SpecialOffer: se.SpecialOffer,
		Featured:     se.Featured,
		Status:       domain.EventStatusActive,
	}
	if se.EndsAt != "" {
		end, err := time.Parse(time.RFC3339, se.EndsAt)
		if err != nil {
			return domain.Event{}, fmt.Errorf("ends_at: %w", err)
		}
		e.EndsAt = &end
	}
	return e, nil
}
