// Package catalog holds the static configuration shared by the validation
// and data access layers: enum domains with their display labels, the
// default sort keys per entity kind, and the error taxonomy.
package catalog

import (
	"strings"

	"github.com/mrlokans/mediateca/internal/entities"
)

// Kind identifies an entity type in the catalog.
type Kind string

const (
	KindAuthor            Kind = "author"
	KindPublication       Kind = "publication"
	KindUnit              Kind = "unit"
	KindVideo             Kind = "video"
	KindDisc              Kind = "disc"
	KindAuthorPublication Kind = "author_publication"
	KindAuthorVideo       Kind = "author_video"
	KindAuthorDisc        Kind = "author_disc"
)

// Enum domain names, referenced from `choice=<domain>` validation tags.
const (
	DomainPublicationType = "publication_type"
	DomainUnitState       = "unit_state"
	DomainVideoFormat     = "video_format"
	DomainDiscFormat      = "disc_format"
)

// Choice is one allowed value of an enum domain.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Registry maps enum domains to their choices and entity kinds to their
// default ordering. It is read-only after construction.
type Registry struct {
	domains map[string][]Choice
	orders  map[Kind][]string
}

// DefaultRegistry returns the registry for the catalog schema.
func DefaultRegistry() *Registry {
	return &Registry{
		domains: map[string][]Choice{
			DomainPublicationType: {
				{Value: string(entities.PublicationTypeBook), Label: "Libro"},
				{Value: string(entities.PublicationTypeArticle), Label: "Artículo"},
			},
			DomainUnitState: {
				{Value: string(entities.UnitStateNew), Label: "Nueva"},
				{Value: string(entities.UnitStateUsed), Label: "Usada"},
				{Value: string(entities.UnitStateDeteriorated), Label: "Deteriorada"},
				{Value: string(entities.UnitStateRetire), Label: "A retirar"},
			},
			DomainVideoFormat: {
				{Value: string(entities.VideoFormatVHS), Label: "VHS"},
				{Value: string(entities.VideoFormatCD), Label: "CD"},
				{Value: string(entities.VideoFormatDVD), Label: "DVD"},
			},
			DomainDiscFormat: {
				{Value: string(entities.DiscFormatVinyl), Label: "Vinilo"},
				{Value: string(entities.DiscFormatCD), Label: "CD"},
				{Value: string(entities.DiscFormatCassette), Label: "Cassette"},
			},
		},
		orders: map[Kind][]string{
			KindAuthor:            {"last_name", "first_name"},
			KindPublication:       {"title"},
			KindUnit:              {"publication_id"},
			KindVideo:             {"title"},
			KindDisc:              {"title"},
			KindAuthorPublication: {"author_id", "publication_id"},
			KindAuthorVideo:       {"author_id", "video_id"},
			KindAuthorDisc:        {"author_id", "disc_id"},
		},
	}
}

// Choices returns the allowed values of a domain, in display order.
func (r *Registry) Choices(domain string) []Choice {
	return r.domains[domain]
}

// Domains returns every registered domain with its choices.
func (r *Registry) Domains() map[string][]Choice {
	out := make(map[string][]Choice, len(r.domains))
	for name, choices := range r.domains {
		out[name] = append([]Choice(nil), choices...)
	}
	return out
}

// Valid reports whether value belongs to the domain.
func (r *Registry) Valid(domain, value string) bool {
	for _, c := range r.domains[domain] {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for value, or value itself when unknown.
func (r *Registry) Label(domain, value string) string {
	for _, c := range r.domains[domain] {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// Order returns the sort keys for kind.
func (r *Registry) Order(kind Kind) []string {
	return r.orders[kind]
}

// OrderClause renders the ORDER BY clause for kind. The primary key is
// always appended so repeated listings return rows in the same order.
func (r *Registry) OrderClause(kind Kind) string {
	keys := append([]string(nil), r.orders[kind]...)
	keys = append(keys, "id")
	return strings.Join(keys, ", ")
}
