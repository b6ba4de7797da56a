package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

// PublicationSummary is a publication with its derived unit counts.
type PublicationSummary struct {
	entities.Publication
	TotalUnits     int64 `json:"total_units"`
	AvailableUnits int64 `json:"available_units"`
}

// PublicationStore adds author links and unit aggregates to the generic store.
type PublicationStore struct {
	*Store[entities.Publication]
}

func NewPublicationStore(db *gorm.DB, registry *catalog.Registry, validator RecordValidator) *PublicationStore {
	s := NewStore[entities.Publication](db, catalog.KindPublication, registry, validator)
	s.preloads = []preload{{name: "Authors", scope: orderAuthors(registry)}}
	return &PublicationStore{Store: s}
}

func orderAuthors(registry *catalog.Registry) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(registry.OrderClause(catalog.KindAuthor))
	}
}

// Create inserts the publication and links it to p.AuthorIDs. Authors are
// referenced, never created, so an unknown id fails the foreign key. The
// stored row is reloaded into p with its authors.
func (s *PublicationStore) Create(ctx context.Context, p *entities.Publication) error {
	if err := s.validate(ctx, p); err != nil {
		return err
	}

	if len(p.AuthorIDs) > 0 {
		p.Authors = make([]entities.Author, 0, len(p.AuthorIDs))
		for _, id := range p.AuthorIDs {
			p.Authors = append(p.Authors, entities.Author{ID: id})
		}
	}

	if err := s.db.WithContext(ctx).Omit("Authors.*").Create(p).Error; err != nil {
		return s.wrap("create", err)
	}

	if err := s.query(ctx).First(p, p.ID).Error; err != nil {
		return fmt.Errorf("reload publication %d: %w", p.ID, err)
	}
	return nil
}

// ISBNExists reports whether any stored publication has isbn.
func (s *PublicationStore) ISBNExists(ctx context.Context, isbn string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&entities.Publication{}).
		Where("isbn = ?", isbn).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("lookup isbn: %w", err)
	}
	return n > 0, nil
}

// CountUnits counts the units of a publication, skipping any in exclude.
// A publication without units, or an unknown id, counts zero.
func (s *PublicationStore) CountUnits(ctx context.Context, publicationID uint, exclude ...entities.UnitState) (int64, error) {
	q := s.db.WithContext(ctx).
		Model(&entities.Unit{}).
		Where("publication_id = ?", publicationID)
	if len(exclude) > 0 {
		q = q.Where("state NOT IN ?", exclude)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count units of publication %d: %w", publicationID, err)
	}
	return n, nil
}

func (s *PublicationStore) TotalUnits(ctx context.Context, publicationID uint) (int64, error) {
	return s.CountUnits(ctx, publicationID)
}

// AvailableUnits counts every unit not marked for retirement.
func (s *PublicationStore) AvailableUnits(ctx context.Context, publicationID uint) (int64, error) {
	return s.CountUnits(ctx, publicationID, entities.UnitStateRetire)
}

// CountUnitsByState returns the unit count per state. States with no units
// are omitted.
func (s *PublicationStore) CountUnitsByState(ctx context.Context, publicationID uint) (map[entities.UnitState]int64, error) {
	var rows []struct {
		State entities.UnitState
		N     int64
	}
	err := s.db.WithContext(ctx).
		Model(&entities.Unit{}).
		Select("state, COUNT(*) AS n").
		Where("publication_id = ?", publicationID).
		Group("state").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count units by state of publication %d: %w", publicationID, err)
	}

	out := make(map[entities.UnitState]int64, len(rows))
	for _, r := range rows {
		out[r.State] = r.N
	}
	return out, nil
}

// Summaries lists every publication in registry order with its unit totals.
// The counts come from one grouped query over units.
func (s *PublicationStore) Summaries(ctx context.Context) ([]PublicationSummary, error) {
	pubs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		PublicationID uint
		Total         int64
		Available     int64
	}
	err = s.db.WithContext(ctx).
		Model(&entities.Unit{}).
		Select("publication_id, COUNT(*) AS total, SUM(CASE WHEN state <> ? THEN 1 ELSE 0 END) AS available", entities.UnitStateRetire).
		Group("publication_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("summarize units: %w", err)
	}

	totals := make(map[uint][2]int64, len(rows))
	for _, r := range rows {
		totals[r.PublicationID] = [2]int64{r.Total, r.Available}
	}

	out := make([]PublicationSummary, 0, len(pubs))
	for _, p := range pubs {
		t := totals[p.ID]
		out = append(out, PublicationSummary{
			Publication:    p,
			TotalUnits:     t[0],
			AvailableUnits: t[1],
		})
	}
	return out, nil
}
