// Package fixtures loads seed data from YAML into the catalog. Records are
// written through the catalog stores inside one transaction, so a fixture
// file is validated exactly like user input and loads all or nothing.
//
// Records reference each other by a file-local key:
//
//	authors:
//	  - key: delibes
//	    first_name: Miguel
//	    last_name: Delibes
//	    birth_date: "1920-10-17"
//	publications:
//	  - key: camino
//	    isbn: "9788423342006"
//	    title: El camino
//	    type: libro
//	    year: 1950
//	    publisher: Destino
//	    authors: [delibes]
//	    units: [nueva, usada]
package fixtures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/entities"
)

var (
	ErrUnknownKey   = errors.New("unknown fixture key")
	ErrDuplicateKey = errors.New("duplicate fixture key")
)

type File struct {
	Authors      []Author      `yaml:"authors"`
	Publications []Publication `yaml:"publications"`
	Videos       []Video       `yaml:"videos"`
	Discs        []Disc        `yaml:"discs"`
}

type Author struct {
	Key       string `yaml:"key"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	BirthDate string `yaml:"birth_date"`
}

type Publication struct {
	Key       string   `yaml:"key"`
	ISBN      string   `yaml:"isbn"`
	Title     string   `yaml:"title"`
	Type      string   `yaml:"type"`
	Year      int      `yaml:"year"`
	Publisher string   `yaml:"publisher"`
	Authors   []string `yaml:"authors"`
	// Units lists one state per physical copy.
	Units []string `yaml:"units"`
}

// Credit attributes a video or disc to an author.
type Credit struct {
	Author string `yaml:"author"`
	Role   string `yaml:"role"`
}

type Video struct {
	Key             string   `yaml:"key"`
	Title           string   `yaml:"title"`
	Format          string   `yaml:"format"`
	Year            int      `yaml:"year"`
	DurationMinutes int      `yaml:"duration_minutes"`
	Genre           string   `yaml:"genre"`
	Synopsis        string   `yaml:"synopsis"`
	Credits         []Credit `yaml:"credits"`
}

type Disc struct {
	Key     string   `yaml:"key"`
	Title   string   `yaml:"title"`
	Format  string   `yaml:"format"`
	Year    int      `yaml:"year"`
	Label   string   `yaml:"label"`
	Tracks  int      `yaml:"tracks"`
	Genre   string   `yaml:"genre"`
	Credits []Credit `yaml:"credits"`
}

// Result counts the records created per entity kind.
type Result map[catalog.Kind]int

// Total returns the number of records created.
func (r Result) Total() int {
	n := 0
	for _, c := range r {
		n += c
	}
	return n
}

// Parse decodes a fixture file. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

// LoadFile parses the file at path and loads it into cat.
func LoadFile(ctx context.Context, cat *database.Catalog, path string) (Result, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, err
	}
	return Load(ctx, cat, f)
}

// Load writes every record of f in a single transaction. The first
// rejected record aborts the load and nothing is stored.
func Load(ctx context.Context, cat *database.Catalog, f *File) (Result, error) {
	var result Result
	err := cat.Transaction(ctx, func(tx *database.Catalog) error {
		l := &loader{
			cat:     tx,
			authors: make(map[string]uint, len(f.Authors)),
			result:  Result{},
		}
		if err := l.load(ctx, f); err != nil {
			return err
		}
		result = l.result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

type loader struct {
	cat     *database.Catalog
	authors map[string]uint
	result  Result
}

func (l *loader) load(ctx context.Context, f *File) error {
	for _, a := range f.Authors {
		if err := l.author(ctx, a); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, p := range f.Publications {
		if err := checkKey(seen, "publication", p.Key); err != nil {
			return err
		}
		if err := l.publication(ctx, p); err != nil {
			return err
		}
	}

	seen = make(map[string]bool)
	for _, v := range f.Videos {
		if err := checkKey(seen, "video", v.Key); err != nil {
			return err
		}
		if err := l.video(ctx, v); err != nil {
			return err
		}
	}

	seen = make(map[string]bool)
	for _, d := range f.Discs {
		if err := checkKey(seen, "disc", d.Key); err != nil {
			return err
		}
		if err := l.disc(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) author(ctx context.Context, a Author) error {
	if a.Key == "" {
		return fmt.Errorf("author %s %s: missing key", a.FirstName, a.LastName)
	}
	if _, ok := l.authors[a.Key]; ok {
		return fmt.Errorf("author %q: %w", a.Key, ErrDuplicateKey)
	}

	record := &entities.Author{FirstName: a.FirstName, LastName: a.LastName}
	if a.BirthDate != "" {
		d, err := entities.ParseDate(a.BirthDate)
		if err != nil {
			return fmt.Errorf("author %q: %w", a.Key, err)
		}
		record.BirthDate = d
	}
	if err := l.cat.Authors.Create(ctx, record); err != nil {
		return fmt.Errorf("author %q: %w", a.Key, err)
	}

	l.authors[a.Key] = record.ID
	l.result[catalog.KindAuthor]++
	return nil
}

func (l *loader) publication(ctx context.Context, p Publication) error {
	ids, err := l.authorIDs(p.Authors)
	if err != nil {
		return fmt.Errorf("publication %q: %w", p.Key, err)
	}

	record := &entities.Publication{
		ISBN:      p.ISBN,
		Title:     p.Title,
		Type:      entities.PublicationType(p.Type),
		Year:      p.Year,
		Publisher: p.Publisher,
		AuthorIDs: ids,
	}
	if err := l.cat.Publications.Create(ctx, record); err != nil {
		return fmt.Errorf("publication %q: %w", p.Key, err)
	}
	l.result[catalog.KindPublication]++

	for i, state := range p.Units {
		unit := &entities.Unit{PublicationID: record.ID, State: entities.UnitState(state)}
		if err := l.cat.Units.Create(ctx, unit); err != nil {
			return fmt.Errorf("publication %q unit %d: %w", p.Key, i+1, err)
		}
		l.result[catalog.KindUnit]++
	}
	return nil
}

func (l *loader) video(ctx context.Context, v Video) error {
	record := &entities.Video{
		Title:           v.Title,
		Format:          entities.VideoFormat(v.Format),
		Year:            v.Year,
		DurationMinutes: v.DurationMinutes,
		Genre:           v.Genre,
		Synopsis:        v.Synopsis,
	}
	if err := l.cat.Videos.Create(ctx, record); err != nil {
		return fmt.Errorf("video %q: %w", v.Key, err)
	}
	l.result[catalog.KindVideo]++

	for _, c := range v.Credits {
		id, err := l.authorID(c.Author)
		if err != nil {
			return fmt.Errorf("video %q: %w", v.Key, err)
		}
		credit := &entities.AuthorVideo{AuthorID: id, VideoID: record.ID, Role: c.Role}
		if err := l.cat.AuthorVideos.Create(ctx, credit); err != nil {
			return fmt.Errorf("video %q credit %q: %w", v.Key, c.Author, err)
		}
		l.result[catalog.KindAuthorVideo]++
	}
	return nil
}

func (l *loader) disc(ctx context.Context, d Disc) error {
	record := &entities.Disc{
		Title:  d.Title,
		Format: entities.DiscFormat(d.Format),
		Year:   d.Year,
		Label:  d.Label,
		Tracks: d.Tracks,
		Genre:  d.Genre,
	}
	if err := l.cat.Discs.Create(ctx, record); err != nil {
		return fmt.Errorf("disc %q: %w", d.Key, err)
	}
	l.result[catalog.KindDisc]++

	for _, c := range d.Credits {
		id, err := l.authorID(c.Author)
		if err != nil {
			return fmt.Errorf("disc %q: %w", d.Key, err)
		}
		credit := &entities.AuthorDisc{AuthorID: id, DiscID: record.ID, Role: c.Role}
		if err := l.cat.AuthorDiscs.Create(ctx, credit); err != nil {
			return fmt.Errorf("disc %q credit %q: %w", d.Key, c.Author, err)
		}
		l.result[catalog.KindAuthorDisc]++
	}
	return nil
}

func (l *loader) authorIDs(keys []string) ([]uint, error) {
	ids := make([]uint, 0, len(keys))
	for _, k := range keys {
		id, err := l.authorID(k)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (l *loader) authorID(key string) (uint, error) {
	id, ok := l.authors[key]
	if !ok {
		return 0, fmt.Errorf("author %q: %w", key, ErrUnknownKey)
	}
	return id, nil
}

// checkKey allows blank keys for records nothing refers to.
func checkKey(seen map[string]bool, kind, key string) error {
	if key == "" {
		return nil
	}
	if seen[key] {
		return fmt.Errorf("%s %q: %w", kind, key, ErrDuplicateKey)
	}
	seen[key] = true
	return nil
}
