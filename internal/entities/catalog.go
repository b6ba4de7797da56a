package entities

import (
	"fmt"
	"time"
)

type PublicationType string

const (
	PublicationTypeBook    PublicationType = "libro"
	PublicationTypeArticle PublicationType = "articulo"
)

type UnitState string

const (
	UnitStateNew          UnitState = "nueva"
	UnitStateUsed         UnitState = "usada"
	UnitStateDeteriorated UnitState = "deteriorada"
	UnitStateRetire       UnitState = "retirar" // not counted as available
)

type VideoFormat string

const (
	VideoFormatVHS VideoFormat = "VHS"
	VideoFormatCD  VideoFormat = "CD"
	VideoFormatDVD VideoFormat = "DVD"
)

type DiscFormat string

const (
	DiscFormatVinyl    DiscFormat = "Vinilo"
	DiscFormatCD       DiscFormat = "CD"
	DiscFormatCassette DiscFormat = "Cassette"
)

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name" validate:"required,max=100"`
	LastName  string    `gorm:"index;size:200;not null" json:"last_name" validate:"required,max=200"`
	BirthDate Date      `gorm:"not null" json:"birth_date" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Author) String() string {
	return a.FirstName + " " + a.LastName
}

type Publication struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ISBN      string          `gorm:"uniqueIndex;size:13;not null" json:"isbn" validate:"required,len=13"`
	Title     string          `gorm:"index;size:300;not null" json:"title" validate:"required,max=300"`
	Authors   []Author        `gorm:"many2many:publication_authors;constraint:OnDelete:CASCADE" json:"authors,omitempty" validate:"-"`
	Type      PublicationType `gorm:"size:10;not null" json:"type" validate:"required,choice=publication_type"`
	Year      int             `gorm:"not null" json:"year" validate:"gte=1000,lte=2100"`
	Publisher string          `gorm:"size:200;not null" json:"publisher" validate:"required,max=200"`
	CreatedAt time.Time       `json:"created_at"`

	// AuthorIDs is the write-side form of Authors used by the API.
	AuthorIDs []uint `gorm:"-" json:"author_ids,omitempty" validate:"-"`
}

func (p Publication) String() string {
	return p.Title
}

// Unit is one physical copy of a publication.
type Unit struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	PublicationID uint         `gorm:"index;not null" json:"publication_id" validate:"required"`
	Publication   *Publication `gorm:"constraint:OnDelete:RESTRICT" json:"publication,omitempty" validate:"-"`
	State         UnitState    `gorm:"index;size:20;not null" json:"state" validate:"required,choice=unit_state"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Available reports whether the unit can still be lent out.
func (u Unit) Available() bool {
	return u.State != UnitStateRetire
}

func (u Unit) String() string {
	return fmt.Sprintf("Unit #%d (%s)", u.ID, u.State)
}

type Video struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `gorm:"index;size:200;not null" json:"title" validate:"required,max=200"`
	Format          VideoFormat `gorm:"size:20;not null" json:"format" validate:"required,choice=video_format"`
	Year            int         `gorm:"not null" json:"year" validate:"gte=1500,lte=2100"`
	DurationMinutes int         `gorm:"not null" json:"duration_minutes" validate:"gte=1"`
	Genre           string      `gorm:"size:100;not null" json:"genre" validate:"required,max=100"`
	Synopsis        string      `gorm:"type:text;not null" json:"synopsis" validate:"required"`
	CreatedAt       time.Time   `json:"created_at"`
}

func (v Video) String() string {
	return v.Title
}

type Disc struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"index;size:200;not null" json:"title" validate:"required,max=200"`
	Format    DiscFormat `gorm:"size:20;not null" json:"format" validate:"required,choice=disc_format"`
	Year      int        `gorm:"not null" json:"year" validate:"gte=1500,lte=2100"`
	Label     string     `gorm:"size:200;not null" json:"label" validate:"required,max=200"`
	Tracks    int        `gorm:"not null" json:"tracks" validate:"gte=1"`
	Genre     string     `gorm:"size:100;not null" json:"genre" validate:"required,max=100"`
	CreatedAt time.Time  `json:"created_at"`
}

func (d Disc) String() string {
	return d.Title
}

// AuthorPublication is an explicit author/publication link. The primary
// relationship is Publication.Authors; this table carries no extra data.
type AuthorPublication struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	AuthorID      uint         `gorm:"index;not null" json:"author_id" validate:"required"`
	Author        *Author      `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
	PublicationID uint         `gorm:"index;not null" json:"publication_id" validate:"required"`
	Publication   *Publication `gorm:"constraint:OnDelete:CASCADE" json:"publication,omitempty" validate:"-"`
}

// AuthorVideo credits an author on a video with a role (director, actor...).
type AuthorVideo struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	AuthorID uint    `gorm:"index;not null" json:"author_id" validate:"required"`
	Author   *Author `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
	VideoID  uint    `gorm:"index;not null" json:"video_id" validate:"required"`
	Video    *Video  `gorm:"constraint:OnDelete:CASCADE" json:"video,omitempty" validate:"-"`
	Role     string  `gorm:"size:50;not null" json:"role" validate:"required,max=50"`
}

// AuthorDisc credits an author on a disc with a role (performer, producer...).
type AuthorDisc struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	AuthorID uint    `gorm:"index;not null" json:"author_id" validate:"required"`
	Author   *Author `gorm:"constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
	DiscID   uint    `gorm:"index;not null" json:"disc_id" validate:"required"`
	Disc     *Disc   `gorm:"constraint:OnDelete:CASCADE" json:"disc,omitempty" validate:"-"`
	Role     string  `gorm:"size:50;not null" json:"role" validate:"required,max=50"`
}

func (Author) TableName() string {
	return "authors"
}

func (Publication) TableName() string {
	return "publications"
}

func (Unit) TableName() string {
	return "units"
}

func (Video) TableName() string {
	return "videos"
}

func (Disc) TableName() string {
	return "discs"
}

func (AuthorPublication) TableName() string {
	return "author_publications"
}

func (AuthorVideo) TableName() string {
	return "author_videos"
}

func (AuthorDisc) TableName() string {
	return "author_discs"
}

// All lists every persisted entity in migration order.
func All() []any {
	return []any{
		&Author{},
		&Publication{},
		&Unit{},
		&Video{},
		&Disc{},
		&AuthorPublication{},
		&AuthorVideo{},
		&AuthorDisc{},
	}
}

// ResetGenerated clears the fields the store assigns on insert, so a
// client-supplied record cannot choose its own id or timestamps.
func (a *Author) ResetGenerated() {
	a.ID = 0
	a.CreatedAt = time.Time{}
}

// ResetGenerated also drops embedded authors; links are written from AuthorIDs.
func (p *Publication) ResetGenerated() {
	p.ID = 0
	p.CreatedAt = time.Time{}
	p.Authors = nil
}

func (u *Unit) ResetGenerated() {
	u.ID = 0
	u.CreatedAt = time.Time{}
	u.Publication = nil
}

func (v *Video) ResetGenerated() {
	v.ID = 0
	v.CreatedAt = time.Time{}
}

func (d *Disc) ResetGenerated() {
	d.ID = 0
	d.CreatedAt = time.Time{}
}

func (ap *AuthorPublication) ResetGenerated() {
	ap.ID = 0
	ap.Author = nil
	ap.Publication = nil
}

func (av *AuthorVideo) ResetGenerated() {
	av.ID = 0
	av.Author = nil
	av.Video = nil
}

func (ad *AuthorDisc) ResetGenerated() {
	ad.ID = 0
	ad.Author = nil
	ad.Disc = nil
}
