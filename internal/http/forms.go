package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

// Form field messages for values that never reach the validator.
const (
	msgRequired    = "This field is required."
	msgWholeNumber = "Enter a whole number."
	msgDate        = "Enter a valid date."
)

// bindAuthorForm reads the author form (nombre, apellidos, fecha de nacimiento).
func bindAuthorForm(c *gin.Context) (*entities.Author, []catalog.Violation) {
	var v []catalog.Violation
	a := &entities.Author{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	a.BirthDate = dateField(c, "birth_date", &v)
	return a, v
}

// bindDiscForm reads the disc form.
func bindDiscForm(c *gin.Context) (*entities.Disc, []catalog.Violation) {
	var v []catalog.Violation
	d := &entities.Disc{
		Title:  c.PostForm("title"),
		Format: entities.DiscFormat(c.PostForm("format")),
		Label:  c.PostForm("label"),
		Genre:  c.PostForm("genre"),
	}
	d.Year = intField(c, "year", &v)
	d.Tracks = intField(c, "tracks", &v)
	return d, v
}

func intField(c *gin.Context, name string, v *[]catalog.Violation) int {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		*v = append(*v, catalog.Violation{Field: name, Code: catalog.CodeRequired, Message: msgRequired})
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*v = append(*v, catalog.Violation{Field: name, Code: catalog.CodeInvalid, Message: msgWholeNumber})
		return 0
	}
	return n
}

// dateField leaves a blank date zero so the validator reports it as required.
func dateField(c *gin.Context, name string, v *[]catalog.Violation) entities.Date {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return entities.Date{}
	}
	d, err := entities.ParseDate(raw)
	if err != nil {
		*v = append(*v, catalog.Violation{Field: name, Code: catalog.CodeInvalid, Message: msgDate})
		return entities.Date{}
	}
	return d
}
