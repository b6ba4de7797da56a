package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/auth"
	"github.com/mrlokans/mediateca/internal/catalog"
)

// ListHandler serves every record of one kind in catalog order, either as
// JSON or through an HTML template.
type ListHandler[T any] struct {
	store    EntityStore[T]
	kind     catalog.Kind
	template string
	flash    Flasher
}

func NewListHandler[T any](store EntityStore[T], kind catalog.Kind, template string, flash Flasher) *ListHandler[T] {
	return &ListHandler[T]{store: store, kind: kind, template: template, flash: flash}
}

// API handles GET /api/<kind>.
func (h *ListHandler[T]) API(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list "+string(h.kind))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Page renders the list template with the records as .Items.
func (h *ListHandler[T]) Page(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		renderInternalError(c, err, "list "+string(h.kind))
		return
	}

	data := gin.H{"Items": items}
	if h.flash != nil {
		data["Flash"] = h.flash.PopFlash(c.Request)
	}
	c.HTML(http.StatusOK, h.template, data)
}

// FormBinder turns a submitted form into a record. Values that cannot be
// parsed at all (a year of "abc") are reported as violations.
type FormBinder[T any] func(c *gin.Context) (*T, []catalog.Violation)

// generatedFields is implemented by entities whose id and timestamps are
// assigned by the store.
type generatedFields interface {
	ResetGenerated()
}

// CreateHandler validates and stores one record of a kind, from JSON or
// from an HTML form.
type CreateHandler[T any] struct {
	store     EntityStore[T]
	validator RecordValidator
	kind      catalog.Kind

	// HTML form settings; unused by the JSON API.
	Template    string
	SuccessURL  string
	SuccessText string
	Bind        FormBinder[T]
	FormData    gin.H
	Flash       Flasher
}

func NewCreateHandler[T any](store EntityStore[T], validator RecordValidator, kind catalog.Kind) *CreateHandler[T] {
	return &CreateHandler[T]{store: store, validator: validator, kind: kind}
}

// API handles POST /api/<kind> with a JSON body.
func (h *CreateHandler[T]) API(c *gin.Context) {
	record := new(T)
	if err := c.ShouldBindJSON(record); err != nil {
		respondBadRequest(c, "invalid JSON body: "+err.Error())
		return
	}
	if r, ok := any(record).(generatedFields); ok {
		r.ResetGenerated()
	}

	if err := h.store.Create(c.Request.Context(), record); err != nil {
		respondStoreError(c, err, "create "+string(h.kind))
		return
	}
	respondCreated(c, record)
}

// Form renders the empty create form.
func (h *CreateHandler[T]) Form(c *gin.Context) {
	h.renderForm(c, http.StatusOK, map[string]string{}, nil, "")
}

// Submit handles the form POST. Success redirects to SuccessURL with 303;
// a rejected record re-renders the form with its field errors.
func (h *CreateHandler[T]) Submit(c *gin.Context) {
	ctx := c.Request.Context()
	record, parseErrs := h.Bind(c)
	values := formValues(c)

	var err error
	if len(parseErrs) > 0 {
		err = mergeViolations(h.kind, parseErrs, h.validator.Validate(ctx, h.kind, record))
	} else {
		err = h.store.Create(ctx, record)
	}

	var verr *catalog.ValidationError
	var ierr *catalog.IntegrityError
	switch {
	case err == nil:
		if h.Flash != nil && h.SuccessText != "" {
			h.Flash.SetFlash(c.Request, h.SuccessText)
		}
		c.Redirect(http.StatusSeeOther, h.SuccessURL)
	case errors.As(err, &verr):
		h.renderForm(c, http.StatusUnprocessableEntity, values, verr.ByField(), "")
	case errors.As(err, &ierr):
		h.renderForm(c, http.StatusConflict, values, fieldErrors(ierr), "No se pudo guardar: el registro entra en conflicto con datos existentes.")
	default:
		renderInternalError(c, err, "create "+string(h.kind))
	}
}

func (h *CreateHandler[T]) renderForm(c *gin.Context, status int, values map[string]string, errs map[string][]string, formError string) {
	data := gin.H{
		"Values":    values,
		"Errors":    errs,
		"FormError": formError,
		"CSRFField": auth.CSRFFieldName,
		"CSRFToken": auth.GetCSRFToken(c),
	}
	for k, v := range h.FormData {
		data[k] = v
	}
	c.HTML(status, h.Template, data)
}

// mergeViolations combines parse failures with the validator's verdict on
// the partially bound record. A parse failure wins for its field.
func mergeViolations(kind catalog.Kind, parsed []catalog.Violation, validateErr error) error {
	var verr *catalog.ValidationError
	if validateErr != nil && !errors.As(validateErr, &verr) {
		return validateErr
	}

	out := append([]catalog.Violation(nil), parsed...)
	if verr != nil {
		seen := make(map[string]bool, len(parsed))
		for _, v := range parsed {
			seen[v.Field] = true
		}
		for _, v := range verr.Violations {
			if !seen[v.Field] {
				out = append(out, v)
			}
		}
	}
	return catalog.NewValidationError(kind, out)
}

func fieldErrors(ierr *catalog.IntegrityError) map[string][]string {
	if ierr.Field == "" {
		return nil
	}
	msg := "Ya existe un registro con este valor."
	if ierr.Constraint == catalog.ConstraintForeignKey {
		msg = "El registro referenciado no existe."
	}
	return map[string][]string{ierr.Field: {msg}}
}

func formValues(c *gin.Context) map[string]string {
	out := make(map[string]string, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

// renderInternalError logs err and shows a plain error page. The error
// itself is never rendered.
func renderInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s) [%s]: %v", context, GetRequestID(c), err)
	c.String(http.StatusInternalServerError, "Error interno del servidor.")
}
