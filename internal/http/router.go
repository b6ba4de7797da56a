package http

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/auth"
	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/entities"
)

// templateFuncs exposes the registry to templates so enum values render
// with their labels.
func templateFuncs(registry *catalog.Registry) template.FuncMap {
	return template.FuncMap{
		"choiceLabel": func(domain string, value any) string {
			return registry.Label(domain, fmt.Sprint(value))
		},
	}
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Registry == nil {
		cfg.Registry = catalog.DefaultRegistry()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(requestLogger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Throttle and guard writes before any body is parsed
	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimitMiddleware())
	}
	router.Use(auth.AdminGuard(cfg.AuthConfig))

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flash Flasher
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
		flash = cfg.SessionManager
	}

	tmpl := template.Must(template.New("").Funcs(templateFuncs(cfg.Registry)).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	var health *HealthController
	if cfg.Catalog != nil {
		health = NewHealthController(cfg.Catalog, cfg.Version)
	} else {
		health = NewHealthController(nil, cfg.Version)
	}

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	if cfg.Catalog != nil {
		registerCatalogRoutes(router, cfg.Catalog, cfg.Registry, flash)
	}

	return router
}

func registerCatalogRoutes(router *gin.Engine, cat *database.Catalog, registry *catalog.Registry, flash Flasher) {
	validator := cat.Validator()

	// HTML pages
	authorList := NewListHandler[entities.Author](cat.Authors, catalog.KindAuthor, "autor_list.html", flash)
	authorCreate := NewCreateHandler[entities.Author](cat.Authors, validator, catalog.KindAuthor)
	authorCreate.Template = "autor_form.html"
	authorCreate.SuccessURL = "/autores/"
	authorCreate.SuccessText = "Autor creado correctamente."
	authorCreate.Bind = bindAuthorForm
	authorCreate.Flash = flash

	discList := NewListHandler[entities.Disc](cat.Discs, catalog.KindDisc, "disco_list.html", flash)
	discCreate := NewCreateHandler[entities.Disc](cat.Discs, validator, catalog.KindDisc)
	discCreate.Template = "disco_form.html"
	discCreate.SuccessURL = "/discos/"
	discCreate.SuccessText = "Disco creado correctamente."
	discCreate.Bind = bindDiscForm
	discCreate.Flash = flash
	discCreate.FormData = gin.H{"Formats": registry.Choices(catalog.DomainDiscFormat)}

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/autores/")
	})
	router.GET("/autores/", authorList.Page)
	router.GET("/autores/crear/", authorCreate.Form)
	router.POST("/autores/crear/", authorCreate.Submit)
	router.GET("/discos/", discList.Page)
	router.GET("/discos/crear/", discCreate.Form)
	router.POST("/discos/crear/", discCreate.Submit)

	// JSON API
	api := router.Group("/api")
	registerAPI[entities.Author](api, "/authors", cat.Authors, validator, catalog.KindAuthor)
	registerAPI[entities.Publication](api, "/publications", cat.Publications, validator, catalog.KindPublication)
	registerAPI[entities.Unit](api, "/units", cat.Units, validator, catalog.KindUnit)
	registerAPI[entities.Video](api, "/videos", cat.Videos, validator, catalog.KindVideo)
	registerAPI[entities.Disc](api, "/discs", cat.Discs, validator, catalog.KindDisc)
	registerAPI[entities.AuthorPublication](api, "/author-publications", cat.AuthorPublications, validator, catalog.KindAuthorPublication)
	registerAPI[entities.AuthorVideo](api, "/author-videos", cat.AuthorVideos, validator, catalog.KindAuthorVideo)
	registerAPI[entities.AuthorDisc](api, "/author-discs", cat.AuthorDiscs, validator, catalog.KindAuthorDisc)

	publications := NewPublicationsController(cat.Publications, registry)
	api.GET("/publications/summary", publications.Summary)
	api.GET("/publications/:id/units/count", publications.CountUnits)

	choices := NewChoicesController(registry)
	api.GET("/choices", choices.List)
}

func registerAPI[T any](api *gin.RouterGroup, path string, store EntityStore[T], validator RecordValidator, kind catalog.Kind) {
	api.GET(path, NewListHandler[T](store, kind, "", nil).API)
	api.POST(path, NewCreateHandler[T](store, validator, kind).API)
}
