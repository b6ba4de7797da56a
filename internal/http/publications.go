package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

// UnitCountResponse is the answer to a unit count query.
type UnitCountResponse struct {
	PublicationID uint                         `json:"publication_id"`
	Exclude       entities.UnitState           `json:"exclude,omitempty"`
	Count         int64                        `json:"count"`
	ByState       map[entities.UnitState]int64 `json:"by_state"`
}

type PublicationsController struct {
	store    PublicationReader
	registry *catalog.Registry
}

func NewPublicationsController(store PublicationReader, registry *catalog.Registry) *PublicationsController {
	return &PublicationsController{store: store, registry: registry}
}

// Summary lists every publication with its total and available units.
func (pc *PublicationsController) Summary(c *gin.Context) {
	summaries, err := pc.store.Summaries(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "publication summaries")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// CountUnits handles GET /api/publications/:id/units/count?exclude=<state>.
func (pc *PublicationsController) CountUnits(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := pc.store.Get(ctx, id); err != nil {
		respondStoreError(c, err, "publication")
		return
	}

	var exclude []entities.UnitState
	state := c.Query("exclude")
	if state != "" {
		if !pc.registry.Valid(catalog.DomainUnitState, state) {
			respondBadRequest(c, "invalid exclude state: "+state)
			return
		}
		exclude = append(exclude, entities.UnitState(state))
	}

	n, err := pc.store.CountUnits(ctx, id, exclude...)
	if err != nil {
		respondInternalError(c, err, "count units")
		return
	}
	byState, err := pc.store.CountUnitsByState(ctx, id)
	if err != nil {
		respondInternalError(c, err, "count units by state")
		return
	}

	c.JSON(http.StatusOK, UnitCountResponse{
		PublicationID: id,
		Exclude:       entities.UnitState(state),
		Count:         n,
		ByState:       byState,
	})
}

type ChoicesController struct {
	registry *catalog.Registry
}

func NewChoicesController(registry *catalog.Registry) *ChoicesController {
	return &ChoicesController{registry: registry}
}

// List returns every enum domain with its values and labels.
func (cc *ChoicesController) List(c *gin.Context) {
	c.JSON(http.StatusOK, cc.registry.Domains())
}
