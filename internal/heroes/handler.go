package heroes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"goalboom/pkg/models"
)

// Handler serves the read-only reference data behind the questionnaire
// and direct catalog queries.
type Handler struct {
	Catalog *Catalog
	Regions []models.Region
	Jobs    []models.Occupation
}

func NewHandler(catalog *Catalog, regions []models.Region, jobs []models.Occupation) *Handler {
	return &Handler{Catalog: catalog, Regions: regions, Jobs: jobs}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/regions", h.regions)
	rg.GET("/jobs", h.jobs)
	rg.GET("/heroes", h.list)        // GET /heroes?country=Japan&gender=woman&occupation=doctor
	rg.GET("/heroes/:name", h.getOne) // GET /heroes/:name
}

func (h *Handler) regions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Regions})
}

func (h *Handler) jobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Jobs})
}

func (h *Handler) list(c *gin.Context) {
	q, err := ParseQuery(c.Query("gender"), c.Query("occupation"), c.Query("country"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := h.Catalog.Query(q)
	c.JSON(http.StatusOK, gin.H{
		"total": len(items),
		"query": q,
		"items": items,
	})
}

func (h *Handler) getOne(c *gin.Context) {
	hero, ok := h.Catalog.Get(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, hero)
}

// ParseQuery builds a Query from user input. Gender defaults to
// unspecified and occupation to Developer, like a fresh profile.
func ParseQuery(gender, occupation, country string) (Query, error) {
	q := Query{
		Gender:     models.GenderUnspecified,
		Occupation: models.OccupationDeveloper,
		Country:    strings.TrimSpace(country),
	}
	if q.Country == "" {
		return Query{}, errCountryRequired
	}

	g, err := models.ParseGender(gender)
	if err != nil {
		return Query{}, err
	}
	q.Gender = g

	if strings.TrimSpace(occupation) != "" {
		o, err := models.ParseOccupation(occupation)
		if err != nil {
			return Query{}, err
		}
		q.Occupation = o
	}
	return q, nil
}
