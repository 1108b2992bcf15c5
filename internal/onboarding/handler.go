package onboarding

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goalboom/internal/session"
)

type Handler struct {
	Service *Service
	Tokens  TokenService
}

func NewHandler(svc *Service, tokens TokenService) *Handler {
	return &Handler{Service: svc, Tokens: tokens}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.start) // POST /onboarding

	protected := rg.Group("")
	protected.Use(SessionMiddleware(h.Tokens))
	protected.GET("", h.current)
	protected.POST("/slides/:direction", h.slide) // first | next | back
	protected.POST("/intro/done", h.finishIntro)
	protected.POST("/region", h.chooseRegion)
	protected.POST("/gender", h.chooseGender)
	protected.POST("/occupation", h.chooseOccupation)
	protected.GET("/results", h.results)
	protected.POST("/heroes/:name", h.openHero)
	protected.POST("/back", h.back)
	protected.POST("/restart", h.restart)
}

func (h *Handler) start(c *gin.Context) {
	v, err := h.Service.Start(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	token, exp, err := h.Tokens.Sign(v.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session":    v,
		"token":      token,
		"expires_at": exp.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) current(c *gin.Context) {
	respond(c)(h.Service.Current(c.Request.Context(), SessionID(c)))
}

func (h *Handler) slide(c *gin.Context) {
	dir := Direction(c.Param("direction"))
	respond(c)(h.Service.Slide(c.Request.Context(), SessionID(c), dir))
}

func (h *Handler) finishIntro(c *gin.Context) {
	respond(c)(h.Service.FinishIntro(c.Request.Context(), SessionID(c)))
}

type regionReq struct {
	Region  string `json:"region" binding:"required"`
	Country string `json:"country" binding:"required"`
}

func (h *Handler) chooseRegion(c *gin.Context) {
	var req regionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region and country required"})
		return
	}
	respond(c)(h.Service.ChooseRegion(c.Request.Context(), SessionID(c), req.Region, req.Country))
}

type genderReq struct {
	Gender string `json:"gender"`
}

func (h *Handler) chooseGender(c *gin.Context) {
	var req genderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	respond(c)(h.Service.ChooseGender(c.Request.Context(), SessionID(c), req.Gender))
}

type occupationReq struct {
	Occupation string `json:"occupation" binding:"required"`
}

func (h *Handler) chooseOccupation(c *gin.Context) {
	var req occupationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "occupation required"})
		return
	}
	respond(c)(h.Service.ChooseOccupation(c.Request.Context(), SessionID(c), req.Occupation))
}

func (h *Handler) results(c *gin.Context) {
	respond(c)(h.Service.Results(c.Request.Context(), SessionID(c)))
}

func (h *Handler) openHero(c *gin.Context) {
	respond(c)(h.Service.OpenHero(c.Request.Context(), SessionID(c), c.Param("name")))
}

func (h *Handler) back(c *gin.Context) {
	respond(c)(h.Service.Back(c.Request.Context(), SessionID(c)))
}

func (h *Handler) restart(c *gin.Context) {
	respond(c)(h.Service.Restart(c.Request.Context(), SessionID(c)))
}

func respond(c *gin.Context) func(View, error) {
	return func(v View, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNoHeroes):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoSlides):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
