package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

// PortfolioController manages the website showcase tiles. Same id scheme as
// services: client-assigned via NextID.
type PortfolioController struct {
	Cache  *cache.Cache
	Remote store.Remote
}

func NewPortfolioController(c *cache.Cache, remote store.Remote) *PortfolioController {
	return &PortfolioController{Cache: c, Remote: remote}
}

// GetAllPortfolio is public.
func (pc *PortfolioController) GetAllPortfolio(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of portfolio items", pc.Cache.Portfolio())
}

type portfolioInput struct {
	Title  string `json:"title" binding:"required"`
	Icon   string `json:"icon"`
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
}

// CreatePortfolioItem
func (pc *PortfolioController) CreatePortfolioItem(c *gin.Context) {
	var input portfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.PortfolioItem{
		ID:        pc.Cache.NextID(store.TablePortfolio),
		Title:     input.Title,
		Icon:      input.Icon,
		Color1:    input.Color1,
		Color2:    input.Color2,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if _, err := pc.Remote.Insert(c.Request.Context(), store.TablePortfolio, &item); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	pc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusCreated, "Portfolio item created", item)
}

// UpdatePortfolioItem
func (pc *PortfolioController) UpdatePortfolioItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	var existing *models.PortfolioItem
	for _, p := range pc.Cache.Portfolio() {
		if p.ID == uint(id) {
			existing = &p
			break
		}
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("portfolio item not found"))
		return
	}

	var input portfolioInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existing.Title = input.Title
	existing.Icon = input.Icon
	existing.Color1 = input.Color1
	existing.Color2 = input.Color2

	if err := pc.Remote.Update(c.Request.Context(), store.TablePortfolio, existing.ID, existing); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	pc.Cache.Load(c.Request.Context())

	utils.RespondJSON(c, http.StatusOK, "Portfolio item updated", existing)
}

// DeletePortfolioItem
func (pc *PortfolioController) DeletePortfolioItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("item_id"))

	current := pc.Cache.Portfolio()
	remaining := make([]store.Row, 0, len(current))
	found := false
	for i := range current {
		if current[i].ID == uint(id) {
			found = true
			continue
		}
		remaining = append(remaining, &current[i])
	}
	if !found {
		utils.RespondError(c, http.StatusNotFound, errors.New("portfolio item not found"))
		return
	}

	pc.Cache.Set(c.Request.Context(), store.TablePortfolio, remaining)
	utils.RespondJSON(c, http.StatusOK, "Portfolio item deleted", gin.H{"item_id": id})
}
