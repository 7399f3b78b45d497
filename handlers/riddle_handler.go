package handlers

import (
	"net/http"
	"strconv"

	"riddlevault/middleware"
	"riddlevault/models"
	"riddlevault/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RiddleHandler struct {
	riddleService *services.RiddleService
	hub           *services.Hub
}

func NewRiddleHandler(riddleService *services.RiddleService, hub *services.Hub) *RiddleHandler {
	return &RiddleHandler{
		riddleService: riddleService,
		hub:           hub,
	}
}

func (h *RiddleHandler) CreateRiddle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	var req services.CreateRiddleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	riddle, err := h.riddleService.CreateRiddle(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "riddle_created", riddle)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": riddle})
}

func (h *RiddleHandler) GetRiddle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	riddleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid riddle ID")
		return
	}

	riddle, err := h.riddleService.GetRiddle(riddleID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": riddle})
}

func (h *RiddleHandler) UpdateRiddle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	riddleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid riddle ID")
		return
	}

	var req services.UpdateRiddleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	riddle, err := h.riddleService.UpdateRiddle(riddleID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "riddle_updated", riddle)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": riddle})
}

func (h *RiddleHandler) DeleteRiddle(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	riddleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid riddle ID")
		return
	}

	if err := h.riddleService.DeleteRiddle(riddleID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "riddle_deleted", gin.H{"id": riddleID})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Riddle deleted successfully"}})
}

func (h *RiddleHandler) ListMyRiddles(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	page, pageSize, err := parsePagination(c)
	if err != nil {
		respondValidation(c, err.Error())
		return
	}

	filter := services.ListRiddlesFilter{
		Page:     page,
		PageSize: pageSize,
	}

	if raw := c.Query("collection_id"); raw != "" {
		collectionID, err := uuid.Parse(raw)
		if err != nil {
			respondValidation(c, "Invalid collection ID filter")
			return
		}
		filter.CollectionID = &collectionID
	}
	if raw := c.Query("favorites_only"); raw != "" {
		favoritesOnly, err := strconv.ParseBool(raw)
		if err != nil {
			respondValidation(c, "favorites_only must be a boolean")
			return
		}
		filter.FavoritesOnly = favoritesOnly
	}
	if raw := c.Query("difficulty"); raw != "" {
		if !models.ValidDifficulty(raw) {
			respondValidation(c, "difficulty must be easy, medium or hard")
			return
		}
		filter.Difficulty = raw
	}
	filter.Category = c.Query("category")

	riddles, count, err := h.riddleService.ListRiddles(userID, &filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"riddles":   riddles,
		"count":     count,
		"page":      page,
		"page_size": pageSize,
	}})
}
