package handlers

import (
	"net/http"

	"riddlevault/middleware"
	"riddlevault/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
	hub               *services.Hub
}

func NewCollectionHandler(collectionService *services.CollectionService, hub *services.Hub) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		hub:               hub,
	}
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	var req services.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	collection, err := h.collectionService.CreateCollection(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "collection_created", collection)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": collection})
}

func (h *CollectionHandler) GetCollection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid collection ID")
		return
	}

	collection, err := h.collectionService.GetCollection(collectionID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": collection})
}

func (h *CollectionHandler) UpdateCollection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid collection ID")
		return
	}

	var req services.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	collection, err := h.collectionService.UpdateCollection(collectionID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "collection_updated", collection)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": collection})
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		respondUnauthorized(c)
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid collection ID")
		return
	}

	if err := h.collectionService.DeleteCollection(collectionID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.BroadcastToUser(userID, "collection_deleted", gin.H{"id": collectionID})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"message": "Collection deleted successfully"}})
}

func (h *CollectionHandler) ListMyCollections(c *gin.Context) {
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

	collections, count, err := h.collectionService.ListCollections(userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"collections": collections,
		"count":       count,
		"page":        page,
		"page_size":   pageSize,
	}})
}
