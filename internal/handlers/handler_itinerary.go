package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/dto"
	"github.com/tripmates/trip_planner_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// itineraryHandler handles HTTP requests related to itineraries.
type itineraryHandler struct {
	itineraryService portssvc.ItinerarySvcFacade
}

// newItineraryHandler creates a new itineraryHandler.
func newItineraryHandler(is portssvc.ItinerarySvcFacade) *itineraryHandler {
	return &itineraryHandler{
		itineraryService: is,
	}
}

// registerItineraryRoutes registers routes for itineraries nested under a room.
func registerItineraryRoutes(rg *gin.RouterGroup, itineraryService portssvc.ItinerarySvcFacade) {
	h := newItineraryHandler(itineraryService)

	itineraries := rg.Group("/rooms/:room_id/itineraries")
	{
		itineraries.POST("", h.createItinerary)
		itineraries.GET("", h.listItineraries)
		itineraries.GET("/:itinerary_id", h.getItinerary)
		itineraries.PUT("/:itinerary_id", h.updateItinerary)
		itineraries.DELETE("/:itinerary_id", h.deleteItinerary)
	}
}

// createItinerary godoc
// @Summary Create an itinerary
// @Description Creates a day-by-day plan for the room's trip, optionally with activities.
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   room_id path string true "Room code"
// @Param   itinerary body dto.CreateItineraryRequest true "Itinerary details"
// @Success 201 {object} dto.ItineraryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token not scoped to this room"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to create itinerary"
// @Security BearerAuth
// @Router /rooms/{room_id}/itineraries [post]
func (h *itineraryHandler) createItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	var req dto.CreateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItinerary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itinerary, err := h.itineraryService.CreateItinerary(c.Request.Context(), roomID, creatorID, req.ToCreateItineraryInput())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		default:
			logger.Error("Failed to create itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create itinerary"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToItineraryResponse(itinerary))
}

// listItineraries godoc
// @Summary List room itineraries
// @Description Returns every itinerary of the room with its activities, ordered by start date.
// @Tags itineraries
// @Produce  json
// @Param   room_id path string true "Room code"
// @Success 200 {array} dto.ItineraryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token not scoped to this room"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to list itineraries"
// @Security BearerAuth
// @Router /rooms/{room_id}/itineraries [get]
func (h *itineraryHandler) listItineraries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	itineraries, err := h.itineraryService.ListRoomItineraries(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		logger.Error("Failed to list itineraries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list itineraries"})
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponses(itineraries))
}

// getItinerary godoc
// @Summary Get an itinerary
// @Description Returns a single itinerary with its activities.
// @Tags itineraries
// @Produce  json
// @Param   room_id path string true "Room code"
// @Param   itinerary_id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token not scoped to this room"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to fetch itinerary"
// @Security BearerAuth
// @Router /rooms/{room_id}/itineraries/{itinerary_id} [get]
func (h *itineraryHandler) getItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("itinerary_id")

	itinerary, err := h.itineraryService.GetItinerary(c.Request.Context(), itineraryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
			return
		}
		logger.Error("Failed to fetch itinerary from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch itinerary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponse(itinerary))
}

// updateItinerary godoc
// @Summary Update an itinerary
// @Description Applies a partial update; a provided activities list replaces the existing one.
// @Tags itineraries
// @Accept  json
// @Produce  json
// @Param   room_id path string true "Room code"
// @Param   itinerary_id path string true "Itinerary ID"
// @Param   itinerary body dto.UpdateItineraryRequest true "Fields to update"
// @Success 200 {object} dto.ItineraryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token not scoped to this room"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to update itinerary"
// @Security BearerAuth
// @Router /rooms/{room_id}/itineraries/{itinerary_id} [put]
func (h *itineraryHandler) updateItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("itinerary_id")

	var req dto.UpdateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItinerary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	callerID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	itinerary, err := h.itineraryService.UpdateItinerary(c.Request.Context(), itineraryID, callerID, req.ToUpdateItineraryInput())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		default:
			logger.Error("Failed to update itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update itinerary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToItineraryResponse(itinerary))
}

// deleteItinerary godoc
// @Summary Delete an itinerary
// @Description Removes an itinerary and its activities. Only its creator may delete it.
// @Tags itineraries
// @Produce  json
// @Param   room_id path string true "Room code"
// @Param   itinerary_id path string true "Itinerary ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not the creator"
// @Failure 404 {object} map[string]string "Itinerary not found"
// @Failure 500 {object} map[string]string "Failed to delete itinerary"
// @Security BearerAuth
// @Router /rooms/{room_id}/itineraries/{itinerary_id} [delete]
func (h *itineraryHandler) deleteItinerary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	itineraryID := c.Param("itinerary_id")

	callerID, ok := middleware.GetMemberIDFromContext(c)
	if !ok {
		logger.Error("Member ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.itineraryService.DeleteItinerary(c.Request.Context(), itineraryID, callerID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Itinerary not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the creator may delete this itinerary"})
		default:
			logger.Error("Failed to delete itinerary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete itinerary"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
