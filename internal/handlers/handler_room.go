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
	"github.com/ulule/limiter/v3"
)

// roomHandler handles HTTP requests related to rooms.
type roomHandler struct {
	roomService portssvc.RoomSvcFacade
}

// newRoomHandler creates a new roomHandler.
func newRoomHandler(rs portssvc.RoomSvcFacade) *roomHandler {
	return &roomHandler{
		roomService: rs,
	}
}

// registerPublicRoomRoutes registers the unauthenticated room endpoints.
// Create and join accept a password, so both sit behind the rate limiter.
func registerPublicRoomRoutes(r *gin.Engine, roomService portssvc.RoomSvcFacade, publicLimiter *limiter.Limiter) {
	h := newRoomHandler(roomService)

	rooms := r.Group("/rooms", middleware.RateLimit(publicLimiter))
	{
		rooms.POST("", h.createRoom)
		rooms.POST("/:room_id/join", h.joinRoom)
	}
}

// registerRoomRoutes registers the authenticated room endpoints.
func registerRoomRoutes(rg *gin.RouterGroup, roomService portssvc.RoomSvcFacade) {
	h := newRoomHandler(roomService)

	rooms := rg.Group("/rooms/:room_id")
	{
		rooms.GET("", h.getRoomDetails)
	}
}

// createRoom godoc
// @Summary Create a new room
// @Description Creates a password-protected planning room with the chosen room code.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   room body dto.CreateRoomRequest true "Room code and password"
// @Success 201 {object} dto.RoomResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Room code already taken"
// @Failure 500 {object} map[string]string "Failed to create room"
// @Router /rooms [post]
func (h *roomHandler) createRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRoom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), req.RoomID, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Room code is already taken"})
			return
		}
		logger.Error("Failed to create room in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create room"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToRoomResponse(room))
}

// joinRoom godoc
// @Summary Join a room
// @Description Verifies the room password, registers the caller as a member and returns a room-scoped access token.
// @Tags rooms
// @Accept  json
// @Produce  json
// @Param   room_id path string true "Room code"
// @Param   member body dto.JoinRoomRequest true "Password plus the joining member's name and email"
// @Success 200 {object} dto.JoinRoomResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Incorrect password"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to join room"
// @Router /rooms/{room_id}/join [post]
func (h *roomHandler) joinRoom(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	var req dto.JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for JoinRoom", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	member, token, err := h.roomService.JoinRoom(c.Request.Context(), roomID, req.Password, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		case errors.Is(err, apperrors.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		default:
			logger.Error("Failed to join room in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join room"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.JoinRoomResponse{
		Member: dto.ToRoomMemberResponse(member),
		Token:  token,
	})
}

// getRoomDetails godoc
// @Summary Get room details
// @Description Returns the room and its member list.
// @Tags rooms
// @Produce  json
// @Param   room_id path string true "Room code"
// @Success 200 {object} dto.RoomDetailsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Token not scoped to this room"
// @Failure 404 {object} map[string]string "Room not found"
// @Failure 500 {object} map[string]string "Failed to fetch room"
// @Security BearerAuth
// @Router /rooms/{room_id} [get]
func (h *roomHandler) getRoomDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	roomID := c.Param("room_id")

	details, err := h.roomService.GetRoomDetails(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		logger.Error("Failed to fetch room details from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room"})
		return
	}

	c.JSON(http.StatusOK, dto.RoomDetailsResponse{
		Room:    dto.ToRoomResponse(&details.Room),
		Members: dto.ToRoomMemberResponses(details.Members),
	})
}
