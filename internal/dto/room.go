package dto

import (
	"time"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// CreateRoomRequest defines the data needed to create a room.
type CreateRoomRequest struct {
	RoomID   string `json:"roomId" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=4"`
}

// JoinRoomRequest defines the data needed to join an existing room.
type JoinRoomRequest struct {
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,max=128"`
	Email    string `json:"email" binding:"required,email"`
}

// RoomMemberResponse defines the data returned for a room member. The _id
// key mirrors what existing clients already consume.
type RoomMemberResponse struct {
	MemberID string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// RoomResponse defines the data returned for a room.
type RoomResponse struct {
	RoomID    string    `json:"roomId"`
	CreatedAt time.Time `json:"createdAt"`
}

// JoinRoomResponse is returned after a successful join: the membership
// record plus the access token scoped to the room.
type JoinRoomResponse struct {
	Member RoomMemberResponse `json:"member"`
	Token  string             `json:"token"`
}

// RoomDetailsResponse combines a room with its resolved member list.
type RoomDetailsResponse struct {
	Room    RoomResponse         `json:"room"`
	Members []RoomMemberResponse `json:"members"`
}

// ToRoomResponse converts a domain.Room to RoomResponse DTO.
func ToRoomResponse(room *domain.Room) RoomResponse {
	return RoomResponse{
		RoomID:    room.RoomID,
		CreatedAt: room.CreatedAt,
	}
}

// ToRoomMemberResponse converts a domain.RoomMember to RoomMemberResponse DTO.
func ToRoomMemberResponse(member *domain.RoomMember) RoomMemberResponse {
	return RoomMemberResponse{
		MemberID: member.MemberID,
		Name:     member.Name,
		Email:    member.Email,
	}
}

// ToRoomMemberResponses converts a slice of domain.RoomMember to []RoomMemberResponse.
func ToRoomMemberResponses(members []domain.RoomMember) []RoomMemberResponse {
	responses := make([]RoomMemberResponse, len(members))
	for i, member := range members {
		responses[i] = ToRoomMemberResponse(&member)
	}
	return responses
}
