package mapping

import (
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/tripmates/trip_planner_app/internal/models"
)

// ToModelRoom converts a domain.Room to its database model.
func ToModelRoom(room domain.Room) models.Room {
	m := models.Room{
		RoomID:       room.RoomID,
		PasswordHash: room.PasswordHash,
		CreatedAt:    room.CreatedAt,
	}
	if room.CreatedBy != "" {
		createdBy := room.CreatedBy
		m.CreatedBy = &createdBy
	}
	return m
}

// ToDomainRoom converts a database room model to the domain entity.
func ToDomainRoom(m models.Room) domain.Room {
	room := domain.Room{
		RoomID:       m.RoomID,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
	if m.CreatedBy != nil {
		room.CreatedBy = *m.CreatedBy
	}
	return room
}

// ToModelRoomMember converts a domain.RoomMember to its database model.
func ToModelRoomMember(member domain.RoomMember) models.RoomMember {
	return models.RoomMember{
		MemberID: member.MemberID,
		RoomID:   member.RoomID,
		Name:     member.Name,
		Email:    member.Email,
		JoinedAt: member.JoinedAt,
	}
}

// ToDomainRoomMember converts a database member model to the domain entity.
func ToDomainRoomMember(m models.RoomMember) domain.RoomMember {
	return domain.RoomMember{
		MemberID: m.MemberID,
		RoomID:   m.RoomID,
		Name:     m.Name,
		Email:    m.Email,
		JoinedAt: m.JoinedAt,
	}
}

// ToDomainRoomMembers converts a slice of member models.
func ToDomainRoomMembers(ms []models.RoomMember) []domain.RoomMember {
	members := make([]domain.RoomMember, len(ms))
	for i, m := range ms {
		members[i] = ToDomainRoomMember(m)
	}
	return members
}
