package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/tripmates/trip_planner_app/internal/core/services"
	"github.com/tripmates/trip_planner_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RoomRepository (based on RoomService usage) ---
type MockRoomRepository struct {
	mock.Mock
	FindRoomByIDFn      func(ctx context.Context, roomID string) (*domain.Room, error)
	FindRoomMembersFn   func(ctx context.Context, roomID string) ([]domain.RoomMember, error)
	FindMemberByIDFn    func(ctx context.Context, memberID string) (*domain.RoomMember, error)
	FindMemberByEmailFn func(ctx context.Context, roomID, email string) (*domain.RoomMember, error)
	SaveRoomFn          func(ctx context.Context, room domain.Room) error
	AddRoomMemberFn     func(ctx context.Context, member domain.RoomMember) error
}

func (m *MockRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	if m.FindRoomByIDFn != nil {
		return m.FindRoomByIDFn(ctx, roomID)
	}
	args := m.Called(ctx, roomID)
	var room *domain.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*domain.Room)
	}
	return room, args.Error(1)
}

func (m *MockRoomRepository) FindRoomMembers(ctx context.Context, roomID string) ([]domain.RoomMember, error) {
	if m.FindRoomMembersFn != nil {
		return m.FindRoomMembersFn(ctx, roomID)
	}
	args := m.Called(ctx, roomID)
	var members []domain.RoomMember
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.RoomMember)
	}
	return members, args.Error(1)
}

func (m *MockRoomRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.RoomMember, error) {
	if m.FindMemberByIDFn != nil {
		return m.FindMemberByIDFn(ctx, memberID)
	}
	args := m.Called(ctx, memberID)
	var member *domain.RoomMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.RoomMember)
	}
	return member, args.Error(1)
}

func (m *MockRoomRepository) FindMemberByEmail(ctx context.Context, roomID, email string) (*domain.RoomMember, error) {
	if m.FindMemberByEmailFn != nil {
		return m.FindMemberByEmailFn(ctx, roomID, email)
	}
	args := m.Called(ctx, roomID, email)
	var member *domain.RoomMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.RoomMember)
	}
	return member, args.Error(1)
}

func (m *MockRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	if m.SaveRoomFn != nil {
		return m.SaveRoomFn(ctx, room)
	}
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) AddRoomMember(ctx context.Context, member domain.RoomMember) error {
	if m.AddRoomMemberFn != nil {
		return m.AddRoomMemberFn(ctx, member)
	}
	args := m.Called(ctx, member)
	return args.Error(0)
}

// --- Test Suite ---
type RoomServiceTestSuite struct {
	suite.Suite
	mockRoomRepo *MockRoomRepository
	service      portssvc.RoomSvcFacade
}

func (suite *RoomServiceTestSuite) SetupTest() {
	suite.mockRoomRepo = new(MockRoomRepository)
	suite.service = services.NewRoomService(suite.mockRoomRepo, services.TokenConfig{
		Secret:         "test-secret",
		ExpiryDuration: time.Hour,
		Issuer:         "trip-planner-test",
	})
}

// --- CreateRoom Tests ---
func (suite *RoomServiceTestSuite) TestCreateRoom_Success() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	password := "password123"

	suite.mockRoomRepo.On("SaveRoom", ctx, mock.MatchedBy(func(room domain.Room) bool {
		return room.RoomID == roomID && room.PasswordHash != password && utils.CheckPasswordHash(password, room.PasswordHash)
	})).Return(nil).Once()

	room, err := suite.service.CreateRoom(ctx, roomID, password)

	suite.Require().NoError(err)
	suite.Require().NotNil(room)
	suite.Equal(roomID, room.RoomID)
	suite.NotEqual(password, room.PasswordHash)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestCreateRoom_DuplicateCode() {
	ctx := context.Background()
	roomID := "tokyo-2026"

	suite.mockRoomRepo.On("SaveRoom", ctx, mock.AnythingOfType("domain.Room")).Return(apperrors.NewConflictError("room code already taken")).Once()

	room, err := suite.service.CreateRoom(ctx, roomID, "password123")

	suite.Require().Error(err)
	suite.Nil(room)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

// --- JoinRoom Tests ---
func (suite *RoomServiceTestSuite) TestJoinRoom_NewMember() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID, PasswordHash: hash}, nil).Once()
	suite.mockRoomRepo.On("FindMemberByEmail", ctx, roomID, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRoomRepo.On("AddRoomMember", ctx, mock.MatchedBy(func(member domain.RoomMember) bool {
		return member.RoomID == roomID && member.Name == "Alice" && member.Email == "alice@example.com" && member.MemberID != ""
	})).Return(nil).Once()

	member, token, err := suite.service.JoinRoom(ctx, roomID, password, "Alice", "alice@example.com")

	suite.Require().NoError(err)
	suite.Require().NotNil(member)
	suite.NotEmpty(member.MemberID)
	suite.NotEmpty(token)

	claims, err := utils.ParseRoomToken(token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(member.MemberID, claims.Subject)
	suite.Equal(roomID, claims.RoomID)

	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestJoinRoom_ExistingMemberReused() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	password := "password123"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	existing := &domain.RoomMember{
		MemberID: uuid.NewString(),
		RoomID:   roomID,
		Name:     "Alice",
		Email:    "alice@example.com",
	}

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID, PasswordHash: hash}, nil).Once()
	suite.mockRoomRepo.On("FindMemberByEmail", ctx, roomID, "alice@example.com").Return(existing, nil).Once()

	member, token, err := suite.service.JoinRoom(ctx, roomID, password, "Alice", "alice@example.com")

	suite.Require().NoError(err)
	suite.Equal(existing.MemberID, member.MemberID)
	suite.NotEmpty(token)
	// No AddRoomMember call expected.
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestJoinRoom_WrongPassword() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	hash, err := utils.HashPassword("correct-password")
	suite.Require().NoError(err)

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID, PasswordHash: hash}, nil).Once()

	member, token, err := suite.service.JoinRoom(ctx, roomID, "wrong-password", "Alice", "alice@example.com")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(member)
	suite.Empty(token)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestJoinRoom_RoomNotFound() {
	ctx := context.Background()
	roomID := "nope"

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(nil, apperrors.ErrNotFound).Once()

	member, token, err := suite.service.JoinRoom(ctx, roomID, "password123", "Alice", "alice@example.com")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(member)
	suite.Empty(token)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

// --- GetRoomDetails Tests ---
func (suite *RoomServiceTestSuite) TestGetRoomDetails_Success() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	members := []domain.RoomMember{
		{MemberID: uuid.NewString(), RoomID: roomID, Name: "Alice"},
		{MemberID: uuid.NewString(), RoomID: roomID, Name: "Bob"},
	}

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindRoomMembers", ctx, roomID).Return(members, nil).Once()

	details, err := suite.service.GetRoomDetails(ctx, roomID)

	suite.Require().NoError(err)
	suite.Equal(roomID, details.Room.RoomID)
	suite.Len(details.Members, 2)
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func (suite *RoomServiceTestSuite) TestGetRoomDetails_MembersError() {
	ctx := context.Background()
	roomID := "tokyo-2026"
	expectedErr := assert.AnError

	suite.mockRoomRepo.On("FindRoomByID", ctx, roomID).Return(&domain.Room{RoomID: roomID}, nil).Once()
	suite.mockRoomRepo.On("FindRoomMembers", ctx, roomID).Return(nil, expectedErr).Once()

	details, err := suite.service.GetRoomDetails(ctx, roomID)

	suite.Require().Error(err)
	suite.Nil(details)
	suite.Contains(err.Error(), expectedErr.Error())
	suite.mockRoomRepo.AssertExpectations(suite.T())
}

func TestRoomServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RoomServiceTestSuite))
}
