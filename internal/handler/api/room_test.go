//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"roombook/internal/domain/room"
	"roombook/internal/handler/api"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/usecase/commands"
	"roombook/tests/common/httptest"
	commandsmock "roombook/tests/mock/commands"
	queriesmock "roombook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RoomHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRoomCommands
	mockQueries  *queriesmock.MockRoomQueries
	handler      *api.RoomHandler
}

func (s *RoomHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRoomCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRoomQueries(s.mockCtrl)
	s.handler = api.NewRoomHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/rooms", s.handler.CreateRoom)
	s.router.GET("/rooms", s.handler.ListRooms)
	s.router.PATCH("/rooms/:id", s.handler.UpdateRoom)
	s.router.POST("/locations", s.handler.CreateLocation)
	s.router.GET("/locations", s.handler.ListLocations)
	s.router.DELETE("/locations/:id", s.handler.DeleteLocation)
}

func (s *RoomHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRoomHandlerSuite(t *testing.T) {
	suite.Run(t, new(RoomHandlerTestSuite))
}

func (s *RoomHandlerTestSuite) buildRoom() *room.Room {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	r, err := room.NewRoom("Conference Room A", uuid.New(), now)
	s.Require().NoError(err)
	return r
}

// ================================================================================
// TestCreateRoom
// ================================================================================

func (s *RoomHandlerTestSuite) TestCreateRoom() {
	returnRoom := s.buildRoom()
	reqBody := map[string]any{"name": returnRoom.Name, "locationId": returnRoom.LocationID}

	s.Run("success: returns 201 Created with RoomResponse", func() {
		expected := commands.CreateRoomParams{Name: returnRoom.Name, LocationID: returnRoom.LocationID}
		s.mockCommands.EXPECT().CreateRoom(gomock.Any(), expected).
			Return(returnRoom, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms", reqBody, "")

		var response resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnRoom.ID, response.ID)
		s.Equal(returnRoom.Name, response.Name)
		s.True(response.Active)
	})

	s.Run("error: 400 Bad Request when name is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms",
			map[string]any{"locationId": uuid.New()}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 404 Not Found for unknown location", func() {
		s.mockCommands.EXPECT().CreateRoom(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrLocationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rooms", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Location not found")
	})
}

// ================================================================================
// TestUpdateRoom
// ================================================================================

func (s *RoomHandlerTestSuite) TestUpdateRoom() {
	returnRoom := s.buildRoom()
	url := "/rooms/" + returnRoom.ID.String()

	s.Run("success: deactivating a room", func() {
		active := false
		returnRoom.Active = false
		expected := commands.UpdateRoomParams{Active: &active}

		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), returnRoom.ID, expected).
			Return(returnRoom, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"active": false}, "")

		var response resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Active)
	})

	s.Run("error: 404 Not Found for missing room", func() {
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), returnRoom.ID, gomock.Any()).
			Return(nil, commands.ErrRoomNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"name": "Annex"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Room not found")
	})

	s.Run("error: 422 on empty name", func() {
		s.mockCommands.EXPECT().UpdateRoom(gomock.Any(), returnRoom.ID, gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"name": ""}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Domain validation failed")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/rooms/invalid-uuid",
			map[string]any{"name": "Annex"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid ID format")
	})
}

// ================================================================================
// TestListRooms
// ================================================================================

func (s *RoomHandlerTestSuite) TestListRooms() {
	s.Run("success: returns the room list", func() {
		rooms := []*room.Room{s.buildRoom(), s.buildRoom()}
		s.mockQueries.EXPECT().ListRooms(gomock.Any()).Return(rooms, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil, "")

		var response []resdto.RoomResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("error: returns 500 Internal Server Error on query error", func() {
		s.mockQueries.EXPECT().ListRooms(gomock.Any()).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rooms", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestLocations
// ================================================================================

func (s *RoomHandlerTestSuite) TestLocations() {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	loc, err := room.NewLocation("Headquarters", nil, nil, now)
	s.Require().NoError(err)

	s.Run("success: create location returns 201 Created", func() {
		expected := commands.CreateLocationParams{Name: loc.Name}
		s.mockCommands.EXPECT().CreateLocation(gomock.Any(), expected).
			Return(loc, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/locations",
			map[string]any{"name": loc.Name}, "")

		var response resdto.LocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(loc.ID, response.ID)
	})

	s.Run("success: list locations", func() {
		s.mockQueries.EXPECT().ListLocations(gomock.Any()).
			Return([]*room.Location{loc}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/locations", nil, "")

		var response []resdto.LocationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: delete location returns 204", func() {
		s.mockCommands.EXPECT().DeleteLocation(gomock.Any(), loc.ID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/locations/"+loc.ID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 Conflict while rooms reference the location", func() {
		s.mockCommands.EXPECT().DeleteLocation(gomock.Any(), loc.ID).
			Return(commands.ErrLocationInUse).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/locations/"+loc.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "rooms assigned")
	})

	s.Run("error: 404 Not Found for missing location", func() {
		s.mockCommands.EXPECT().DeleteLocation(gomock.Any(), loc.ID).
			Return(commands.ErrLocationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/locations/"+loc.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Location not found")
	})
}
