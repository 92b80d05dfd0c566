package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "roombook/internal/handler/dto/request"
	resdto "roombook/internal/handler/dto/response"
	"roombook/internal/handler/middleware"
	"roombook/internal/usecase/commands"
	"roombook/internal/usecase/queries"

	"roombook/internal/domain/appointment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	commands commands.AppointmentCommands
	queries  queries.AppointmentQueries
}

func NewAppointmentHandler(cmds commands.AppointmentCommands, qs queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create appointment
// @Description Create a new appointment with room bookings
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAppointmentRequest true "Appointment request"
// @Success 201 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.commands.Create(c.Request.Context(), req.ToParams(), actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidStartTime):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing or unparsable start time",
			})
		case errors.Is(err, commands.ErrInvalidEndTime):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing or unparsable end time",
			})
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAppointment(snap))
}

// @Summary List appointments
// @Description List appointments, optionally filtered by user, room, status and time window
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param user query string false "Filter by creating user ID"
// @Param room query string false "Filter by booked room ID"
// @Param status query string false "Filter by status"
// @Param from query string false "Window start (RFC3339)"
// @Param to query string false "Window end (RFC3339)"
// @Success 200 {array} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	filter, err := parseAppointmentFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	snaps, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointments(snaps))
}

// @Summary Get appointment
// @Description Get appointment by ID
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	snap, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointment(snap))
}

// @Summary Update appointment
// @Description Partially update an appointment; omitted fields are left unchanged
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.UpdateAppointmentRequest true "Fields to update"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.commands.Update(c.Request.Context(), id, req.ToParams(), actor)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointment(snap))
}

// @Summary Approve appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/approve [put]
func (h *AppointmentHandler) Approve(c *gin.Context) {
	h.runTransition(c, func(ctx *gin.Context, id, actor uuid.UUID) (*appointment.Snapshot, error) {
		return h.commands.Approve(ctx.Request.Context(), id, actor)
	})
}

// @Summary Finish appointment
// @Description Finish an approved appointment with its authoritative final revenue
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.FinishAppointmentRequest true "Final revenue"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/finish [put]
func (h *AppointmentHandler) Finish(c *gin.Context) {
	var req reqdto.FinishAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.runTransition(c, func(ctx *gin.Context, id, actor uuid.UUID) (*appointment.Snapshot, error) {
		return h.commands.Finish(ctx.Request.Context(), id, req.FinalRevenue, actor)
	})
}

// @Summary Reject appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RejectAppointmentRequest false "Rejection reason"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/reject [put]
func (h *AppointmentHandler) Reject(c *gin.Context) {
	var req reqdto.RejectAppointmentRequest
	// An empty body is a valid rejection without reason.
	_ = c.ShouldBindJSON(&req)

	h.runTransition(c, func(ctx *gin.Context, id, actor uuid.UUID) (*appointment.Snapshot, error) {
		return h.commands.Reject(ctx.Request.Context(), id, req.Reason, actor)
	})
}

// @Summary Cancel appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id}/cancel [put]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.runTransition(c, func(ctx *gin.Context, id, actor uuid.UUID) (*appointment.Snapshot, error) {
		return h.commands.Cancel(ctx.Request.Context(), id, actor)
	})
}

// @Summary Delete appointment
// @Description Delete an appointment; its audit trail is retained
// @Tags appointments
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.commands.Delete(c.Request.Context(), id, middleware.GetUserIDPtr(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get appointment audit trail
// @Description List field-level change history for an appointment, newest first
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {array} resdto.AuditEntryResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /appointments/{id}/audit [get]
func (h *AppointmentHandler) AuditTrail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	entries, err := h.queries.AuditTrail(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuditEntries(entries))
}

func (h *AppointmentHandler) runTransition(
	c *gin.Context,
	run func(*gin.Context, uuid.UUID, uuid.UUID) (*appointment.Snapshot, error),
) {
	actor, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	snap, err := run(c, id, actor)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointment(snap))
}

func (h *AppointmentHandler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
	case errors.Is(err, commands.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, commands.ErrInvalidStatusValue):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid status value",
		})
	case errors.Is(err, appointment.ErrFinishRequiresApproved):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Appointment can only be finished from approved status",
		})
	case errors.Is(err, appointment.ErrFinalRevenueRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Final revenue is required to finish an appointment",
		})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Domain validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseAppointmentFilter(c *gin.Context) (queries.AppointmentFilter, error) {
	var filter queries.AppointmentFilter

	if v := c.Query("user"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("invalid user filter")
		}
		filter.UserID = &id
	}
	if v := c.Query("room"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errors.New("invalid room filter")
		}
		filter.RoomID = &id
	}
	if v := c.Query("status"); v != "" {
		status := appointment.Status(v)
		if !status.IsValid() {
			return filter, errors.New("invalid status filter")
		}
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("invalid from filter")
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("invalid to filter")
		}
		filter.To = &t
	}

	return filter, nil
}
