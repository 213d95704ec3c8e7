package api

import (
	"net/http"
	"strconv"

	reqdto "belizevibes-booking/internal/handler/dto/request"
	resdto "belizevibes-booking/internal/handler/dto/response"
	"belizevibes-booking/internal/handler/httperr"
	"belizevibes-booking/internal/handler/middleware"
	"belizevibes-booking/internal/pkg/errs"
	"belizevibes-booking/internal/usecase/commands"
	"belizevibes-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderIdempotencyKey     = "Idempotency-Key"
	HeaderIdempotentReplayed = "Idempotent-Replayed"
)

type BookingHandler struct {
	cmds     commands.BookingCommands
	payments commands.PaymentCommands
	q        queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, payments commands.PaymentCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, payments: payments, q: q}
}

// @Summary Create booking
// @Description Price an adventure and store a pending booking. Payment is started separately.
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "UUID; replays the first booking made with this key"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "Replayed"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	params, ok := bindCreateParams(c, commands.EndpointCreateBooking)
	if !ok {
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), params)
	if err != nil {
		abortWithCommandError(c, err, "Failed to create booking")
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
		c.Header(HeaderIdempotentReplayed, "true")
	}
	res, err := resdto.FromBooking(result.Booking)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	c.Header("Location", "/api/bookings/"+result.Booking.ID().String())
	c.JSON(status, res)
}

// @Summary Get booking
// @Description Get a booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrBookingNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List my bookings
// @Description Bookings of the authenticated traveler, newest first, with keyset pagination
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 20, max 100)"
// @Param after query string false "Cursor from next_cursor"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}

	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListByUser(c.Request.Context(), userID, cursor, limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}
	res, err := resdto.FromBookingList(items, next)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Start payment for a booking
// @Description Issue a payment intent for a pending booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /api/bookings/{id}/payment-intent [post]
func (h *BookingHandler) CreatePaymentIntent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	intent, err := h.payments.IssueIntentForBooking(c.Request.Context(), id)
	if err != nil {
		abortWithCommandError(c, err, "Failed to load booking")
		return
	}
	res, err := resdto.FromIntent(intent)
	if err != nil {
		abortRenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bindCreateParams aborts the request itself when it returns false.
func bindCreateParams(c *gin.Context, endpoint string) (commands.CreateBookingParams, bool) {
	var key *uuid.UUID
	if raw := c.GetHeader(HeaderIdempotencyKey); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Idempotency-Key must be a UUID", nil)
			return commands.CreateBookingParams{}, false
		}
		key = &parsed
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return commands.CreateBookingParams{}, false
	}

	return commands.CreateBookingParams{
		Input:          req.ToInput(middleware.GetOptionalUserID(c)),
		IdempotencyKey: key,
		Endpoint:       endpoint,
	}, true
}
