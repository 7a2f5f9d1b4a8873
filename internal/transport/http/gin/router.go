package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tessera-live/tessera/internal/domain"
	redisrepo "github.com/tessera-live/tessera/internal/repository/redis"
	"github.com/tessera-live/tessera/internal/service"
	"github.com/tessera-live/tessera/internal/service/catalog"
	"github.com/tessera-live/tessera/internal/service/inventory"
	"github.com/tessera-live/tessera/internal/service/query"
	"github.com/tessera-live/tessera/internal/service/wishlist"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health + metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public API
	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/ticket-types", handleListTicketTypes(svcs))
	r.GET("/events/:id/availability", handleGetAvailability(svcs))

	r.POST("/tickets", handlePurchaseTicket(svcs, idem))
	r.GET("/tickets/:id", handleGetTicket(svcs))
	r.PATCH("/tickets/:id/status", handleUpdateTicketStatus(svcs))
	r.DELETE("/tickets/:id", handleReleaseTicket(svcs))

	buyers := r.Group("/buyers/:id")
	{
		buyers.GET("/tickets", handleListBuyerTickets(svcs))
		buyers.GET("/events/:event_id/allowance", handleGetAllowance(svcs))
		buyers.GET("/wishlist", handleListWishlist(svcs))
		buyers.GET("/wishlist/:event_id", handleWishlistContains(svcs))
		buyers.POST("/wishlist", handleAddWishlist(svcs))
		buyers.DELETE("/wishlist/:event_id", handleRemoveWishlist(svcs))
	}

	// Admin-API
	// TODO: add admin middleware
	admin := r.Group("/admin")
	{
		admin.POST("/events", handleCreateEvent(svcs))
		admin.PUT("/events/:id", handleUpdateEvent(svcs))
		admin.DELETE("/events/:id", handleDeleteEvent(svcs))
		admin.POST("/events/:id/ticket-types", handleCreateTicketType(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List events
// @Param    page       query  int  false  "1-based page"
// @Param    page_size  query  int  false  "page size"
// @Success  200  {array}  domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parseIntDefault(c.Query("page"), 1)
		pageSize := parseIntDefault(c.Query("page_size"), 20)

		events, err := svcs.Query.ListEvents(c.Request.Context(), page, pageSize)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, events, "public, max-age=30", true)
	}
}

// @Summary  Get event
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  domain.Event
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		e, err := svcs.Query.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  List ticket tiers of an event
// @Param    id  path  int  true  "Event ID"
// @Success  200  {array}   domain.TicketType
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/ticket-types [get]
func handleListTicketTypes(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		tts, err := svcs.Query.ListTicketTypesByEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, tts, "public, max-age=15", true)
	}
}

// @Summary  Get availability counters
// @Param    id  path  int  true  "Event ID"
// @Success  200  {object}  domain.EventAvailability
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		ea, err := svcs.Query.EventAvailability(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, ea, "public, max-age=15", true)
	}
}

// @Summary  Purchase ticket (idempotent)
// @Param    req body  PurchaseTicketRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} PurchaseTicketResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "event or ticket type not found"
// @Failure  409 {object} ErrorResponse "sold out / purchase limit / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Failure  503 {object} ErrorResponse "transient conflict, retry"
// @Router   /tickets [post]
func handlePurchaseTicket(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PurchaseTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemPurchase(req.TicketTypeID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		t, err := svcs.Inventory.ReserveAndIssueTicket(
			c.Request.Context(),
			req.TicketTypeID,
			req.EventID,
			req.BuyerID,
			domain.TicketStatus(req.Status),
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := PurchaseTicketResponse{
			TicketID:     t.Ticket.ID,
			EventID:      t.Ticket.EventID,
			TicketTypeID: t.Ticket.TicketTypeID,
			BuyerID:      t.Ticket.BuyerID,
			Status:       string(t.Ticket.Status),
			Price:        t.TicketType.Price.String(),
			QRCodeURL:    t.Ticket.QRCode,
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get ticket
// @Param    id  path  int  true  "Ticket ID"
// @Success  200 {object} domain.TicketWithType
// @Failure  404 {object} ErrorResponse
// @Router   /tickets/{id} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Query.GetTicket(c.Request.Context(), ticketID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, t)
	}
}

// @Summary  Update ticket status
// @Param    id  path  int  true  "Ticket ID"
// @Param    req body  UpdateTicketStatusRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "transition not allowed"
// @Router   /tickets/{id}/status [patch]
func handleUpdateTicketStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateTicketStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if err := svcs.Catalog.UpdateTicketStatus(
			c.Request.Context(),
			ticketID,
			domain.TicketStatus(req.Status),
		); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Release ticket back to inventory
// @Param    id  path  int  true  "Ticket ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /tickets/{id} [delete]
func handleReleaseTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Inventory.ReleaseTicket(c.Request.Context(), ticketID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  List buyer tickets
// @Param    id  path  int  true  "Buyer ID"
// @Success  200 {array} domain.TicketWithType
// @Router   /buyers/{id}/tickets [get]
func handleListBuyerTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		tickets, err := svcs.Query.ListBuyerTickets(c.Request.Context(), buyerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tickets)
	}
}

// @Summary  Remaining purchase allowance for an event
// @Param    id        path  int  true  "Buyer ID"
// @Param    event_id  path  int  true  "Event ID"
// @Success  200 {object} AllowanceResponse
// @Router   /buyers/{id}/events/{event_id}/allowance [get]
func handleGetAllowance(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		eventID, ok := parseInt64Param(c, "event_id")
		if !ok {
			return
		}
		a, err := svcs.Inventory.CountBuyerTicketsForEvent(c.Request.Context(), buyerID, eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AllowanceResponse{
			Count:            a.Count,
			RemainingAllowed: a.RemainingAllowed,
			Cap:              a.Cap,
		})
	}
}

// @Summary  List wishlist
// @Param    id  path  int  true  "Buyer ID"
// @Success  200 {array} domain.WishlistItem
// @Router   /buyers/{id}/wishlist [get]
func handleListWishlist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		items, err := svcs.Wishlist.List(c.Request.Context(), buyerID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary  Check wishlist membership
// @Param    id        path  int  true  "Buyer ID"
// @Param    event_id  path  int  true  "Event ID"
// @Success  200 {object} map[string]bool
// @Router   /buyers/{id}/wishlist/{event_id} [get]
func handleWishlistContains(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		eventID, ok := parseInt64Param(c, "event_id")
		if !ok {
			return
		}
		contains, err := svcs.Wishlist.Contains(c.Request.Context(), buyerID, eventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"contains": contains})
	}
}

// @Summary  Add event to wishlist
// @Param    id  path  int  true  "Buyer ID"
// @Param    req body  AddWishlistRequest true "payload"
// @Success  201 {object} AddWishlistResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already in wishlist"
// @Router   /buyers/{id}/wishlist [post]
func handleAddWishlist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req AddWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := svcs.Wishlist.Add(c.Request.Context(), buyerID, req.EventID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, AddWishlistResponse{EntryID: id})
	}
}

// @Summary  Remove event from wishlist
// @Param    id        path  int  true  "Buyer ID"
// @Param    event_id  path  int  true  "Event ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /buyers/{id}/wishlist/{event_id} [delete]
func handleRemoveWishlist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		eventID, ok := parseInt64Param(c, "event_id")
		if !ok {
			return
		}
		if err := svcs.Wishlist.Remove(c.Request.Context(), buyerID, eventID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create event with ticket tiers
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} CreateEventResponse
// @Failure  400 {object} ErrorResponse
// @Router   /admin/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		e, tiers, ok := eventFromRequest(c, req)
		if !ok {
			return
		}
		id, err := svcs.Catalog.CreateEvent(c.Request.Context(), e, tiers)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateEventResponse{EventID: id})
	}
}

// @Summary  Update event
// @Param    id  path  int  true  "Event ID"
// @Param    req body  UpdateEventRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		ends, err := parseRFC3339(req.EndsAt)
		if err != nil {
			badRequest(c, "invalid ends_at (RFC3339)")
			return
		}
		e := &domain.Event{
			ID:          eventID,
			Name:        req.Name,
			Category:    req.Category,
			StartsAt:    starts,
			EndsAt:      ends,
			City:        req.City,
			Location:    req.Location,
			Capacity:    req.Capacity,
			Description: req.Description,
			ImageURL:    req.ImageURL,
		}
		if err := svcs.Catalog.UpdateEvent(c.Request.Context(), e); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Delete event
// @Param    id  path  int  true  "Event ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Catalog.DeleteEvent(c.Request.Context(), eventID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Add ticket tier to event
// @Param    id  path  int  true  "Event ID"
// @Param    req body  TicketTypeInput true "payload"
// @Success  201 {object} CreateTicketTypeResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/events/{id}/ticket-types [post]
func handleCreateTicketType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req TicketTypeInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			badRequest(c, "invalid price")
			return
		}
		tt := &domain.TicketType{
			EventID:       eventID,
			Name:          req.Name,
			Price:         price,
			QuantityTotal: req.QuantityTotal,
		}
		id, err := svcs.Catalog.CreateTicketType(c.Request.Context(), tt)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateTicketTypeResponse{TicketTypeID: id})
	}
}

// --- Helpers ---

func eventFromRequest(c *gin.Context, req CreateEventRequest) (*domain.Event, []domain.TicketType, bool) {
	starts, err := parseRFC3339(req.StartsAt)
	if err != nil {
		badRequest(c, "invalid starts_at (RFC3339)")
		return nil, nil, false
	}
	ends, err := parseRFC3339(req.EndsAt)
	if err != nil {
		badRequest(c, "invalid ends_at (RFC3339)")
		return nil, nil, false
	}

	var tiers []domain.TicketType
	for _, in := range req.TicketTypes {
		price, err := decimal.NewFromString(in.Price)
		if err != nil {
			badRequest(c, "invalid price for tier "+in.Name)
			return nil, nil, false
		}
		tiers = append(tiers, domain.TicketType{
			Name:          in.Name,
			Price:         price,
			QuantityTotal: in.QuantityTotal,
		})
	}

	return &domain.Event{
		OrganizerID: req.OrganizerID,
		Name:        req.Name,
		Category:    req.Category,
		StartsAt:    starts,
		EndsAt:      ends,
		City:        req.City,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}, tiers, true
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// inventory service
	case errors.Is(err, inventory.ErrTicketTypeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket type not found"})
		return
	case errors.Is(err, inventory.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, inventory.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
		return
	case errors.Is(err, inventory.ErrSoldOut):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "sold out"})
		return
	case errors.Is(err, inventory.ErrPurchaseLimitExceeded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "purchase limit exceeded"})
		return
	case errors.Is(err, inventory.ErrTicketTypeEventMismatch):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "ticket type does not belong to event"})
		return
	case errors.Is(err, inventory.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid status"})
		return
	case errors.Is(err, inventory.ErrRetryable):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "transient conflict, retry"})
		return
	// catalog service
	case errors.Is(err, catalog.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, catalog.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
		return
	case errors.Is(err, catalog.ErrEventConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event conflict"})
		return
	case errors.Is(err, catalog.ErrInvalidTicketType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid ticket type"})
		return
	case errors.Is(err, catalog.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "status transition not allowed"})
		return
	// query service
	case errors.Is(err, query.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, query.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket not found"})
		return
	case errors.Is(err, query.ErrTicketTypeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "ticket type not found"})
		return
	// wishlist service
	case errors.Is(err, wishlist.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, wishlist.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "wishlist entry not found"})
		return
	case errors.Is(err, wishlist.ErrAlreadyInList):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "event already in wishlist"})
		return
	case errors.Is(err, wishlist.ErrInvalidBuyer):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid buyer"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
