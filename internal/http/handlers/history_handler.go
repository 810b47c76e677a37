// History HTTP handlers.
//
// This file exposes REST endpoints for the server-side chat archive:
//   - GET    /rooms/{name}/history   (list paginated archived messages)
//   - DELETE /rooms/{name}/history   (purge a room's archive)
//
// The archive is written behind the relay as broadcast chat flows through it;
// these endpoints only read it back. Archived messages are returned in
// arrival order, oldest first.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetwire/go-room-chat/internal/domain"
	"github.com/meetwire/go-room-chat/internal/services"
	"github.com/meetwire/go-room-chat/internal/utils"
)

//
// DTOs
//

// Pagination carries page metadata shared by all paginated list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListHistoryResponse contains a page of archived messages and pagination
// metadata.
type ListHistoryResponse struct {
	Room       string                   `json:"room" example:"standup"`
	Messages   []domain.ArchivedMessage `json:"messages"`
	Pagination Pagination               `json:"pagination"`
}

// PurgeHistoryResponse reports how many archived messages a purge removed.
type PurgeHistoryResponse struct {
	Room    string `json:"room" example:"standup"`
	Removed int64  `json:"removed" example:"42"`
}

//
// Helpers
//

// clampHistoryPagination parses page/page_size from query parameters, applies
// sane defaults and caps, and returns the validated (page, pageSize).
func clampHistoryPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

// totalPages computes ceil(total / pageSize) without floats.
func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

//
// Handlers
//

// ListHistory godoc
// @ID          listHistory
// @Summary     List a room's archived messages
// @Description Returns a paginated list of the room's archived broadcast chat, oldest first.
// @Tags        History
// @Produce     json
//
// @Param       name       path   string  true  "Room name"       example(standup)
// @Param       page       query  int     false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListHistoryResponse
// @Failure     404  {object} handlers.ErrorResponse "History disabled"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /rooms/{name}/history [get]
func (h *Handlers) ListHistory(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	page, pageSize := clampHistoryPagination(c)

	items, total, err := h.historySvc.ListPage(ctx, name, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrHistoryDisabled) {
			fail(c, http.StatusNotFound, ErrCodeHistoryDisabled, "history archive is disabled")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	if items == nil {
		items = []domain.ArchivedMessage{}
	}

	tp := totalPages(total, pageSize)
	ok(c, http.StatusOK, ListHistoryResponse{
		Room:     name,
		Messages: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: tp,
			HasNext:    page < tp,
		},
	})
}

// PurgeHistory godoc
// @ID          purgeHistory
// @Summary     Purge a room's archive
// @Description Deletes every archived message of the given room and reports the count.
// @Tags        History
// @Produce     json
//
// @Param       name  path  string  true  "Room name"  example(standup)
//
// @Success     200  {object} handlers.PurgeHistoryResponse
// @Failure     404  {object} handlers.ErrorResponse "History disabled"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /rooms/{name}/history [delete]
func (h *Handlers) PurgeHistory(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	removed, err := h.historySvc.Purge(ctx, name)
	if err != nil {
		if errors.Is(err, services.ErrHistoryDisabled) {
			fail(c, http.StatusNotFound, ErrCodeHistoryDisabled, "history archive is disabled")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodePurgeFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, PurgeHistoryResponse{Room: name, Removed: removed})
}
