package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/breachwatch/internal/console/service"
	"github.com/aussiebroadwan/breachwatch/pkg/consolesdk"
	"github.com/aussiebroadwan/breachwatch/pkg/httpx"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleSearch handles GET /v1/catalog
//
//	@Summary		Search the breach catalog
//	@Description	Matches the query against name, slug and description. Results are paged by an opaque cursor.
//	@Tags			Catalog
//	@Security		BearerAuth
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			cursor	query		string	false	"Cursor from a previous page"
//	@Param			limit	query		int		false	"Page size (1-100, default 20)"
//	@Success		200		{object}	consolesdk.CatalogPage
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Invalid cursor or limit"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/catalog [get].
func (h *CatalogHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var limit int
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	page, err := h.CatalogService.Search(r.Context(), actorFrom(r), service.CatalogSearch{
		Query:  q.Get("q"),
		Cursor: q.Get("cursor"),
		Limit:  limit,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, consolesdk.CatalogPage{
		Items:      mapSlice(page.Items, toCatalogEntry),
		NextCursor: page.NextCursor,
	})
}

// HandleGet handles GET /v1/catalog/{id}
//
//	@Summary		Get a catalog entry
//	@Tags			Catalog
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Entry ID"
//	@Success		200	{object}	consolesdk.CatalogEntry
//	@Failure		401	{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		404	{object}	consolesdk.ErrorResponse	"Entry not found"
//	@Router			/v1/catalog/{id} [get].
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.CatalogService.Get(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCatalogEntry(e))
}

// HandleCreate handles POST /v1/admin/catalog
//
//	@Summary		Add a leaked database to the catalog
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		consolesdk.CreateCatalogEntryRequest	true	"Breach details"
//	@Success		201		{object}	consolesdk.CatalogEntry
//	@Failure		400		{object}	consolesdk.ErrorResponse	"Validation failed"
//	@Failure		401		{object}	consolesdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	consolesdk.ErrorResponse	"Caller is not a platform admin"
//	@Failure		409		{object}	consolesdk.ErrorResponse	"An entry with the same slug exists"
//	@Router			/v1/admin/catalog [post].
func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req consolesdk.CreateCatalogEntryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	e, err := h.CatalogService.Create(r.Context(), actorFrom(r), service.CreateCatalogEntryRequest{
		Name:        req.Name,
		BreachDate:  req.BreachDate,
		RecordCount: req.RecordCount,
		DataClasses: req.DataClasses,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCatalogEntry(e))
}
