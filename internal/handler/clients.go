package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/neomatrix/timekeeper/internal/model"
	"github.com/neomatrix/timekeeper/internal/repository"
)

// ClientHandler serves the client and contact browse endpoints plus the
// archive toggle, the one local mutation on synced client data.
type ClientHandler struct {
	Clients *repository.ClientRepo
	Jobs    *repository.JobRepo
}

func NewClientHandler(clients *repository.ClientRepo, jobs *repository.JobRepo) *ClientHandler {
	return &ClientHandler{Clients: clients, Jobs: jobs}
}

// ----- DTOs -----

type clientSummary struct {
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	City       string `json:"city,omitempty"`
	IsProspect bool   `json:"is_prospect"`
	IsArchived bool   `json:"is_archived"`
}

type contactView struct {
	UUID       string `json:"uuid"`
	ClientUUID string `json:"client_uuid"`
	Name       string `json:"name"`
	IsPrimary  bool   `json:"is_primary"`
	Email      string `json:"email,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
}

func contactViewOf(ct model.Contact) contactView {
	return contactView{
		UUID:       ct.UUID,
		ClientUUID: ct.ClientUUID,
		Name:       ct.Name,
		IsPrimary:  ct.IsPrimary,
		Email:      ct.Email,
		Mobile:     ct.Mobile,
		Phone:      ct.Phone,
		Position:   ct.Position,
	}
}

// List returns every synced client.
func (h *ClientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	clients, err := h.Clients.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]clientSummary, 0, len(clients))
	for _, cl := range clients {
		out = append(out, clientSummary{
			UUID:       cl.UUID,
			Name:       cl.Name,
			Email:      cl.Email,
			Phone:      cl.Phone,
			City:       cl.City,
			IsProspect: cl.IsProspect,
			IsArchived: cl.IsArchived,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": out})
}

// Detail returns one client with the full denormalized record.
func (h *ClientHandler) Detail(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl, err := h.Clients.GetByUUID(ctx, c.Param("uuid"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"uuid":                 cl.UUID,
		"name":                 cl.Name,
		"email":                cl.Email,
		"phone":                cl.Phone,
		"fax":                  cl.Fax,
		"website":              cl.Website,
		"address":              cl.Address,
		"city":                 cl.City,
		"region":               cl.Region,
		"post_code":            cl.PostCode,
		"country":              cl.Country,
		"is_prospect":          cl.IsProspect,
		"is_archived":          cl.IsArchived,
		"account_manager_name": cl.AccountManagerName,
		"job_manager_name":     cl.JobManagerName,
		"type_name":            cl.TypeName,
	})
}

// ToggleArchive flips the client's archived flag and returns the new
// state. The flag is local bookkeeping; the next sync pass may restore
// the upstream value.
func (h *ClientHandler) ToggleArchive(c echo.Context) error {
	uuid := c.Param("uuid")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Clients.ToggleArchived(ctx, uuid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	cl, err := h.Clients.GetByUUID(ctx, uuid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"uuid": cl.UUID, "is_archived": cl.IsArchived})
}

// ListJobs returns one client's jobs.
func (h *ClientHandler) ListJobs(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	jobs, err := h.Jobs.ListByClient(ctx, c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]jobSummary, 0, len(jobs))
	for _, jc := range jobs {
		out = append(out, summarize(jc))
	}
	return c.JSON(http.StatusOK, echo.Map{"jobs": out})
}

// ListContacts returns one client's contacts, primary first.
func (h *ClientHandler) ListContacts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contacts, err := h.Clients.ListContactsByClient(ctx, c.Param("uuid"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]contactView, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, contactViewOf(ct))
	}
	return c.JSON(http.StatusOK, echo.Map{"contacts": out})
}

// ListAllContacts returns every contact across all clients.
func (h *ClientHandler) ListAllContacts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contacts, err := h.Clients.ListContacts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]contactView, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, contactViewOf(ct))
	}
	return c.JSON(http.StatusOK, echo.Map{"contacts": out})
}
