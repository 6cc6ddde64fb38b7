package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func createTender(t *testing.T, app *fiber.App, token string) models.Tender {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/tenders", token, fiber.Map{
		"title":       "Foundation works",
		"description": "Pour a concrete foundation for a two-storey house",
		"category":    "construction",
		"location":    "Moscow",
		"budget":      500000,
		"deadline":    "2027-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var tender models.Tender
	decodeBody(t, resp, &tender)
	require.Equal(t, models.TenderStatusOpen, tender.Status)
	return tender
}

func TestCreateAndGetTender(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")

	tender := createTender(t, app, owner.Token)

	resp := doJSON(t, app, http.MethodGet, "/api/tenders/"+tender.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Tender
	decodeBody(t, resp, &fetched)
	require.Equal(t, tender.ID, fetched.ID)
	require.Equal(t, 1, fetched.ViewCount)
}

func TestDeleteTenderByNonOwner(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")
	intruder := registerUser(t, app, "intruder")

	tender := createTender(t, app, owner.Token)

	resp := doJSON(t, app, http.MethodDelete, "/api/tenders/"+tender.ID.String(), intruder.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/api/tenders/"+tender.ID.String(), owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/tenders/"+tender.ID.String(), "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTenderByNonOwner(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")
	intruder := registerUser(t, app, "intruder")

	tender := createTender(t, app, owner.Token)

	resp := doJSON(t, app, http.MethodPut, "/api/tenders/"+tender.ID.String(), intruder.Token, fiber.Map{
		"title": "Hijacked title",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateTenderStripsProtectedFields(t *testing.T) {
	app, mem := newTestApp(t)
	owner := registerUser(t, app, "owner")

	tender := createTender(t, app, owner.Token)

	resp := doJSON(t, app, http.MethodPut, "/api/tenders/"+tender.ID.String(), owner.Token, fiber.Map{
		"title":      "Updated title",
		"status":     models.TenderStatusCompleted,
		"view_count": 9000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := mem.GetTender(tender.ID)
	require.NoError(t, err)
	require.Equal(t, "Updated title", stored.Title)
	require.Equal(t, models.TenderStatusOpen, stored.Status)
	require.Equal(t, 0, stored.ViewCount)
}

func TestListTendersFilters(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")

	createTender(t, app, owner.Token)
	resp := doJSON(t, app, http.MethodPost, "/api/tenders", owner.Token, fiber.Map{
		"title":       "Roof repair",
		"description": "Replace slate roofing on a warehouse",
		"category":    "repair",
		"location":    "Kazan",
		"budget":      120000,
		"deadline":    "2027-03-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/tenders?category=repair", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var filtered []models.Tender
	decodeBody(t, resp, &filtered)
	require.Len(t, filtered, 1)
	require.Equal(t, "Roof repair", filtered[0].Title)

	resp = doJSON(t, app, http.MethodGet, "/api/tenders?search=foundation", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var searched []models.Tender
	decodeBody(t, resp, &searched)
	require.Len(t, searched, 1)
	require.Equal(t, "Foundation works", searched[0].Title)
}
