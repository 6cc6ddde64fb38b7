package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func createGuarantee(t *testing.T, app *fiber.App, customerToken, contractorID string) models.BankGuarantee {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/guarantees", customerToken, fiber.Map{
		"contractor_id": contractorID,
		"amount":        1000000,
		"description":   "Performance guarantee",
		"start_date":    "2026-09-01T00:00:00Z",
		"end_date":      "2027-09-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var guarantee models.BankGuarantee
	decodeBody(t, resp, &guarantee)
	require.Equal(t, models.GuaranteeStatusPending, guarantee.Status)
	return guarantee
}

func TestGuaranteeStatusTransition(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerUser(t, app, "customer")
	contractor := registerUser(t, app, "contractor")

	guarantee := createGuarantee(t, app, customer.Token, contractor.User.ID.String())

	resp := doJSON(t, app, http.MethodPut, "/api/guarantees/"+guarantee.ID.String()+"/status", contractor.Token, fiber.Map{
		"status": models.GuaranteeStatusActive,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.BankGuarantee
	decodeBody(t, resp, &updated)
	require.Equal(t, models.GuaranteeStatusActive, updated.Status)
}

func TestGuaranteeInvalidStatus(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerUser(t, app, "customer")
	contractor := registerUser(t, app, "contractor")

	guarantee := createGuarantee(t, app, customer.Token, contractor.User.ID.String())

	resp := doJSON(t, app, http.MethodPut, "/api/guarantees/"+guarantee.ID.String()+"/status", customer.Token, fiber.Map{
		"status": "settled",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGuaranteeAccessByThirdParty(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerUser(t, app, "customer")
	contractor := registerUser(t, app, "contractor")
	outsider := registerUser(t, app, "outsider")

	guarantee := createGuarantee(t, app, customer.Token, contractor.User.ID.String())

	resp := doJSON(t, app, http.MethodGet, "/api/guarantees/"+guarantee.ID.String(), outsider.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/guarantees", contractor.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []models.BankGuarantee
	decodeBody(t, resp, &mine)
	require.Len(t, mine, 1)
}

func TestGuaranteeEndBeforeStart(t *testing.T) {
	app, _ := newTestApp(t)
	customer := registerUser(t, app, "customer")
	contractor := registerUser(t, app, "contractor")

	resp := doJSON(t, app, http.MethodPost, "/api/guarantees", customer.Token, fiber.Map{
		"contractor_id": contractor.User.ID.String(),
		"amount":        1000000,
		"start_date":    "2027-09-01T00:00:00Z",
		"end_date":      "2026-09-01T00:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
