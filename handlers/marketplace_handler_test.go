package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func createListing(t *testing.T, app *fiber.App, token string) models.MarketplaceListing {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/marketplace", token, fiber.Map{
		"title":        "Tower crane for rent",
		"description":  "Liebherr 85 EC-B, monthly rate",
		"category":     "equipment",
		"listing_type": "rent",
		"price":        250000,
		"location":     "Moscow",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var listing models.MarketplaceListing
	decodeBody(t, resp, &listing)
	require.True(t, listing.IsActive)
	return listing
}

func TestSoftDeleteListing(t *testing.T) {
	app, mem := newTestApp(t)
	seller := registerUser(t, app, "seller")

	listing := createListing(t, app, seller.Token)

	resp := doJSON(t, app, http.MethodDelete, "/api/marketplace/"+listing.ID.String(), seller.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Gone from the default list...
	resp = doJSON(t, app, http.MethodGet, "/api/marketplace", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listings []models.MarketplaceListing
	decodeBody(t, resp, &listings)
	require.Empty(t, listings)

	// ...but the row still exists.
	stored, err := mem.GetListing(listing.ID)
	require.NoError(t, err)
	require.False(t, stored.IsActive)
}

func TestDeleteListingByNonOwner(t *testing.T) {
	app, _ := newTestApp(t)
	seller := registerUser(t, app, "seller")
	intruder := registerUser(t, app, "intruder")

	listing := createListing(t, app, seller.Token)

	resp := doJSON(t, app, http.MethodDelete, "/api/marketplace/"+listing.ID.String(), intruder.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListingViewCount(t *testing.T) {
	app, mem := newTestApp(t)
	seller := registerUser(t, app, "seller")

	listing := createListing(t, app, seller.Token)

	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodGet, "/api/marketplace/"+listing.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	stored, err := mem.GetListing(listing.ID)
	require.NoError(t, err)
	require.Equal(t, 3, stored.ViewCount)
}

func TestListListingsTypeFilter(t *testing.T) {
	app, _ := newTestApp(t)
	seller := registerUser(t, app, "seller")

	createListing(t, app, seller.Token)
	resp := doJSON(t, app, http.MethodPost, "/api/marketplace", seller.Token, fiber.Map{
		"title":        "Rebar bundle",
		"description":  "A12 rebar, 2 tons, surplus from a finished site",
		"category":     "materials",
		"listing_type": "sell",
		"price":        90000,
		"location":     "Kazan",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/marketplace?type=sell", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listings []models.MarketplaceListing
	decodeBody(t, resp, &listings)
	require.Len(t, listings, 1)
	require.Equal(t, "Rebar bundle", listings[0].Title)
}
