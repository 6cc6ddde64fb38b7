package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func placeBid(t *testing.T, app *fiber.App, token, tenderID string, amount float64) models.TenderBid {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/tenders/"+tenderID+"/bids", token, fiber.Map{
		"amount":         amount,
		"description":    "We can do this",
		"timeframe_days": 30,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var bid models.TenderBid
	decodeBody(t, resp, &bid)
	return bid
}

func TestBidOnOwnTender(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")

	tender := createTender(t, app, owner.Token)

	resp := doJSON(t, app, http.MethodPost, "/api/tenders/"+tender.ID.String()+"/bids", owner.Token, fiber.Map{
		"amount":         100000,
		"timeframe_days": 10,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAcceptBidSingleWinner(t *testing.T) {
	app, mem := newTestApp(t)
	owner := registerUser(t, app, "owner")
	first := registerUser(t, app, "first")
	second := registerUser(t, app, "second")

	tender := createTender(t, app, owner.Token)
	firstBid := placeBid(t, app, first.Token, tender.ID.String(), 450000)
	secondBid := placeBid(t, app, second.Token, tender.ID.String(), 480000)

	resp := doJSON(t, app, http.MethodPost, "/api/tenders/bids/"+firstBid.ID.String()+"/accept", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Accepting the second bid afterwards must move the flag, not duplicate it.
	resp = doJSON(t, app, http.MethodPost, "/api/tenders/bids/"+secondBid.ID.String()+"/accept", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	bids, err := mem.ListBidsForTender(tender.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)

	accepted := 0
	for _, bid := range bids {
		if bid.IsAccepted {
			accepted++
			require.Equal(t, secondBid.ID, bid.ID)
		}
	}
	require.Equal(t, 1, accepted)

	stored, err := mem.GetTender(tender.ID)
	require.NoError(t, err)
	require.Equal(t, models.TenderStatusInProgress, stored.Status)
}

func TestAcceptBidByNonOwner(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")
	bidder := registerUser(t, app, "bidder")

	tender := createTender(t, app, owner.Token)
	bid := placeBid(t, app, bidder.Token, tender.ID.String(), 450000)

	resp := doJSON(t, app, http.MethodPost, "/api/tenders/bids/"+bid.ID.String()+"/accept", bidder.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBidOnClosedTender(t *testing.T) {
	app, _ := newTestApp(t)
	owner := registerUser(t, app, "owner")
	bidder := registerUser(t, app, "bidder")
	late := registerUser(t, app, "late")

	tender := createTender(t, app, owner.Token)
	bid := placeBid(t, app, bidder.Token, tender.ID.String(), 450000)

	resp := doJSON(t, app, http.MethodPost, "/api/tenders/bids/"+bid.ID.String()+"/accept", owner.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/tenders/"+tender.ID.String()+"/bids", late.Token, fiber.Map{
		"amount":         400000,
		"timeframe_days": 20,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
