package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestReviewsRecomputeRating(t *testing.T) {
	app, mem := newTestApp(t)
	contractor := registerUser(t, app, "contractor")

	ratings := []int{5, 4, 4}
	for i, rating := range ratings {
		reviewer := registerUser(t, app, "reviewer"+string(rune('a'+i)))
		resp := doJSON(t, app, http.MethodPost, "/api/reviews", reviewer.Token, fiber.Map{
			"recipient_id": contractor.User.ID.String(),
			"rating":       rating,
			"comment":      "Solid work",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// mean(5,4,4) = 4.33 -> rounds to 4
	stored, err := mem.GetUser(contractor.User.ID)
	require.NoError(t, err)
	require.Equal(t, 4, stored.Rating)

	resp := doJSON(t, app, http.MethodGet, "/api/users/"+contractor.User.ID.String()+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reviews []models.Review
	decodeBody(t, resp, &reviews)
	require.Len(t, reviews, 3)
}

func TestReviewRoundsUp(t *testing.T) {
	app, mem := newTestApp(t)
	contractor := registerUser(t, app, "contractor")

	ratings := []int{5, 4}
	for i, rating := range ratings {
		reviewer := registerUser(t, app, "reviewer"+string(rune('a'+i)))
		resp := doJSON(t, app, http.MethodPost, "/api/reviews", reviewer.Token, fiber.Map{
			"recipient_id": contractor.User.ID.String(),
			"rating":       rating,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// mean(5,4) = 4.5 -> rounds to 5
	stored, err := mem.GetUser(contractor.User.ID)
	require.NoError(t, err)
	require.Equal(t, 5, stored.Rating)
}

func TestReviewYourself(t *testing.T) {
	app, _ := newTestApp(t)
	user := registerUser(t, app, "narcissist")

	resp := doJSON(t, app, http.MethodPost, "/api/reviews", user.Token, fiber.Map{
		"recipient_id": user.User.ID.String(),
		"rating":       5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReviewRatingOutOfRange(t *testing.T) {
	app, _ := newTestApp(t)
	reviewer := registerUser(t, app, "reviewer")
	target := registerUser(t, app, "target")

	resp := doJSON(t, app, http.MethodPost, "/api/reviews", reviewer.Token, fiber.Map{
		"recipient_id": target.User.ID.String(),
		"rating":       6,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
