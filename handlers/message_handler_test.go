package handlers_test

import (
	"net/http"
	"testing"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func sendMessage(t *testing.T, app *fiber.App, token, receiverID, content string) models.Message {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/messages", token, fiber.Map{
		"receiver_id": receiverID,
		"content":     content,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var message models.Message
	decodeBody(t, resp, &message)
	return message
}

func TestConversation(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")
	bob := registerUser(t, app, "bob")
	carol := registerUser(t, app, "carol")

	sendMessage(t, app, alice.Token, bob.User.ID.String(), "Hi Bob")
	sendMessage(t, app, bob.Token, alice.User.ID.String(), "Hi Alice")
	sendMessage(t, app, alice.Token, carol.User.ID.String(), "Hi Carol")

	resp := doJSON(t, app, http.MethodGet, "/api/messages/"+bob.User.ID.String(), alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var conversation []models.Message
	decodeBody(t, resp, &conversation)
	require.Len(t, conversation, 2)
	require.Equal(t, "Hi Bob", conversation[0].Content)
	require.Equal(t, "Hi Alice", conversation[1].Content)

	resp = doJSON(t, app, http.MethodGet, "/api/messages", alice.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.Message
	decodeBody(t, resp, &all)
	require.Len(t, all, 3)
}

func TestMarkMessageReadIdempotent(t *testing.T) {
	app, mem := newTestApp(t)
	alice := registerUser(t, app, "alice")
	bob := registerUser(t, app, "bob")

	message := sendMessage(t, app, alice.Token, bob.User.ID.String(), "Hi Bob")
	require.False(t, message.IsRead)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodPut, "/api/messages/"+message.ID.String()+"/read", bob.Token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Message
		decodeBody(t, resp, &updated)
		require.True(t, updated.IsRead)
	}

	stored, err := mem.GetMessage(message.ID)
	require.NoError(t, err)
	require.True(t, stored.IsRead)
}

func TestMarkMessageReadBySender(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")
	bob := registerUser(t, app, "bob")

	message := sendMessage(t, app, alice.Token, bob.User.ID.String(), "Hi Bob")

	resp := doJSON(t, app, http.MethodPut, "/api/messages/"+message.ID.String()+"/read", alice.Token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMessageYourself(t *testing.T) {
	app, _ := newTestApp(t)
	alice := registerUser(t, app, "alice")

	resp := doJSON(t, app, http.MethodPost, "/api/messages", alice.Token, fiber.Map{
		"receiver_id": alice.User.ID.String(),
		"content":     "Note to self",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
