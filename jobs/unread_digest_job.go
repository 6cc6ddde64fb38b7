package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/notifications"
	"github.com/RockInMyHead/tendersyte-sub000/storage"
)

// SendUnreadDigests emails users who still hold unread messages older than an
// hour. Runs hourly; users without an open websocket rely on this nudge.
func SendUnreadDigests() {
	cutoff := time.Now().Add(-1 * time.Hour)

	counts, err := storage.Store.ListUnreadCounts(cutoff)
	if err != nil {
		log.Printf("Error checking unread messages: %v", err)
		return
	}

	for _, entry := range counts {
		user, err := storage.Store.GetUser(entry.UserID)
		if err != nil {
			continue
		}

		emailBody := fmt.Sprintf(
			"<h1>You have unread messages</h1><p>Hi %s,</p><p>You have %d unread message(s) waiting on the platform.</p>",
			user.FullName, entry.Count,
		)
		go notifications.SendEmail(user.FullName, user.Email, "You have unread messages", emailBody)
	}
}
