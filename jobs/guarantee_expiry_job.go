package jobs

import (
	"log"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/storage"
)

// ExpireGuarantees flips active guarantees whose end date has passed to
// expired. Runs every five minutes.
func ExpireGuarantees() {
	expired, err := storage.Store.ExpireGuarantees(time.Now())
	if err != nil {
		log.Printf("Error expiring guarantees: %v", err)
		return
	}
	if expired > 0 {
		log.Printf("Expired %d bank guarantee(s)", expired)
	}
}
