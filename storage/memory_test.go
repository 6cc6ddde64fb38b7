package storage

import (
	"testing"
	"time"

	"github.com/RockInMyHead/tendersyte-sub000/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestMemoryAcceptBidMovesFlag(t *testing.T) {
	mem := NewMemoryStorage()

	owner := models.User{Username: "owner", Email: "o@example.com", Password: "x", FullName: "Owner"}
	require.NoError(t, mem.CreateUser(&owner))

	tender := models.Tender{
		UserID: owner.ID, Title: "T", Description: "D", Category: "c",
		Location: "l", Budget: 1, Deadline: time.Now().Add(time.Hour),
		Status: models.TenderStatusOpen,
	}
	require.NoError(t, mem.CreateTender(&tender))

	bidA := models.TenderBid{TenderID: tender.ID, UserID: uuid.New(), Amount: 10, TimeframeDays: 5}
	bidB := models.TenderBid{TenderID: tender.ID, UserID: uuid.New(), Amount: 12, TimeframeDays: 7}
	require.NoError(t, mem.CreateBid(&bidA))
	require.NoError(t, mem.CreateBid(&bidB))

	_, err := mem.AcceptBid(bidA.ID)
	require.NoError(t, err)
	_, err = mem.AcceptBid(bidB.ID)
	require.NoError(t, err)

	bids, err := mem.ListBidsForTender(tender.ID)
	require.NoError(t, err)

	accepted := 0
	for _, bid := range bids {
		if bid.IsAccepted {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)

	stored, err := mem.GetTender(tender.ID)
	require.NoError(t, err)
	require.Equal(t, models.TenderStatusInProgress, stored.Status)
}

func TestMemoryExpireGuarantees(t *testing.T) {
	mem := NewMemoryStorage()
	now := time.Now()

	stale := models.BankGuarantee{
		CustomerID: uuid.New(), ContractorID: uuid.New(), Amount: 100,
		StartDate: now.AddDate(-1, 0, 0), EndDate: now.Add(-time.Hour),
		Status: models.GuaranteeStatusActive,
	}
	fresh := models.BankGuarantee{
		CustomerID: uuid.New(), ContractorID: uuid.New(), Amount: 100,
		StartDate: now, EndDate: now.AddDate(1, 0, 0),
		Status: models.GuaranteeStatusActive,
	}
	pending := models.BankGuarantee{
		CustomerID: uuid.New(), ContractorID: uuid.New(), Amount: 100,
		StartDate: now.AddDate(-1, 0, 0), EndDate: now.Add(-time.Hour),
		Status: models.GuaranteeStatusPending,
	}
	require.NoError(t, mem.CreateGuarantee(&stale))
	require.NoError(t, mem.CreateGuarantee(&fresh))
	require.NoError(t, mem.CreateGuarantee(&pending))

	expired, err := mem.ExpireGuarantees(now)
	require.NoError(t, err)
	require.Equal(t, int64(1), expired)

	got, err := mem.GetGuarantee(stale.ID)
	require.NoError(t, err)
	require.Equal(t, models.GuaranteeStatusExpired, got.Status)

	got, err = mem.GetGuarantee(pending.ID)
	require.NoError(t, err)
	require.Equal(t, models.GuaranteeStatusPending, got.Status)
}

func TestMemoryListUnreadCounts(t *testing.T) {
	mem := NewMemoryStorage()

	receiver := uuid.New()
	old := models.Message{SenderID: uuid.New(), ReceiverID: receiver, Content: "hi"}
	require.NoError(t, mem.CreateMessage(&old))

	// Backdate the message past the cutoff.
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	mem.messages[old.ID] = old

	counts, err := mem.ListUnreadCounts(time.Now().Add(-1 * time.Hour))
	require.NoError(t, err)
	require.Len(t, counts, 1)
	require.Equal(t, receiver, counts[0].UserID)
	require.Equal(t, int64(1), counts[0].Count)

	_, err = mem.MarkMessageRead(old.ID)
	require.NoError(t, err)

	counts, err = mem.ListUnreadCounts(time.Now().Add(-1 * time.Hour))
	require.NoError(t, err)
	require.Empty(t, counts)
}
