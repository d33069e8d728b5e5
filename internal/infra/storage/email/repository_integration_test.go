//go:build integration

package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TattooStudio/pkg/ptr"
	"github.com/m04kA/SMC-TattooStudio/pkg/txmanager"
)

func inbound(messageID string, at time.Time) *domain.Email {
	return &domain.Email{
		MessageID:   messageID,
		Direction:   domain.DirectionInbound,
		FromAddress: "client@mail.test",
		ToAddress:   "studio@mail.test",
		Subject:     "Booking question",
		BodyText:    "hello",
		ReceivedAt:  at,
	}
}

func TestRepository_CreateGetList(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	older, err := repo.Create(ctx, inbound("m-1", now.Add(-time.Hour)))
	require.NoError(t, err)
	newer, err := repo.Create(ctx, inbound("m-2", now))
	require.NoError(t, err)

	_, err = repo.CreateAttachment(ctx, &domain.EmailAttachment{
		EmailID:     older.ID,
		Filename:    "sketch.png",
		ContentType: "image/png",
		SizeBytes:   2048,
		StoragePath: "https://files.test/sketch.png",
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "sketch.png", got.Attachments[0].Filename)

	_, err = repo.Create(ctx, inbound("m-1", now))
	assert.ErrorIs(t, err, ErrDuplicateMessageID)

	byMessage, err := repo.GetByMessageID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, older.ID, byMessage.ID)

	require.NoError(t, repo.UpdateFlags(ctx, newer.ID, domain.EmailFlagsPatch{IsRead: ptr.Ptr(true)}))
	require.NoError(t, repo.UpdateFlags(ctx, older.ID, domain.EmailFlagsPatch{IsArchived: ptr.Ptr(true)}))

	all, err := repo.List(ctx, domain.EmailFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	active, err := repo.List(ctx, domain.EmailFilter{Archived: ptr.Ptr(false)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].IsRead)

	unread, err := repo.List(ctx, domain.EmailFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, older.ID, unread[0].ID)

	assert.ErrorIs(t, repo.UpdateFlags(ctx, uuid.New(), domain.EmailFlagsPatch{IsRead: ptr.Ptr(true)}), ErrEmailNotFound)
}

func TestRepository_AttachmentsRollbackWithEmail(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := NewRepository(db)
	tm := txmanager.NewTransactionManager(db)
	ctx := context.Background()
	failure := errors.New("attachment rejected")

	err := tm.Do(ctx, func(ctx context.Context) error {
		e, err := repo.Create(ctx, inbound("m-tx", time.Now()))
		if err != nil {
			return err
		}
		if _, err := repo.CreateAttachment(ctx, &domain.EmailAttachment{EmailID: e.ID, Filename: "a.pdf"}); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	_, err = repo.GetByMessageID(ctx, "m-tx")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}
