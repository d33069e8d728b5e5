package ingest_email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	emailRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/email"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// fakeRepo хранит письма в памяти; изменения внутри транзакции
// применяются только при успешном завершении fn.
type fakeRepo struct {
	emails       map[string]*domain.Email
	attachments  []*domain.EmailAttachment
	failAttachAt int
	createErr    error
	lookupErr    error
	createdInTx  []*domain.Email
	attachedInTx []*domain.EmailAttachment
	raceOnCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{emails: map[string]*domain.Email{}, failAttachAt: -1}
}

func (f *fakeRepo) Create(ctx context.Context, e *domain.Email) (*domain.Email, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.raceOnCreate {
		// Другая доставка сохранила письмо между проверкой и вставкой
		f.emails[e.MessageID] = &domain.Email{ID: uuid.New(), MessageID: e.MessageID}
		return nil, emailRepo.ErrDuplicateMessageID
	}
	created := *e
	created.ID = uuid.New()
	f.createdInTx = append(f.createdInTx, &created)
	return &created, nil
}

func (f *fakeRepo) CreateAttachment(ctx context.Context, a *domain.EmailAttachment) (*domain.EmailAttachment, error) {
	if f.failAttachAt == len(f.attachedInTx) {
		return nil, errors.New("disk full")
	}
	created := *a
	created.ID = uuid.New()
	f.attachedInTx = append(f.attachedInTx, &created)
	return &created, nil
}

func (f *fakeRepo) GetByMessageID(ctx context.Context, messageID string) (*domain.Email, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	e, ok := f.emails[messageID]
	if !ok {
		return nil, emailRepo.ErrEmailNotFound
	}
	return e, nil
}

type fakeTx struct{ repo *fakeRepo }

func (m fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.repo.createdInTx, m.repo.attachedInTx = nil, nil
	if err := fn(ctx); err != nil {
		m.repo.createdInTx, m.repo.attachedInTx = nil, nil
		return err
	}
	for _, e := range m.repo.createdInTx {
		m.repo.emails[e.MessageID] = e
	}
	m.repo.attachments = append(m.repo.attachments, m.repo.attachedInTx...)
	return nil
}

type countMetrics map[string]int

func (m countMetrics) IncEmailIngested(outcome string) { m[outcome]++ }

func newUseCase(repo *fakeRepo, metrics countMetrics) *UseCase {
	uc := NewUseCase(repo, fakeTx{repo: repo}, metrics, logger.NewNop())
	uc.timeProvider = fixedTime{time.UnixMilli(1773500000123)}
	return uc
}

func TestExecute_StoresEmailWithAttachments(t *testing.T) {
	repo := newFakeRepo()
	metrics := countMetrics{}
	uc := newUseCase(repo, metrics)

	resp, err := uc.Execute(context.Background(), &Request{
		From:      " client@example.com ",
		To:        "studio@example.com",
		Subject:   "Hello",
		Text:      "body",
		MessageID: "<m1@mail>",
		Attachments: []Attachment{
			{Filename: "a.png", ContentType: "image/png", Size: 10, URL: "u1"},
			{Filename: "b.png", ContentType: "image/png", Size: 20, URL: "u2"},
		},
	})
	require.NoError(t, err)

	assert.False(t, resp.Duplicate)
	assert.Equal(t, 2, resp.Attachments)
	stored := repo.emails["<m1@mail>"]
	require.NotNil(t, stored)
	assert.Equal(t, stored.ID.String(), resp.EmailID)
	assert.Equal(t, "client@example.com", stored.FromAddress)
	assert.Equal(t, domain.DirectionInbound, stored.Direction)
	require.Len(t, repo.attachments, 2)
	assert.Equal(t, stored.ID, repo.attachments[0].EmailID)
	assert.Equal(t, "u2", repo.attachments[1].StoragePath)
	assert.Equal(t, 1, metrics[OutcomeStored])
}

func TestExecute_GeneratesMessageID(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo, countMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{From: "client@example.com"})
	require.NoError(t, err)

	assert.Equal(t, "client@example.com-1773500000123", resp.MessageID)
	assert.Contains(t, repo.emails, "client@example.com-1773500000123")
}

func TestExecute_MissingSender(t *testing.T) {
	metrics := countMetrics{}
	uc := newUseCase(newFakeRepo(), metrics)

	_, err := uc.Execute(context.Background(), &Request{Subject: "anonymous"})

	assert.ErrorIs(t, err, ErrMissingSender)
	assert.Equal(t, 1, metrics[OutcomeInvalid])
}

func TestExecute_DuplicateDelivery(t *testing.T) {
	repo := newFakeRepo()
	metrics := countMetrics{}
	uc := newUseCase(repo, metrics)
	req := &Request{From: "client@example.com", MessageID: "<dup@mail>"}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.Duplicate)
	assert.Equal(t, first.EmailID, second.EmailID)
	assert.Len(t, repo.emails, 1)
	assert.Equal(t, 1, metrics[OutcomeDuplicate])
}

func TestExecute_DuplicateRaceOnInsert(t *testing.T) {
	repo := newFakeRepo()
	repo.raceOnCreate = true
	uc := newUseCase(repo, countMetrics{})

	resp, err := uc.Execute(context.Background(), &Request{From: "client@example.com", MessageID: "<race@mail>"})
	require.NoError(t, err)

	assert.True(t, resp.Duplicate)
	assert.Equal(t, repo.emails["<race@mail>"].ID.String(), resp.EmailID)
}

func TestExecute_AttachmentFailureRollsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.failAttachAt = 1
	metrics := countMetrics{}
	uc := newUseCase(repo, metrics)

	_, err := uc.Execute(context.Background(), &Request{
		From:        "client@example.com",
		MessageID:   "<partial@mail>",
		Attachments: []Attachment{{Filename: "a"}, {Filename: "b"}},
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.emails)
	assert.Empty(t, repo.attachments)
	assert.Equal(t, 1, metrics[OutcomeFailed])
}

func TestExecute_LookupFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.lookupErr = errors.New("connection reset")
	uc := newUseCase(repo, countMetrics{})

	_, err := uc.Execute(context.Background(), &Request{From: "client@example.com", MessageID: "x"})

	assert.ErrorIs(t, err, ErrInternal)
}
