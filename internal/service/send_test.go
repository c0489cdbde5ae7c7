package service_test

import (
	"context"
	"testing"

	"github.com/bcnelson/mailgun-domain-manager/internal/domain"
	"github.com/bcnelson/mailgun-domain-manager/internal/service"
	"github.com/bcnelson/mailgun-domain-manager/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeMailgun records calls and returns canned results.
type fakeMailgun struct {
	sendErr  error
	sends    []sentMessage
	listKeys []string
	count    int
}

type sentMessage struct {
	apiKey string
	domain string
	msg    *domain.Message
}

func (f *fakeMailgun) ListTemplates(ctx context.Context, apiKey, domainName string) ([]domain.Template, error) {
	return []domain.Template{domain.Template(`{"name":"welcome"}`)}, nil
}

func (f *fakeMailgun) ListMailingLists(ctx context.Context, apiKey string) ([]domain.MailingList, error) {
	f.listKeys = append(f.listKeys, apiKey)
	return []domain.MailingList{}, nil
}

func (f *fakeMailgun) MailingListMemberCount(ctx context.Context, apiKey, mailList string) (int, error) {
	return f.count, nil
}

func (f *fakeMailgun) SendMessage(ctx context.Context, apiKey, domainName string, msg *domain.Message) (*domain.SendResult, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sends = append(f.sends, sentMessage{apiKey: apiKey, domain: domainName, msg: msg})
	return &domain.SendResult{ID: "<1@mg>", Message: "Queued. Thank you."}, nil
}

func newSendFixture(t *testing.T) (*service.SendService, *fakeMailgun, *memory.Store) {
	t.Helper()
	store := memory.New()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	seedLinked(t, store, "news.example.com", "", primary.ID)

	fake := &fakeMailgun{}
	return service.NewSendService(service.NewResolver(store), fake, zap.NewNop()), fake, store
}

func TestSendTest_LinkedDomainUsesPrimaryKey(t *testing.T) {
	svc, fake, _ := newSendFixture(t)

	result, err := svc.SendTest(context.Background(), &domain.TestSendRequest{
		Domain:      "news.example.com",
		Template:    "welcome",
		FromAddress: "a@news.example.com",
		TestEmails:  []string{"a@x.com", " b@x.com"},
		ReplyTo:     "reply@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "<1@mg>", result.ID)

	require.Len(t, fake.sends, 1)
	sent := fake.sends[0]
	assert.Equal(t, "key-primary", sent.apiKey)
	assert.Equal(t, "news.example.com", sent.domain)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, sent.msg.To)
	assert.Equal(t, "reply@x.com", sent.msg.ReplyTo)
}

func TestSendTest_EmptyRecipientsNeverCallProvider(t *testing.T) {
	svc, fake, _ := newSendFixture(t)

	_, err := svc.SendTest(context.Background(), &domain.TestSendRequest{
		Domain:      "mg.example.com",
		Template:    "welcome",
		FromAddress: "a@mg.example.com",
		TestEmails:  []string{" ", ""},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Empty(t, fake.sends)
}

func TestSendTest_UnknownDomain(t *testing.T) {
	svc, fake, _ := newSendFixture(t)

	_, err := svc.SendTest(context.Background(), &domain.TestSendRequest{
		Domain:      "missing.example.com",
		Template:    "welcome",
		FromAddress: "a@x.com",
		TestEmails:  []string{"a@x.com"},
	})
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
	assert.Empty(t, fake.sends)
}

func TestSendLive_ProviderErrorSurfaces(t *testing.T) {
	svc, fake, _ := newSendFixture(t)
	fake.sendErr = &domain.ProviderError{StatusCode: 400, Body: `{"message":"to parameter is not a valid address"}`}

	_, err := svc.SendLive(context.Background(), &domain.LiveSendRequest{
		Domain:      "mg.example.com",
		Template:    "digest",
		MailList:    "news",
		FromAddress: "news@mg.example.com",
	})

	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Contains(t, providerErr.Body, "not a valid address")
}

func TestSendLive_IncludesTestList(t *testing.T) {
	svc, fake, _ := newSendFixture(t)

	_, err := svc.SendLive(context.Background(), &domain.LiveSendRequest{
		Domain:          "mg.example.com",
		Template:        "digest",
		MailList:        "news",
		FromAddress:     "news@mg.example.com",
		IncludeTestList: true,
		TestEmails:      []string{"c@x.com"},
	})
	require.NoError(t, err)
	require.Len(t, fake.sends, 1)
	assert.Equal(t, []string{"news", "c@x.com"}, fake.sends[0].msg.To)
	assert.Equal(t, "key-primary", fake.sends[0].apiKey)
}

func TestProviderService_MailingListsByLinkedID(t *testing.T) {
	store := memory.New()
	primary := seedPrimary(t, store, "mg.example.com", "key-primary")
	linked := seedLinked(t, store, "news.example.com", "", primary.ID)
	fake := &fakeMailgun{}
	svc := service.NewProviderService(service.NewResolver(store), fake, zap.NewNop())

	_, err := svc.MailingLists(context.Background(), linked.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"key-primary"}, fake.listKeys)
}

func TestProviderService_MailingListDetail(t *testing.T) {
	store := memory.New()
	seedPrimary(t, store, "mg.example.com", "key-primary")
	fake := &fakeMailgun{count: 17}
	svc := service.NewProviderService(service.NewResolver(store), fake, zap.NewNop())

	detail, err := svc.MailingListDetail(context.Background(), "mg.example.com", "news")
	require.NoError(t, err)
	assert.Equal(t, &domain.MailingListDetail{MailList: "news", Recipients: 17}, detail)

	_, err = svc.MailingListDetail(context.Background(), "mg.example.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestDomainService_UpsertReplacesByDomain(t *testing.T) {
	store := memory.New()
	svc := service.NewDomainService(store, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Upsert(ctx, &domain.UpsertDomainRequest{Domain: "mg.example.com", APIKey: "key-1", IsPrimary: true})
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, &domain.UpsertDomainRequest{Domain: "mg.example.com", APIKey: "key-2", IsPrimary: true})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	recs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "key-2", recs[0].APIKey)
}

func TestDomainService_UpsertPrimaryDropsLink(t *testing.T) {
	svc := service.NewDomainService(memory.New(), zap.NewNop())
	link := int64(3)

	rec, err := svc.Upsert(context.Background(), &domain.UpsertDomainRequest{
		Domain: "mg.example.com", APIKey: "key", IsPrimary: true, PrimaryDomainID: &link,
	})
	require.NoError(t, err)
	assert.Nil(t, rec.PrimaryDomainID)
}

func TestDomainService_DeleteIsIdempotent(t *testing.T) {
	svc := service.NewDomainService(memory.New(), zap.NewNop())

	assert.NoError(t, svc.Delete(context.Background(), "missing.example.com"))
	assert.NoError(t, svc.Delete(context.Background(), "missing.example.com"))
}

func TestDomainService_GetUnknown(t *testing.T) {
	svc := service.NewDomainService(memory.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "missing.example.com")
	assert.ErrorIs(t, err, domain.ErrDomainNotFound)
}
