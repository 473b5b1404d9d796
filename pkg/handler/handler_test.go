package handler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tzbot/pkg/logger"
	"tzbot/pkg/models"
	"tzbot/pkg/response"
	"tzbot/pkg/tz"
	"tzbot/storage"
)

type delivery struct {
	chatID int64
	resp   response.Response
}

type recordingOutbound struct {
	mu         sync.Mutex
	deliveries []delivery
	err        error
}

func (o *recordingOutbound) Deliver(_ context.Context, chatID int64, r response.Response) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deliveries = append(o.deliveries, delivery{chatID: chatID, resp: r})
	return o.err
}

type fakeUsers struct {
	mu    sync.Mutex
	saved map[int64]string
	err   error
}

func (f *fakeUsers) SetTimezone(_ context.Context, s models.Sender, tz string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = map[int64]string{}
	}
	f.saved[s.ID] = tz
	return nil
}

func (f *fakeUsers) Get(context.Context, int64) (*models.UserPreference, error) {
	return nil, storage.ErrNotFound
}

type fixedResolver string

func (r fixedResolver) Resolve(float64, float64) string { return string(r) }

var (
	privateChat = models.Chat{ID: 100, Private: true}
	londonLoc   = models.Location{Lat: 51.5074, Lng: -0.1278}
	ana         = &models.Sender{ID: 42, FirstName: "Ana"}
)

func TestCommandHandler_Help(t *testing.T) {
	out := &recordingOutbound{}
	h := NewCommandHandler(out)

	require.NoError(t, h.Handle(context.Background(), models.CommandHelp, privateChat))

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, int64(100), out.deliveries[0].chatID)
	text := response.Text(out.deliveries[0].resp)
	assert.Contains(t, text, "/help")
	assert.Contains(t, text, "/start")
	for _, c := range models.Commands {
		assert.Contains(t, text, c.Description)
	}
}

func TestCommandHandler_Start(t *testing.T) {
	out := &recordingOutbound{}
	h := NewCommandHandler(out)

	require.NoError(t, h.Handle(context.Background(), models.CommandStart, privateChat))

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, response.Hello{}, out.deliveries[0].resp)
}

func TestCommandHandler_PropagatesDeliveryError(t *testing.T) {
	sendErr := errors.New("telegram: bad gateway")
	h := NewCommandHandler(&recordingOutbound{err: sendErr})

	err := h.Handle(context.Background(), models.CommandStart, privateChat)
	assert.ErrorIs(t, err, sendErr)
}

func TestCommandHandler_UnknownKind(t *testing.T) {
	out := &recordingOutbound{}
	h := NewCommandHandler(out)

	assert.Error(t, h.Handle(context.Background(), models.CommandKind(99), privateChat))
	assert.Empty(t, out.deliveries)
}

func TestMessageHandler_LocationSaved(t *testing.T) {
	finder, err := tz.New()
	require.NoError(t, err)

	out := &recordingOutbound{}
	users := &fakeUsers{}
	h := NewMessageHandler(users, finder, out, logger.NewNop())

	require.NoError(t, h.HandleLocation(context.Background(), privateChat, ana, londonLoc))

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, response.ChosenTimezone{Timezone: "Europe/London"}, out.deliveries[0].resp)
	assert.Equal(t, "Europe/London", users.saved[42])
}

func TestMessageHandler_LocationStoreFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	out := &recordingOutbound{}
	users := &fakeUsers{err: storage.Wrap("upsert user", errors.New("connection refused"))}
	h := NewMessageHandler(users, fixedResolver("Europe/London"), out, logger.FromZap(zap.New(core)))

	err := h.HandleLocation(context.Background(), privateChat, ana, londonLoc)
	require.NoError(t, err, "store faults are reported to the user, not returned")

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, response.FailedSetTimezone{Timezone: "Europe/London"}, out.deliveries[0].resp)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "failed to save timezone", errs[0].Message)
	assert.Contains(t, errs[0].ContextMap()["error"], "connection refused")
}

func TestMessageHandler_LocationWithoutSender(t *testing.T) {
	out := &recordingOutbound{}
	users := &fakeUsers{}
	h := NewMessageHandler(users, fixedResolver("Europe/London"), out, logger.NewNop())

	require.NoError(t, h.HandleLocation(context.Background(), privateChat, nil, londonLoc))

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, response.IncorrectRequest{}, out.deliveries[0].resp)
	assert.Empty(t, users.saved)
}

func TestMessageHandler_LocationDeliveryError(t *testing.T) {
	sendErr := errors.New("telegram: forbidden")
	h := NewMessageHandler(&fakeUsers{}, fixedResolver("Asia/Tokyo"), &recordingOutbound{err: sendErr}, logger.NewNop())

	err := h.HandleLocation(context.Background(), privateChat, ana, londonLoc)
	assert.ErrorIs(t, err, sendErr)
}

func TestMessageHandler_Fallback(t *testing.T) {
	out := &recordingOutbound{}
	h := NewMessageHandler(&fakeUsers{}, fixedResolver("Europe/London"), out, logger.NewNop())

	require.NoError(t, h.HandleFallback(context.Background(), privateChat))

	require.Len(t, out.deliveries, 1)
	assert.Equal(t, response.IncorrectRequest{}, out.deliveries[0].resp)
}

func TestMessageHandler_ConcurrentLocations(t *testing.T) {
	out := &recordingOutbound{}
	users := &fakeUsers{}
	h := NewMessageHandler(users, fixedResolver("Asia/Tokyo"), out, logger.NewNop())

	var wg sync.WaitGroup
	for i := int64(0); i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sender := &models.Sender{ID: id % 5, FirstName: "U"}
			assert.NoError(t, h.HandleLocation(context.Background(), models.Chat{ID: id, Private: true}, sender, londonLoc))
		}(i)
	}
	wg.Wait()

	assert.Len(t, out.deliveries, 20)
	assert.Len(t, users.saved, 5)
}
