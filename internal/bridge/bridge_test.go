package bridge_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjs "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"

	"github.com/wishbox/wishbox/internal/adapter"
	"github.com/wishbox/wishbox/internal/bridge"
	"github.com/wishbox/wishbox/internal/domain"
	"github.com/wishbox/wishbox/internal/logger"
	mockspkg "github.com/wishbox/wishbox/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBridgeMocks contains all the mocks needed for testing the bridge
type testBridgeMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mockspkg.MockNatsJetStream
	natsConn  *mockspkg.MockNatsConn
	jetStream *mockspkg.MockJetStream
	hub       *bridge.Hub
}

// setupTestBridge creates all the mocks and the hub for testing
func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)

	return &testBridgeMocks{
		ctrl:      ctrl,
		natsJS:    mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:  mockspkg.NewMockNatsConn(ctrl),
		jetStream: mockspkg.NewMockJetStream(ctrl),
		hub:       bridge.NewHub(adapter.NewJSON()),
	}
}

// tearDownTestBridge cleans up the test mocks
func tearDownTestBridge(mocks *testBridgeMocks) {
	mocks.ctrl.Finish()
}

func testBridgeConfig() bridge.Config {
	return bridge.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "WISHBOX_EVENTS",
		ConsumerName:   "bridge-consumer",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-bridge",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     5,
	}
}

func TestBridge_NewBridge_Success(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	config := testBridgeConfig()

	mocks.natsJS.
		EXPECT().
		Connect(config.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(config, mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")

	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBridge_NewBridge_ConnectError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()
	config := testBridgeConfig()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(config, mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(),
			"WISHBOX_EVENTS",
			natsjs.ConsumerConfig{
				Durable:           config.ConsumerName,
				AckPolicy:         natsjs.AckExplicitPolicy,
				AckWait:           config.AckWaitTimeout,
				MaxDeliver:        config.MaxDeliver,
				FilterSubjects:    []string{"events.wishlist.>", "events.user.>"},
				DeliverPolicy:     natsjs.DeliverNewPolicy,
				InactiveThreshold: 10 * time.Minute,
			}).
		Return(nil, assert.AnError)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestBridge_Run_ConsumerInfoError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestBridge_Run_ConsumeError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&natsjs.ConsumerInfo{Name: "bridge-consumer"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestBridge_Run_ContextCancellation(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumeContext := mockspkg.NewMockConsumeContext(mocks.ctrl)
	consumeContext.EXPECT().
		Stop().
		AnyTimes()

	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&natsjs.ConsumerInfo{Name: "bridge-consumer"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...natsjs.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go cancel()
			return consumeContext, nil
		})

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Run(ctx)
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
		assert.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}
}

// runBridge starts the bridge and returns the captured message handler
func runBridge(t *testing.T, ctx context.Context, mocks *testBridgeMocks, b bridge.Bridge) adapter.MessageHandler {
	t.Helper()

	handlerChan := make(chan adapter.MessageHandler, 1)
	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumeContext := mockspkg.NewMockConsumeContext(mocks.ctrl)
	consumeContext.EXPECT().Stop().AnyTimes()

	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&natsjs.ConsumerInfo{Name: "bridge-consumer"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...natsjs.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlerChan <- handler
			return consumeContext, nil
		})

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	go func() { _ = b.Run(ctx) }()

	select {
	case handler := <-handlerChan:
		return handler
	case <-time.After(5 * time.Second):
		t.Fatal("bridge never started consuming")
		return nil
	}
}

func TestBridge_ProcessMessage_ForeignOriginFansOut(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	// A local connection in the event's room
	delivered := make(chan []byte, 1)
	sink := mockspkg.NewMockSink(mocks.ctrl)
	sink.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, data []byte) error {
			delivered <- data
			return nil
		})
	mocks.hub.Subscribe("pub-abc", sink)

	event := domain.NewWishlistEvent(domain.EventReservationChanged, "pub-abc",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), map[string]interface{}{
			"item_id":  float64(5),
			"reserved": true,
		})
	event.Origin = "origin-b"
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Data().Return(payload).MinTimes(1)
	msg.EXPECT().Ack().Return(nil)

	handler := runBridge(t, ctx, mocks, b)
	handler(msg)

	select {
	case data := <-delivered:
		var got domain.Event
		assert.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, domain.EventReservationChanged, got.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("event never reached the local connection")
	}
}

func TestBridge_ProcessMessage_OwnOriginDropped(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	// This process already fanned the event out at publish time;
	// the sink must not see it again
	sink := mockspkg.NewMockSink(mocks.ctrl)
	mocks.hub.Subscribe("pub-abc", sink)

	event := domain.NewWishlistEvent(domain.EventReservationChanged, "pub-abc",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), nil)
	event.Origin = "origin-a"
	payload, err := json.Marshal(event)
	assert.NoError(t, err)

	acked := make(chan struct{}, 1)
	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Data().Return(payload).MinTimes(1)
	msg.EXPECT().Ack().DoAndReturn(func() error {
		acked <- struct{}{}
		return nil
	})

	handler := runBridge(t, ctx, mocks, b)
	handler(msg)

	select {
	case <-acked:
	case <-time.After(5 * time.Second):
		t.Fatal("message was never acked")
	}
}

func TestBridge_ProcessMessage_InvalidJSONTerminated(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	termed := make(chan struct{}, 1)
	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Data().Return([]byte(`{invalid json}`)).MinTimes(1)
	msg.EXPECT().Term().DoAndReturn(func() error {
		termed <- struct{}{}
		return nil
	})

	handler := runBridge(t, ctx, mocks, b)
	handler(msg)

	select {
	case <-termed:
	case <-time.After(5 * time.Second):
		t.Fatal("message was never terminated")
	}
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)
	mocks.natsConn.
		EXPECT().
		Close()

	b, err := bridge.NewBridge(testBridgeConfig(), mocks.natsJS, mocks.hub, adapter.NewJSON(), "origin-a")
	assert.NoError(t, err)

	b.Close()
}

func TestFanoutPublisher_LocalThenBroker(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	// Local connection sees the event immediately
	sink := mockspkg.NewMockSink(mocks.ctrl)
	sink.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	mocks.hub.Subscribe("pub-abc", sink)

	inner := mockspkg.NewMockPublisher(mocks.ctrl)
	event := domain.NewWishlistEvent(domain.EventContributionChanged, "pub-abc",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), map[string]interface{}{
			"item_id": int64(5),
		})
	inner.EXPECT().PublishEvent(ctx, event).Return(nil)

	pub := bridge.NewFanoutPublisher(mocks.hub, inner)

	err := pub.PublishEvent(ctx, event)

	assert.NoError(t, err)
}

func TestFanoutPublisher_BrokerErrorPropagates(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	inner := mockspkg.NewMockPublisher(mocks.ctrl)
	event := domain.NewWishlistEvent(domain.EventContributionChanged, "pub-abc",
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), nil)
	inner.EXPECT().PublishEvent(ctx, event).Return(assert.AnError)

	pub := bridge.NewFanoutPublisher(mocks.hub, inner)

	// Local delivery happened; the broker write still reports its failure
	err := pub.PublishEvent(ctx, event)

	assert.ErrorIs(t, err, assert.AnError)
}

func TestFanoutPublisher_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	inner := mockspkg.NewMockPublisher(mocks.ctrl)
	inner.EXPECT().Close()

	pub := bridge.NewFanoutPublisher(mocks.hub, inner)
	pub.Close()
}
