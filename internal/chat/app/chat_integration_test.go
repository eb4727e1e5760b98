//go:build integration

package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	bottleapp "drift_chronicles_service/internal/bottle/app"
	bottlerepo "drift_chronicles_service/internal/bottle/repository"
	"drift_chronicles_service/internal/chat/domain"
	chatrepo "drift_chronicles_service/internal/chat/repository"
	"drift_chronicles_service/pkg/database"
	errprocess "drift_chronicles_service/pkg/err"
	"drift_chronicles_service/pkg/logger"
	testtool "drift_chronicles_service/pkg/test_tool"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	itMongo    *database.MongoDB
	itBottles  bottlerepo.BottleRepository
	itProfiles bottlerepo.ProfileRepository
	itChats    chatrepo.ChatRepository
	itMessages chatrepo.MessageRepository
	itBroker   chatrepo.MessageBroker
	itChatUC   ChatUseCase
	itBottleUC bottleapp.BottleUseCase
	itPicker   bottleapp.MatchmakingUseCase
)

func TestMain(m *testing.M) {
	ctx := context.Background()
	logger.SetNewNop()

	// transactions need a replica set, single-node is enough
	mongoContainer, mongoHost, mongoPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "mongo:6",
		ExposedPorts: []string{"27017/tcp"},
		Cmd:          []string{"--replSet", "rs0"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	})
	if err != nil {
		log.Fatalf("Failed to start MongoDB container: %v", err)
	}
	defer mongoContainer.Terminate(ctx)

	_, _, err = mongoContainer.Exec(ctx, []string{"mongosh", "--eval", "rs.initiate()"})
	if err != nil {
		log.Fatalf("Failed to initiate replica set: %v", err)
	}
	time.Sleep(3 * time.Second)

	redisContainer, redisHost, redisPort, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image:        "redis:latest",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	})
	if err != nil {
		log.Fatalf("Failed to start Redis container: %v", err)
	}
	defer redisContainer.Terminate(ctx)

	itMongo, err = database.NewMongoDB(ctx, database.Connection{
		ConnectStr:    fmt.Sprintf("mongodb://%s:%s/?directConnection=true", mongoHost, mongoPort),
		RetryCount:    5,
		RetryInterval: 2 * time.Second,
	}, "test_drift_db")
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer itMongo.Close(ctx)

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", redisHost, redisPort),
		DB:   0,
	})

	events := database.NewKafkaPublisher(nil)

	itBottles = bottlerepo.NewMongoBottleRepository(itMongo)
	itProfiles = bottlerepo.NewMongoProfileRepository(itMongo.Database)
	itChats = chatrepo.NewMongoChatRepository(itMongo)
	itMessages = chatrepo.NewMongoMessageRepository(itMongo.Database)
	itBroker = chatrepo.NewRedisMessageBroker(redisClient)

	itPicker = bottleapp.NewMatchmakingUseCase(itBottles, bottleapp.NewSessionTracker(), 100)
	itBottleUC = bottleapp.NewBottleUseCase(itBottles, itProfiles, itChats, events)
	itChatUC = NewChatUseCase(itChats, itMessages, itBroker, events)

	m.Run()
}

func newUser(t *testing.T, ctx context.Context) string {
	uid := uuid.New().String()
	assert.NoError(t, itProfiles.EnsureProfile(ctx, uid, "", true))
	return uid
}

func TestBottleLifecycle(t *testing.T) {
	ctx := context.Background()
	creator := newUser(t, ctx)
	claimer := newUser(t, ctx)

	bottleID, err := itBottleUC.Cast(ctx, creator, "a message set adrift for a stranger")
	assert.NoError(t, err)

	// creator stats moved with the cast
	profile, err := itProfiles.Get(ctx, creator)
	assert.NoError(t, err)
	assert.Equal(t, 1, profile.Stats.BottlesThrown)

	// the creator never draws their own bottle
	own, err := itPicker.PickBottle(ctx, creator, nil)
	assert.NoError(t, err)
	if own != nil {
		assert.NotEqual(t, bottleID, own.ID)
	}

	result, err := itBottleUC.Claim(ctx, claimer, bottleID)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.ChatID)

	// the chat opens with exactly the seed message
	msgs, err := itChatUC.ListMessages(ctx, result.ChatID, claimer)
	assert.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, domain.MessageTypeBottle, msgs[0].Type)
	assert.Equal(t, creator, msgs[0].SenderID)

	// replies bump only the recipient's unread counter
	_, err = itChatUC.SendMessage(ctx, result.ChatID, claimer, "hello stranger")
	assert.NoError(t, err)

	chat, err := itChatUC.GetChat(ctx, result.ChatID, creator)
	assert.NoError(t, err)
	assert.Equal(t, 1, chat.UnreadCount[creator])
	assert.Equal(t, 0, chat.UnreadCount[claimer])
	assert.Equal(t, "hello stranger", chat.LastMessage)

	itChatUC.MarkRead(ctx, result.ChatID, creator)
	chat, _ = itChatUC.GetChat(ctx, result.ChatID, creator)
	assert.Equal(t, 0, chat.UnreadCount[creator])

	_, err = itChatUC.SendMessage(ctx, result.ChatID, claimer, "one last thing before I go")
	assert.NoError(t, err)

	// release freezes the chat, repeat release is a no-op
	assert.NoError(t, itChatUC.Release(ctx, result.ChatID, creator))
	assert.NoError(t, itChatUC.Release(ctx, result.ChatID, creator))

	_, err = itChatUC.SendMessage(ctx, result.ChatID, claimer, "anyone there?")
	assert.True(t, errprocess.IsKind(err, errprocess.KindPermission))

	// read state is frozen along with the counters
	itChatUC.MarkRead(ctx, result.ChatID, creator)
	chat, _ = itChatUC.GetChat(ctx, result.ChatID, creator)
	assert.Equal(t, 1, chat.UnreadCount[creator])

	// a claimed bottle is out of the pool for good
	_, err = itBottles.Claim(ctx, bottleID, newUser(t, ctx))
	assert.True(t, errprocess.IsKind(err, errprocess.KindAlreadyClaimed))
}

func TestConcurrentClaim_ExactlyOneWinner(t *testing.T) {
	ctx := context.Background()
	creator := newUser(t, ctx)

	bottleID, err := itBottleUC.Cast(ctx, creator, "only one of you may keep this")
	assert.NoError(t, err)

	const racers = 8
	var wg sync.WaitGroup
	winners := make(chan string, racers)
	losses := make(chan error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			claimer := uuid.New().String()
			_ = itProfiles.EnsureProfile(ctx, claimer, "", true)
			if _, err := itBottles.Claim(ctx, bottleID, claimer); err != nil {
				losses <- err
			} else {
				winners <- claimer
			}
		}()
	}
	wg.Wait()
	close(winners)
	close(losses)

	assert.Len(t, winners, 1)
	for err := range losses {
		assert.True(t, errprocess.IsKind(err, errprocess.KindAlreadyClaimed))
	}
}

func TestThrowBackPersistsAcrossSessions(t *testing.T) {
	ctx := context.Background()
	creator := newUser(t, ctx)
	viewer := newUser(t, ctx)

	bottleID, err := itBottleUC.Cast(ctx, creator, "thrown back and remembered")
	assert.NoError(t, err)

	picker := bottleapp.NewMatchmakingUseCase(itBottles, bottleapp.NewSessionTracker(), 1000)
	assert.NoError(t, picker.ThrowBack(ctx, viewer, bottleID))

	// fresh session: the durable viewed set still hides the bottle
	picker.EndSession(viewer)
	for i := 0; i < 10; i++ {
		bottle, err := picker.PickBottle(ctx, viewer, nil)
		assert.NoError(t, err)
		if bottle != nil {
			assert.NotEqual(t, bottleID, bottle.ID)
		}
	}
}

func TestSubscribeMessages_DeliversTranscript(t *testing.T) {
	ctx := context.Background()
	creator := newUser(t, ctx)
	claimer := newUser(t, ctx)

	bottleID, err := itBottleUC.Cast(ctx, creator, "a live feed over this bottle")
	assert.NoError(t, err)
	result, err := itBottleUC.Claim(ctx, claimer, bottleID)
	assert.NoError(t, err)

	updates := make(chan []domain.Message, 8)
	cancel, err := itChatUC.SubscribeMessages(ctx, result.ChatID, creator, func(msgs []domain.Message) {
		updates <- msgs
	})
	assert.NoError(t, err)
	defer cancel()

	// initial snapshot carries the seed message
	first := <-updates
	assert.Len(t, first, 1)

	_, err = itChatUC.SendMessage(ctx, result.ChatID, claimer, "did you get this live?")
	assert.NoError(t, err)

	select {
	case next := <-updates:
		assert.Len(t, next, 2)
		assert.Equal(t, "did you get this live?", next[1].Content)
	case <-time.After(5 * time.Second):
		t.Fatal("no transcript update after send")
	}

	cancel()
	cancel() // safe to repeat
}
