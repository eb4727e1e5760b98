package app

import (
	"context"

	"drift_chronicles_service/internal/bottle/domain"
	"drift_chronicles_service/internal/bottle/repository"
	"drift_chronicles_service/pkg/logger"
)

const (
	// EventBottleCast lifecycle event names published to the stream
	EventBottleCast    = "bottle_cast"
	EventBottleClaimed = "bottle_claimed"
)

// EventPublisher consumer-side contract for the lifecycle event stream
type EventPublisher interface {
	Publish(ctx context.Context, event string, payload interface{}) error
}

// ChatStarter consumer-side contract for opening the chat of a claim
type ChatStarter interface {
	CreateFromClaim(ctx context.Context, bottleID, bottleContent, creatorID, claimerID string) (chatID string, created bool, err error)
}

// ClaimResult a won claim and the chat it opened
type ClaimResult struct {
	Bottle *domain.Bottle `json:"bottle"`
	ChatID string         `json:"chat_id"`
}

// BottleUseCase definition bottle lifecycle operations
type BottleUseCase interface {
	// Cast throw a new bottle into the pool
	Cast(ctx context.Context, userID, content string) (string, error)
	// Claim win the bottle and open its private chat
	Claim(ctx context.Context, userID, bottleID string) (*ClaimResult, error)
	// Get point read
	Get(ctx context.Context, bottleID string) (*domain.Bottle, error)
	// Profile the user's profile with counters
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

type bottleUseCase struct {
	bottles  repository.BottleRepository
	profiles repository.ProfileRepository
	chats    ChatStarter
	events   EventPublisher
}

// NewBottleUseCase create a BottleUseCase
func NewBottleUseCase(bottles repository.BottleRepository, profiles repository.ProfileRepository, chats ChatStarter, events EventPublisher) BottleUseCase {
	return &bottleUseCase{
		bottles:  bottles,
		profiles: profiles,
		chats:    chats,
		events:   events,
	}
}

func (u *bottleUseCase) Cast(ctx context.Context, userID, content string) (string, error) {
	bottleID, err := u.bottles.Cast(ctx, content, userID)
	if err != nil {
		return "", err
	}

	if err := u.events.Publish(ctx, EventBottleCast, map[string]string{
		"bottle_id": bottleID,
		"user_id":   userID,
	}); err != nil {
		logger.Log.Errorf("publish bottle_cast event failed", err)
	}
	return bottleID, nil
}

// Claim the claim commits before the chat is created. If the chat write
// fails the claim stays committed and the error surfaces; the reconciler
// sweep repairs the orphaned claim later.
func (u *bottleUseCase) Claim(ctx context.Context, userID, bottleID string) (*ClaimResult, error) {
	bottle, err := u.bottles.Claim(ctx, bottleID, userID)
	if err != nil {
		return nil, err
	}

	chatID, _, err := u.chats.CreateFromClaim(ctx, bottle.ID, bottle.Content, bottle.CreatorID, userID)
	if err != nil {
		logger.Log.Errorf("claimed bottle "+bottle.ID+" has no chat yet", err)
		return nil, err
	}

	if err := u.events.Publish(ctx, EventBottleClaimed, map[string]string{
		"bottle_id": bottle.ID,
		"chat_id":   chatID,
		"user_id":   userID,
	}); err != nil {
		logger.Log.Errorf("publish bottle_claimed event failed", err)
	}

	return &ClaimResult{Bottle: bottle, ChatID: chatID}, nil
}

func (u *bottleUseCase) Get(ctx context.Context, bottleID string) (*domain.Bottle, error) {
	return u.bottles.Get(ctx, bottleID)
}

func (u *bottleUseCase) Profile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return u.profiles.Get(ctx, userID)
}
