package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dondoffy/contract-copilot-canvas/config"
	"github.com/dondoffy/contract-copilot-canvas/model"
	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
	"github.com/google/uuid"
)

// ConversationService owns chat transcripts and their pending assistant replies
type ConversationService struct {
	store      *Store[*model.Conversation]
	replyDelay time.Duration
	maxPending int

	mu     sync.Mutex // guards tasks
	tasks  *taskGroup
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConversationService(storeCfg *config.StoreConfig, assistantCfg *config.AssistantConfig) *ConversationService {
	root, cancel := context.WithCancel(context.Background())
	s := &ConversationService{
		store:      NewStore[*model.Conversation]("conversations", storeCfg.MaxConversations),
		replyDelay: millis(assistantCfg.ReplyDelayMs),
		maxPending: assistantCfg.MaxPendingReplies,
		tasks:      newTaskGroup(root),
		cancel:     cancel,
	}
	s.store.OnEvict(s.cancelReplies)
	return s
}

func greetingMessage() model.Message {
	return model.Message{
		ID:        uuid.New().String(),
		Author:    model.AuthorAssistant,
		Text:      Greeting,
		Timestamp: time.Now(),
	}
}

// Create starts a conversation holding only the greeting
func (s *ConversationService) Create(ctx context.Context, tenant string) *model.Conversation {
	now := time.Now()
	conv := &model.Conversation{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Messages:  []model.Message{greetingMessage()},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Save(conv)
	logger.Info(ctx, "conversation created", "conversation_id", conv.ID)
	return conv.Clone()
}

func (s *ConversationService) Get(tenant, id string) (*model.Conversation, error) {
	conv, ok := s.store.Get(tenant, id)
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	return conv, nil
}

func (s *ConversationService) List(tenant string) []*model.Conversation {
	return s.store.GetByTenant(tenant)
}

// Submit appends the user's message and schedules the assistant reply.
// The reply outlives the request: it is bound to the conversation, not to ctx.
func (s *ConversationService) Submit(ctx context.Context, tenant, id, text string) (*model.Conversation, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pending := s.tasks.pending(id)
	if s.maxPending > 0 && pending >= s.maxPending {
		return nil, fmt.Errorf("conversation %s has %d pending replies: %w", id, pending, ErrTooManyPending)
	}

	conv, err := s.store.Update(tenant, id, func(c *model.Conversation) error {
		c.Messages = append(c.Messages, model.Message{
			ID:        uuid.New().String(),
			Author:    model.AuthorUser,
			Text:      text,
			Timestamp: time.Now(),
		})
		c.PendingReplies = pending + 1
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conversation %s: %w", id, err)
	}

	replyCtx, done := s.tasks.start(id)
	s.wg.Add(1)
	go s.reply(replyCtx, done, tenant, id, text)

	logger.Debug(ctx, "reply scheduled", "conversation_id", id, "pending", pending+1)
	return conv, nil
}

func (s *ConversationService) reply(ctx context.Context, done func(), tenant, id, text string) {
	defer s.wg.Done()
	err := sleep(ctx, s.replyDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	done()

	if err != nil || ctx.Err() != nil {
		logger.Debug(ctx, "reply cancelled", "conversation_id", id)
		return
	}

	pending := s.tasks.pending(id)
	_, err = s.store.Update(tenant, id, func(c *model.Conversation) error {
		c.Messages = append(c.Messages, model.Message{
			ID:        uuid.New().String(),
			Author:    model.AuthorAssistant,
			Text:      ComposeReply(text),
			Timestamp: time.Now(),
		})
		c.PendingReplies = pending
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		logger.Debug(ctx, "reply dropped", "conversation_id", id, "error", err)
	}
}

// Reset drops every message except a fresh greeting and cancels pending replies
func (s *ConversationService) Reset(ctx context.Context, tenant, id string) (*model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.store.Update(tenant, id, func(c *model.Conversation) error {
		c.Messages = []model.Message{greetingMessage()}
		c.PendingReplies = 0
		c.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("conversation %s: %w", id, err)
	}
	s.tasks.cancel(id)

	logger.Info(ctx, "conversation reset", "conversation_id", id)
	return conv, nil
}

func (s *ConversationService) Delete(ctx context.Context, tenant, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(tenant, id) {
		return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	s.tasks.cancel(id)

	logger.Info(ctx, "conversation deleted", "conversation_id", id)
	return nil
}

func (s *ConversationService) cancelReplies(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks.cancel(id)
}

// Close cancels every pending reply and waits for them to exit
func (s *ConversationService) Close() {
	s.cancel()
	s.wg.Wait()
}
