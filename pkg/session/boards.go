package session

import (
	"context"
	"sync"

	"tasktrack/domain/dto"
	"tasktrack/pkg/logger"
)

type BoardsGateway interface {
	ListBoards(ctx context.Context) ([]dto.BoardResponse, error)
}

// BoardsStore board list of the signed in user; refetched whenever the user id changes
type BoardsStore struct {
	*Store[[]dto.BoardResponse]

	gw   BoardsGateway
	auth *AuthStore

	mu          sync.Mutex
	userID      string
	ctx         context.Context
	unsubscribe func()
}

func NewBoardsStore(gw BoardsGateway, auth *AuthStore) *BoardsStore {
	return &BoardsStore{
		Store: NewStore[[]dto.BoardResponse](nil),
		gw:    gw,
		auth:  auth,
	}
}

// Start follows the auth store and loads the boards of the current user, if any
func (b *BoardsStore) Start(ctx context.Context) {
	b.mu.Lock()
	b.ctx = ctx
	b.mu.Unlock()

	unsubscribe := b.auth.Subscribe(func(user *dto.UserResponse) {
		b.userChanged(user)
	})

	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()

	b.userChanged(b.auth.User())
}

func (b *BoardsStore) Close() {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *BoardsStore) Boards() []dto.BoardResponse {
	return b.Get()
}

func (b *BoardsStore) userChanged(user *dto.UserResponse) {
	id := ""
	if user != nil {
		id = user.ID
	}

	b.mu.Lock()
	if id == b.userID {
		b.mu.Unlock()
		return
	}
	b.userID = id
	ctx := b.ctx
	b.mu.Unlock()

	if id == "" {
		b.Set(nil)
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	b.RefreshBoards(ctx)
}

// RefreshBoards refetches the list; a failed fetch publishes an empty list
func (b *BoardsStore) RefreshBoards(ctx context.Context) {
	boards, err := b.gw.ListBoards(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Failed to load boards", "error", err)
		boards = []dto.BoardResponse{}
	}
	b.Set(boards)
}
