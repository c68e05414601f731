package usecase

import (
	"github.com/deckhand-app/deckhand/pkg/domain/interfaces"
	"github.com/deckhand-app/deckhand/pkg/domain/model/config"
)

type UseCases struct {
	repo        interfaces.Repository
	completion  interfaces.CompletionService
	boardConfig *config.BoardConfig
	Board       *BoardUseCase
	Chat        *ChatUseCase
	Auth        AuthUseCaseInterface
}

type Option func(*UseCases)

func WithCompletion(svc interfaces.CompletionService) Option {
	return func(uc *UseCases) {
		uc.completion = svc
	}
}

func WithBoardConfig(cfg *config.BoardConfig) Option {
	return func(uc *UseCases) {
		uc.boardConfig = cfg
	}
}

func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.boardConfig == nil {
		uc.boardConfig = config.DefaultBoardConfig()
	}

	uc.Board = NewBoardUseCase(repo, uc.boardConfig)
	uc.Chat = NewChatUseCase(repo, uc.completion, uc.Board, uc.boardConfig)

	return uc
}
