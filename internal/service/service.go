package service

import (
	"github.com/redis/go-redis/v9"

	"lomba-poster/internal/config"
	"lomba-poster/internal/repository"
	"lomba-poster/internal/service/artwork"
	"lomba-poster/internal/service/auth"
	"lomba-poster/internal/service/comment"
	"lomba-poster/internal/service/judge"
	"lomba-poster/internal/service/leaderboard"
	"lomba-poster/internal/service/like"
	"lomba-poster/internal/service/moderation"
)

type Services struct {
	Auth        auth.Service
	Artwork     artwork.Service
	Comment     comment.Service
	Like        like.Service
	Judge       judge.Service
	Leaderboard leaderboard.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, filter *moderation.Filter, cfg *config.Config) *Services {
	leaderboardService := leaderboard.NewService(repos.Score, redis, cfg.CacheTTL)
	commentService := comment.NewService(repos.Artwork, repos.Comment, filter, redis, cfg.CommentMaxLength, cfg.CacheTTL)

	var likeStore like.Store = like.NewMemoryStore()
	if redis != nil {
		likeStore = like.NewRedisStore(redis)
	}

	return &Services{
		Auth:        auth.NewService(cfg),
		Artwork:     artwork.NewService(repos.Artwork, commentService, leaderboardService),
		Comment:     commentService,
		Like:        like.NewService(repos.Artwork, likeStore, leaderboardService),
		Judge:       judge.NewService(repos.Artwork, repos.Score, leaderboardService),
		Leaderboard: leaderboardService,
	}
}
