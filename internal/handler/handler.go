package handler

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lomba-poster/internal/middleware"
	"lomba-poster/internal/service"
)

type Handlers struct {
	Auth        *AuthHandler
	Artwork     *ArtworkHandler
	Comment     *CommentHandler
	Like        *LikeHandler
	Leaderboard *LeaderboardHandler
	Judge       *JudgeHandler
	Admin       *AdminHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:        NewAuthHandler(services.Auth),
		Artwork:     NewArtworkHandler(services.Artwork),
		Comment:     NewCommentHandler(services.Comment),
		Like:        NewLikeHandler(services.Like),
		Leaderboard: NewLeaderboardHandler(services.Leaderboard),
		Judge:       NewJudgeHandler(services.Judge),
		Admin:       NewAdminHandler(services.Artwork, services.Comment, services.Judge),
	}
}

func parseID(c *fiber.Ctx, param, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + what + " ID")
	}
	return id, nil
}

// validationError turns ozzo field errors into a 422; other errors pass through.
func validationError(err error) error {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return middleware.Unprocessable(verrs.Error())
	}
	return err
}
