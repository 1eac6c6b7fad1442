package v1

import (
	"log"

	"quicksync/internal/config"
	"quicksync/internal/database"
	"quicksync/internal/delivery/http/handler"
	"quicksync/internal/delivery/http/middleware"
	"quicksync/internal/encoder"
	"quicksync/internal/infrastructure/cache"
	"quicksync/internal/pkg/jwt"
	"quicksync/internal/repository"
	"quicksync/internal/usecase"
	"quicksync/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Hub     *ws.Hub
	Encoder encoder.TextEncoder
	Logger  *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	embeddingRepo := repository.NewPostgresEmbeddingRepository(deps.DB)
	teamRepo := repository.NewPostgresTeamRepository(deps.DB)
	invitationRepo := repository.NewPostgresInvitationRepository(deps.DB)
	projectRepo := repository.NewPostgresProjectRepository(deps.DB)
	sessionRepo := repository.NewPostgresSessionRepository(deps.DB)

	embeddingSvc := usecase.NewEmbeddingService(deps.Encoder, embeddingRepo)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, deps.Cache, deps.Logger)
	matchingUC := usecase.NewMatchingUsecase(userRepo, sessionRepo, embeddingSvc, deps.Cache, deps.Logger)
	teamUC := usecase.NewTeamUsecase(teamRepo, invitationRepo, userRepo, ws.NewNotifier(deps.Hub))
	projectUC := usecase.NewProjectUsecase(projectRepo, userRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	matchHandler := handler.NewMatchHandler(matchingUC)
	teamHandler := handler.NewTeamHandler(teamUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	wsHandler := ws.NewHandler(deps.Hub, jwtSvc, deps.Logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Lexical search and project suggestions work without a session;
	// suggestions are personalized when a token is supplied.
	matchmaking := r.Group("/matchmaking", authMw.OptionalMiddleware())
	matchHandler.RegisterPublicRoutes(matchmaking)
	projectHandler.RegisterRoutes(matchmaking)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)

	matchmakingProtected := protected.Group("/matchmaking")
	matchHandler.RegisterProtectedRoutes(matchmakingProtected)

	teamsGroup := protected.Group("/teams")
	teamHandler.RegisterRoutes(teamsGroup)

	r.Get("/ws", wsHandler.HandleWS)
}
