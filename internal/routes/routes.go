package routes

import (
	"context"
	"fmt"

	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/config"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/database"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/handlers"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/idgen"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/middleware"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/repository"
	"github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/services"
	feedws "github.com/C1oudyBawi/Group2DevOps-AungBawi/internal/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RegisterRoutes wires the store into the HTTP surface. The event feed hub
// runs until ctx is canceled.
func RegisterRoutes(
	ctx context.Context,
	app *fiber.App,
	cfg *config.Config,
	db *database.JSONDatabase,
	logger *zap.Logger,
) error {
	if cfg.EnableMetrics {
		metrics := middleware.NewMetrics()
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	ids, err := idgen.NewSnowflake(cfg.NodeID)
	if err != nil {
		return fmt.Errorf("create id generator: %w", err)
	}

	programRepo := repository.NewGymProgramRepository(db)
	memberRepo := repository.NewMemberRepository(db)

	feedHub := feedws.NewHub(logger)
	go feedHub.Run(ctx)

	programService := services.NewProgramService(programRepo, ids, logger).WithEvents(feedHub)
	programHandler := handlers.NewProgramHandler(programService, logger)
	memberService := services.NewMemberService(memberRepo, ids, logger).WithEvents(feedHub)
	memberHandler := handlers.NewMemberHandler(memberService, logger)

	api := app.Group("/api")

	api.Use("/events", feedws.UpgradeRequired)
	api.Get("/events", feedHub.Handler())

	programs := api.Group("/gym-programs")
	programs.Post("/create", programHandler.CreateProgram)
	programs.Get("/", programHandler.ListPrograms)
	programs.Put("/update/:id", programHandler.UpdateProgram)
	programs.Delete("/delete-by-name", programHandler.DeleteProgramByName)
	programs.Get("/:id", programHandler.GetProgram)

	members := api.Group("/members")
	members.Post("/create", memberHandler.CreateMember)
	members.Get("/", memberHandler.ListMembers)
	members.Put("/update/:id", memberHandler.UpdateMember)
	members.Delete("/delete/:id", memberHandler.DeleteMember)
	members.Post("/:id/programs/:programId", memberHandler.AssignProgram)
	members.Get("/:id", memberHandler.GetMember)

	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	if cfg.StaticDir != "" {
		app.Static("/", cfg.StaticDir)
	}

	return nil
}
