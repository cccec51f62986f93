package wire

import (
	"Postcraft/internal/api"
	"Postcraft/internal/api/config"
	"Postcraft/internal/api/dto"
	"Postcraft/internal/api/handler"
	"Postcraft/internal/job"
	"Postcraft/internal/pkg/cache"
	"Postcraft/internal/pkg/cron"
	"Postcraft/internal/pkg/kafka"
	"Postcraft/internal/pkg/learning"
	"Postcraft/internal/pkg/llm"
	"Postcraft/internal/pkg/mongo"
	"Postcraft/internal/pkg/util"
	"Postcraft/internal/repository"
	"Postcraft/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Services 所有业务服务及其共享的状态持有者
type Services struct {
	Accounts *service.AccountHolder
	Profiles *service.ProfileHolder

	Prompt      service.PromptService
	Draft       service.DraftService
	Post        service.PostService
	Edit        service.EditService
	Insights    service.InsightsService
	Preferences service.PreferencesService
	Feedback    service.FeedbackService
	UserAdmin   service.UserAdminService
	Auth        service.AuthService
}

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Services     *Services
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
}

// BuildServices mongoDB 为 nil 时不记录生成历史
func BuildServices(db *gorm.DB, mongoDB *mongodriver.Database, client llm.Completer, cfg *config.Config) *Services {
	userRepo := repository.NewUserRepo(db)
	promptRepo := repository.NewPromptRepo(db)
	postRepo := repository.NewPostRepo(db)
	prefsRepo := repository.NewPreferencesRepo(db)
	editRepo := repository.NewEditRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)

	var history mongo.GenerationHistoryRepo = mongo.NopHistoryRepo{}
	if mongoDB != nil {
		history = mongo.NewGenerationHistoryRepo(mongoDB)
	}

	accounts := service.NewAccountHolder(userRepo, cfg.Cache.AccountTTLDuration())
	profiles := service.NewProfileHolder(prefsRepo, cfg.Cache.ProfileTTLDuration())

	insightsCache := cache.New[*dto.EditInsightsDTO]("insights", cache.NewRedisStore(), cfg.Cache.InsightsTTLDuration())
	insightsSvc := service.NewInsightsService(editRepo, insightsCache)

	engine := learning.NewEngine(editRepo)
	debouncer := util.NewDebouncer(cfg.EditTracking.Quiescence())
	editSvc := service.NewEditService(editRepo, postRepo, insightsSvc, debouncer)

	return &Services{
		Accounts:    accounts,
		Profiles:    profiles,
		Prompt:      service.NewPromptService(client, profiles, promptRepo, feedbackRepo, userRepo, history, cfg.Server.Location()),
		Draft:       service.NewDraftService(client, profiles, engine, promptRepo, postRepo, history),
		Post:        service.NewPostService(postRepo, promptRepo, editSvc),
		Edit:        editSvc,
		Insights:    insightsSvc,
		Preferences: service.NewPreferencesService(prefsRepo, profiles),
		Feedback:    service.NewFeedbackService(feedbackRepo, postRepo),
		UserAdmin:   service.NewUserAdminService(userRepo, accounts),
		Auth:        service.NewAuthService(),
	}
}

func BuildApplication(db *gorm.DB, mongoDB *mongodriver.Database, client llm.Completer, cfg *config.Config) (*ApplicationContainer, error) {
	svcs := BuildServices(db, mongoDB, client, cfg)

	handlers := &api.HandlersGroup{
		PromptHandler:      handler.NewPromptHandler(svcs.Prompt),
		DraftHandler:       handler.NewDraftHandler(svcs.Draft),
		PostHandler:        handler.NewPostHandler(svcs.Post),
		EditHandler:        handler.NewEditHandler(svcs.Edit, svcs.Insights),
		PreferencesHandler: handler.NewPreferencesHandler(svcs.Preferences),
		FeedbackHandler:    handler.NewFeedbackHandler(svcs.Feedback),
		UserHandler:        handler.NewUserHandler(svcs.Auth, svcs.UserAdmin),
		Accounts:           svcs.Accounts,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	}

	router := api.SetupRouter(handlers)

	staleJob := job.NewStalePromptJob(svcs.Prompt, cfg.Cron.StaleGraceDays)
	cronMgr := cron.NewCronManager(staleJob, cfg.Cron.StalePromptSpec)

	app := &ApplicationContainer{
		Router:   router,
		DB:       db,
		Services: svcs,
		CronMgr:  cronMgr,
	}

	if cfg.Kafka.Enabled {
		kafkaMgr, err := kafka.NewConsumerManager(cfg, kafka.Invalidators{
			Preferences: func(ctx context.Context, userID uint64) error {
				_, err := svcs.Profiles.Invalidate(ctx, userID)
				return err
			},
			Users: func(ctx context.Context, userID uint64) error {
				_, err := svcs.Accounts.Invalidate(ctx, userID)
				return err
			},
			Edits: svcs.Insights.Invalidate,
		})
		if err != nil {
			return nil, err
		}
		app.KafkaManager = kafkaMgr
	}

	return app, nil
}
