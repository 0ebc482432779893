package bootstrap

import (
	"log"

	"loan-agent-be/internal/config"
	"loan-agent-be/internal/controller"
	"loan-agent-be/internal/pkg/logger"
	"loan-agent-be/internal/pkg/mailer"
	"loan-agent-be/internal/repository/memory"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/internal/service"
	"loan-agent-be/internal/step"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/embedding"
	"loan-agent-be/pkg/llm/factory"
	"loan-agent-be/pkg/retrieval"
	visiongemini "loan-agent-be/pkg/vision/gemini"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController

	// Services (exposed for main.go: consumer runs in the background,
	// conversation backs the terminal client, ingest backs cmd/ingest)
	ConversationService service.IConversationService
	ConsumerService     service.IConsumerService
	IngestService       service.IIngestService

	Logger *zap.Logger
}

// NewContainer wires the application against postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	return build(unitofwork.NewRepositoryFactory(db), cfg)
}

// NewMemoryContainer wires the application against the in-memory record
// store, for the terminal client and local demos without a database.
func NewMemoryContainer(cfg *config.Config) *Container {
	return build(memory.NewRepositoryFactory(memory.NewRecordStore()), cfg)
}

func build(uowFactory unitofwork.RepositoryFactory, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.New(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	visionProvider := visiongemini.NewGeminiProvider(cfg.Ai.GeminiApiKey, cfg.Ai.VisionModel)

	retriever := retrieval.NewPgVectorRetriever(uowFactory, embeddingProvider)

	// 4. Event services
	publisherService := service.NewPublisherService(pubSub)
	consumerService := service.NewConsumerService(pubSub, uowFactory, emailService, sysLogger)

	// 5. Dialogue steps
	registry, err := dialog.NewRegistry(
		step.NewGreetStep(uowFactory, cfg.Loan.StaffEmails),
		step.NewRegisterStep(uowFactory),
		step.NewIDVerifyStep(uowFactory, visionProvider),
		step.NewMenuStep(llmProvider),
		step.NewKnowledgeStep(llmProvider, retriever, cfg.Loan.RetrievalTopK),
		step.NewLoanStep(uowFactory, llmProvider, retriever, publisherService, sysLogger, cfg.Loan.DefaultAnnualRate),
		step.NewPortalStep(uowFactory, publisherService, sysLogger),
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to build step registry: %v", err)
	}

	sessionRepo := memory.NewSessionRepository()
	conversationService := service.NewConversationService(registry, sessionRepo, sysLogger)
	ingestService := service.NewIngestService(uowFactory, embeddingProvider, sysLogger)

	return &Container{
		ConversationController: controller.NewConversationController(conversationService, cfg.App.UploadsDir),
		ConversationService:    conversationService,
		ConsumerService:        consumerService,
		IngestService:          ingestService,
		Logger:                 sysLogger,
	}
}
