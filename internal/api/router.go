package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rensmac/chat-summarizer/internal/api/handler"
	customMiddleware "github.com/rensmac/chat-summarizer/internal/api/middleware"
	"github.com/rensmac/chat-summarizer/internal/config"
	"github.com/rensmac/chat-summarizer/internal/llm"
	"github.com/rensmac/chat-summarizer/internal/llm/gemini"
	"github.com/rensmac/chat-summarizer/internal/llm/ollama"
	"github.com/rensmac/chat-summarizer/internal/llm/openai"
	"github.com/rensmac/chat-summarizer/internal/repository/mysql"
	"github.com/rensmac/chat-summarizer/internal/repository/redis"
	"github.com/rensmac/chat-summarizer/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mysql.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Initialize repositories
	conversationRepo := mysql.NewConversationRepository(db)
	summaryCache := redis.NewSummaryCache(redisClient, cfg.Redis.SummaryTTL)

	// Initialize LLM router with providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)

	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}

	// Initialize services
	conversationService := service.NewConversationService(conversationRepo, summaryCache)
	summaryService := service.NewSummaryService(
		conversationRepo,
		llmRouter,
		summaryCache,
		cfg.LLM.SummarizeTimeout,
	)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(conversationService, summaryService)

	// Health checks
	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(db))

	// Conversation routes
	r.Route("/chats", func(r chi.Router) {
		r.Post("/", chatHandler.Store)
		r.Post("/summarize", chatHandler.Summarize)

		r.Route("/{conversationID}", func(r chi.Router) {
			r.Get("/", chatHandler.Get)
			r.Post("/", chatHandler.AddMessage)
			r.Delete("/", chatHandler.Delete)
		})
	})

	r.Get("/users/{userID}/chats", chatHandler.ListByUser)

	return r
}
