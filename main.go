package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	apihttp "apyx-assistant/adapters/http"
	"apyx-assistant/adapters/llm"
	"apyx-assistant/adapters/message_broker"
	"apyx-assistant/adapters/speech"
	"apyx-assistant/adapters/storage"
	"apyx-assistant/adapters/tts"
	"apyx-assistant/adapters/websocket"
	"apyx-assistant/config"
	"apyx-assistant/domain"
	"apyx-assistant/usecase"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Providers join the chain in priority order; a missing credential
	// simply leaves that provider out, which the orchestrator treats
	// the same as an attempted-and-failed call.
	var providers []domain.CompletionProvider
	var extractor domain.StructuredCompleter
	if cfg.HasPrimaryProvider() {
		gemini, err := llm.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("creating gemini provider: %v", err)
		}
		providers = append(providers, gemini)
		extractor = gemini
	}
	if cfg.HasSecondaryProvider() {
		providers = append(providers, llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel))
	}
	if len(providers) == 0 {
		log.Println("WARNING: no provider credentials configured, chat will answer with canned replies only")
	}

	var store domain.Store
	if cfg.RedisAddr != "" {
		store = storage.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Printf("Using redis store at %s", cfg.RedisAddr)
	} else {
		store = storage.NewMemoryStore()
	}

	broker := message_broker.NewChannelMessageBroker()
	defer broker.Close()

	chatService := usecase.NewChatService(providers, store, broker)

	var primary domain.CompletionProvider
	if len(providers) > 0 {
		primary = providers[0]
	}
	assistantService := usecase.NewAssistantService(primary, extractor)

	server := websocket.NewServer(broker)
	go server.RunWebsocketHub()

	// Voice endpoints only come up when Google credentials exist.
	var transcriber apihttp.Transcriber
	var synthesizer apihttp.Synthesizer
	if cfg.GoogleCredentials != "" {
		googleSpeech, err := speech.NewGoogleSpeech(ctx)
		if err != nil {
			log.Printf("WARNING: speech recognition disabled: %v", err)
		} else {
			transcriber = googleSpeech
			defer googleSpeech.Close()
		}
		googleTTS, err := tts.NewGoogleTTS(ctx)
		if err != nil {
			log.Printf("WARNING: speech synthesis disabled: %v", err)
		} else {
			synthesizer = googleTTS
			defer googleTTS.Close()
		}
	}

	handler := apihttp.NewHandler(chatService, assistantService, store, transcriber, synthesizer)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per minute

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			"Content-Length",
		},
		MaxAge: 86400, // 24 hours
	}))

	e.Use(middleware.BodyLimit("10MB"))

	handler.Register(e)
	e.GET("/ws", server.Handler)

	log.Printf("Starting server on :%s", cfg.Port)
	log.Fatal(e.Start(":" + cfg.Port))
}
