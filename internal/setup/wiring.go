package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/cache"
	"github.com/tpetrov/safellm/internal/config"
	"github.com/tpetrov/safellm/internal/guardrail"
	"github.com/tpetrov/safellm/internal/llm"
	"github.com/tpetrov/safellm/internal/llm/bedrock"
	"github.com/tpetrov/safellm/internal/llm/gpt"
	"github.com/tpetrov/safellm/internal/predictor"
	redisconn "github.com/tpetrov/safellm/internal/redis"
	"github.com/tpetrov/safellm/internal/similarity"
)

type Config struct {
	AWSRegion     string
	OpenAIKey     string
	RedisAddr     string
	RedisPassword string
	CacheBackend  string
	APIPort       string
	MaxCacheSize  int
}

type Dependencies struct {
	Config     *config.Config
	Input      *guardrail.Engine
	Output     *guardrail.Engine
	Similarity *similarity.Service
	Cache      *cache.Cache
	Predictor  *predictor.Predictor
	Logger     *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		OpenAIKey:     getEnv("OPEN_AI_KEY", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheBackend:  getEnv("CACHE_BACKEND", "memory"),
		APIPort:       getEnv("SAFELLM_API_PORT", "18080"),
		MaxCacheSize:  getEnvInt("MAX_CACHE_SIZE", 1000),
	}
}

func Wire(ctx context.Context, envCfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := similarity.NewService("")
	if err != nil {
		return nil, err
	}

	input, err := buildEngine(cfg, guardrail.TypeInput)
	if err != nil {
		return nil, err
	}
	output, err := buildEngine(cfg, guardrail.TypeOutput)
	if err != nil {
		return nil, err
	}

	store, err := createCacheStore(ctx, envCfg, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache store: %w", err)
	}

	responseCache := cache.New(store, svc, cache.Options{
		Method:    similarity.Method(cfg.Cache.Method),
		Threshold: cfg.Cache.Threshold,
		TTL:       cfg.Cache.ParsedTTL,
	})

	llmClient, err := createLLMClient(ctx, envCfg, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	gen := &llmGenerator{
		client:       llmClient,
		systemPrompt: cfg.Prediction.SystemPrompt,
		maxTokens:    cfg.Prediction.Parameters.MaxTokens,
		temperature:  cfg.Prediction.Parameters.TemperatureOrDefault(),
	}

	pred := predictor.New(input, output, responseCache, gen, logger)

	return &Dependencies{
		Config:     cfg,
		Input:      input,
		Output:     output,
		Similarity: svc,
		Cache:      responseCache,
		Predictor:  pred,
		Logger:     logger,
	}, nil
}

func buildEngine(cfg *config.Config, t guardrail.Type) (*guardrail.Engine, error) {
	gcfg := cfg.Guardrail(t)
	if gcfg == nil {
		// No guardrail configured for this side; validation passes through.
		return nil, nil
	}
	engine, err := guardrail.NewEngine(*gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s guardrail: %w", t, err)
	}
	return engine, nil
}

func createCacheStore(ctx context.Context, envCfg *Config, cfg *config.Config) (cache.Store, error) {
	maxEntries := cfg.Cache.MaxEntries
	if maxEntries == 0 {
		maxEntries = envCfg.MaxCacheSize
	}

	switch envCfg.CacheBackend {
	case "", "memory":
		return cache.NewMemoryStore(maxEntries), nil
	case "redis":
		client, err := redisconn.ConnectRedis(ctx, envCfg.RedisAddr, envCfg.RedisPassword, 5)
		if err != nil {
			return nil, err
		}
		return cache.NewRedisStore(client, "", maxEntries, cfg.Cache.ParsedTTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", envCfg.CacheBackend)
	}
}

func createLLMClient(ctx context.Context, envCfg *Config, cfg *config.Config) (llm.Client, error) {
	switch cfg.Prediction.Provider {
	case "openai":
		return gpt.NewClient(envCfg.OpenAIKey, cfg.Prediction.Model)
	case "", "bedrock":
		return bedrock.NewClient(ctx, envCfg.AWSRegion, cfg.Prediction.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Prediction.Provider)
	}
}

// llmGenerator adapts an llm.Client to the predictor's Generator, applying
// the configured system prompt and model parameters to every call.
type llmGenerator struct {
	client       llm.Client
	systemPrompt string
	maxTokens    int
	temperature  float64
}

func (g *llmGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateWithRetry(ctx, llm.Request{
		Prompt:       prompt,
		SystemPrompt: g.systemPrompt,
		MaxTokens:    g.maxTokens,
		Temperature:  g.temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
