package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ziadkadry99/datachat/internal/chunker"
	"github.com/ziadkadry99/datachat/internal/config"
	"github.com/ziadkadry99/datachat/internal/embeddings"
	"github.com/ziadkadry99/datachat/internal/retrieval"
	"github.com/ziadkadry99/datachat/internal/vectordb"
)

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
// This is the shared version used by the serve, ingest, and query commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(cfg.EmbeddingProvider)
	}

	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	case config.ProviderGoogle:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderGoogle))
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is required for Google embeddings")
		}
		return embeddings.NewGoogleEmbedder(apiKey, embeddings.GoogleModel(model)), nil
	case config.ProviderOllama:
		// Local model servers handle one embedding request at a time.
		return embeddings.Serialized(embeddings.NewOllamaEmbedder(model, 768, cfg.OllamaURL)), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

// createRetrievalService wires the vector store and embedder into a
// retrieval service per the loaded config.
func createRetrievalService(cfg *config.Config) (*retrieval.Service, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	var store vectordb.Store
	if cfg.Persist {
		store, err = vectordb.NewPersistentChromemStore(filepath.Join(cfg.DataDir, "vectordb"), embedder)
		if err != nil {
			return nil, fmt.Errorf("creating vector store: %w", err)
		}
	} else {
		store = vectordb.NewChromemStore(embedder)
	}

	return retrieval.NewService(store, embedder, retrieval.Options{
		Chunking:    chunker.Options{RowChunkSize: cfg.RowChunkSize},
		DefaultTopK: cfg.TopK,
	}), nil
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `datachat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
