package config

// defaultEmbeddingModels maps each provider to its default embedding model.
var defaultEmbeddingModels = map[ProviderType]string{
	ProviderOpenAI: "text-embedding-3-small",
	ProviderGoogle: "text-embedding-004",
	ProviderOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    defaultEmbeddingModels[ProviderOpenAI],
		DataDir:           ".datachat",
		Persist:           false,
		Port:              8080,
		AllowAllOrigins:   true,
		RowChunkSize:      100,
		TopK:              5,
		OllamaURL:         "http://localhost:11434",
	}
}

// DefaultEmbeddingModel returns the default embedding model for a provider,
// falling back to the OpenAI default for unknown providers.
func DefaultEmbeddingModel(provider ProviderType) string {
	if model, ok := defaultEmbeddingModels[provider]; ok {
		return model
	}
	return defaultEmbeddingModels[ProviderOpenAI]
}
