package config

// ProviderType identifies an embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGoogle ProviderType = "google"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level datachat configuration, corresponding to .datachat.yml.
type Config struct {
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Persist           bool         `yaml:"persist" koanf:"persist"`
	Port              int          `yaml:"port" koanf:"port"`
	AllowAllOrigins   bool         `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	RowChunkSize      int          `yaml:"row_chunk_size" koanf:"row_chunk_size"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	OllamaURL         string       `yaml:"ollama_url" koanf:"ollama_url"`
}
