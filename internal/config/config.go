package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	OpenAI      OpenAI      `mapstructure:",squash"`
	Resend      Resend      `mapstructure:",squash"`
	Catalog     Catalog     `mapstructure:",squash"`
	Customers   Customers   `mapstructure:",squash"`
	Dispatch    Dispatch    `mapstructure:",squash"`
	Preview     Preview     `mapstructure:",squash"`
	Matching    Matching    `mapstructure:",squash"`
	ProfileSync ProfileSync `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type OpenAI struct {
	URL         string  `mapstructure:"openai_url"`
	APIKey      string  `mapstructure:"openai_api_key"`
	Model       string  `mapstructure:"openai_model"`
	MaxTokens   int     `mapstructure:"openai_max_tokens"`
	Temperature float64 `mapstructure:"openai_temperature"`
}

type Resend struct {
	URL       string `mapstructure:"resend_url"`
	APIKey    string `mapstructure:"resend_api_key"`
	FromName  string `mapstructure:"resend_from_name"`
	FromEmail string `mapstructure:"resend_from_email"`
}

type Catalog struct {
	ProductsFile string `mapstructure:"catalog_products_file"`
	UsersFile    string `mapstructure:"catalog_users_file"`
	ExportDir    string `mapstructure:"catalog_export_dir"`
}

type Customers struct {
	SpreadsheetFile string `mapstructure:"customers_spreadsheet_file"`
	SheetName       string `mapstructure:"customers_sheet_name"`
}

type Dispatch struct {
	ChunkSize      int `mapstructure:"dispatch_chunk_size"`
	BatchChunkSize int `mapstructure:"dispatch_batch_chunk_size"`
	ChunkDelayMS   int `mapstructure:"dispatch_chunk_delay_ms"`
}

type Preview struct {
	CacheTTLMinutes int `mapstructure:"preview_cache_ttl_minutes"`
}

type Matching struct {
	RequestDelayMS int `mapstructure:"match_request_delay_ms"`
}

type ProfileSync struct {
	CronSchedule   string `mapstructure:"profile_sync_cron"`
	RequestDelayMS int    `mapstructure:"profile_sync_request_delay_ms"`
	Enabled        bool   `mapstructure:"profile_sync_enabled"`
}

// ChunkDelay converte a configuração em uma duração utilizável
func (d Dispatch) ChunkDelay() time.Duration {
	return time.Duration(d.ChunkDelayMS) * time.Millisecond
}

// CacheTTL converte a configuração em uma duração utilizável
func (p Preview) CacheTTL() time.Duration {
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// RequestDelay converte a configuração em uma duração utilizável
func (m Matching) RequestDelay() time.Duration {
	return time.Duration(m.RequestDelayMS) * time.Millisecond
}

// RequestDelay converte a configuração em uma duração utilizável
func (p ProfileSync) RequestDelay() time.Duration {
	return time.Duration(p.RequestDelayMS) * time.Millisecond
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("OPENAI_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4")
	viper.SetDefault("OPENAI_MAX_TOKENS", 1000)
	viper.SetDefault("OPENAI_TEMPERATURE", 0.7)

	viper.SetDefault("RESEND_URL", "https://api.resend.com")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("RESEND_FROM_NAME", "Nudge Marketing")
	viper.SetDefault("RESEND_FROM_EMAIL", "ofertas@nudge.example.com")

	viper.SetDefault("CATALOG_PRODUCTS_FILE", "data/products.json")
	viper.SetDefault("CATALOG_USERS_FILE", "data/users.json")
	viper.SetDefault("CATALOG_EXPORT_DIR", "data/exports")

	viper.SetDefault("CUSTOMERS_SPREADSHEET_FILE", "data/nudge_customers.xlsx")
	viper.SetDefault("CUSTOMERS_SHEET_NAME", "")

	// Defaults do pipeline de disparo. Os valores são política, não invariante:
	// 3 por chunk no fluxo interativo e até 100 no fluxo em lote (limite do provedor).
	viper.SetDefault("DISPATCH_CHUNK_SIZE", 3)
	viper.SetDefault("DISPATCH_BATCH_CHUNK_SIZE", 100)
	viper.SetDefault("DISPATCH_CHUNK_DELAY_MS", 1000) // 1 segundo entre chunks

	viper.SetDefault("PREVIEW_CACHE_TTL_MINUTES", 60)

	viper.SetDefault("MATCH_REQUEST_DELAY_MS", 1000) // 1 segundo entre chamadas à IA

	viper.SetDefault("PROFILE_SYNC_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("PROFILE_SYNC_REQUEST_DELAY_MS", 1000)
	viper.SetDefault("PROFILE_SYNC_ENABLED", false)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
