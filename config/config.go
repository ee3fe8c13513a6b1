package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr  string `default:"" env:"APP_HOST"`
		Port        int    `default:"8080"  env:"APP_PORT"`
		BodyLimit   int    `default:"10485760" env:"APP_BODY_LIMIT"`
		SwaggerFile string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
		LogLevel    string `default:"info" env:"LOG_LEVEL"`
	}
	Database struct {
		Driver         string `default:"postgres" env:"DB_DRIVER"` // postgres, mysql, sqlite
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"techscreen" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		SqlitePath     string `default:"techscreen_dev.db" env:"DB_SQLITE_PATH"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	LLM struct {
		Provider      string `default:"anthropic" env:"LLM_PROVIDER"` // anthropic, openai, gemini, yandexgpt, mock
		MaxTokens     int    `default:"4000" env:"LLM_MAX_TOKENS"`
		MaxAttempts   int    `default:"3" env:"LLM_MAX_ATTEMPTS"`
		RetryDelaySec int    `default:"2" env:"LLM_RETRY_DELAY_SEC"`
		Anthropic     struct {
			APIKey  string `default:"" env:"CLAUDE_API_KEY"`
			Model   string `default:"claude-opus-4-1" env:"CLAUDE_MODEL"`
			BaseURL string `default:"" env:"CLAUDE_BASE_URL"`
		}
		OpenAI struct {
			APIKey  string `default:"" env:"OPENAI_API_KEY"`
			Model   string `default:"gpt-4o" env:"OPENAI_MODEL"`
			BaseURL string `default:"" env:"OPENAI_BASE_URL"`
		}
		Gemini struct {
			APIKey string `default:"" env:"GEMINI_API_KEY"`
			Model  string `default:"gemini-2.0-flash" env:"GEMINI_MODEL"`
		}
		YandexGPT struct {
			IAMToken  string `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
			CatalogID string `default:"" env:"YANDEX_GPT_CATALOG_ID"`
		}
	}
	Generation struct {
		QuestionCount        int     `default:"5" env:"INTERVIEW_QUESTION_COUNT"`
		CriteriaMin          int     `default:"8" env:"QUESTION_CRITERIA_MIN"`
		CriteriaMax          int     `default:"10" env:"QUESTION_CRITERIA_MAX"`
		EnhanceTemperature   float64 `default:"0.3" env:"ENHANCE_TEMPERATURE"`
		InterviewTemperature float64 `default:"0.4" env:"INTERVIEW_TEMPERATURE"`
		StaleLogMinutes      int     `default:"30" env:"GENERATION_STALE_LOG_MINUTES"`
		StaleCheckMinutes    int     `default:"5" env:"GENERATION_STALE_CHECK_MINUTES"`
	}
	Cache struct {
		Enabled *bool `default:"true" env:"ENABLE_QUESTION_CACHE"`
	}
	S3 struct {
		Endpoint         string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID      string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey  string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName       string `default:"techscreen" env:"S3_BUCKET_NAME"`
		UseSSL           *bool  `default:"false" env:"S3_USE_SSL"`
		PresignExpireSec int    `default:"3600" env:"S3_PRESIGN_EXPIRE_SEC"`
	}
	Smtp struct {
		User        string `default:"" env:"SMTP_USER"`
		Password    string `default:"" env:"SMTP_PASSWORD"`
		Host        string `default:"" env:"SMTP_HOST"`
		Port        string `default:"" env:"SMTP_PORT"`
		TLSEnabled  *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		NotifyEmail string `default:"" env:"SMTP_NOTIFY_EMAIL"`
	}
}

func configFiles(path string) []string {
	if path == "" {
		return []string{"config.yml"}
	}
	return []string{path}
}

// Load reads the configuration from the given file (config.yml when empty) and the environment.
func Load(path string) (*Configuration, error) {
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles(path)...)
	if err != nil {
		return nil, err
	}
	return conf, nil
}

func InitConfig(path string) {
	if Conf != nil {
		return
	}
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
