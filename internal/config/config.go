package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Env locates the configuration file and tunes diagnostics.
// Credentials are never read from the environment.
type Env struct {
	ConfigPath      string `env:"BOT_CONFIG,default=config.json"`
	LogLevel        string `env:"BOT_LOG_LEVEL,default=info"`
	DefaultLanguage string `env:"BOT_LANGUAGE,default=en"`
}

func LoadEnv(ctx context.Context, lookuper envconfig.Lookuper) (Env, error) {
	env := Env{}
	if err := envconfig.ProcessWith(ctx, &env, lookuper); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Config is built once at startup and passed by value to every component.
type Config struct {
	RolePrompt       string
	StartMessage     string
	NameVariants     []string
	Stickers         []string
	OpenAIBaseURL    string
	OpenAIKey        string
	OpenAIModel      string
	TelegramBotToken string
}

const (
	KeyRolePrompt       = "rolePrompt"
	KeyStartMessage     = "startMessage"
	KeyNameVariants     = "nameVariants"
	KeyStickers         = "stickers"
	KeyOpenAIBaseURL    = "openAIBaseUrl"
	KeyOpenAIKey        = "openAIKey"
	KeyOpenAIModel      = "openAIModel"
	KeyTelegramBotToken = "telegramBotToken"
)

// Keys lists every required key in file order.
var Keys = []string{
	KeyRolePrompt,
	KeyStartMessage,
	KeyNameVariants,
	KeyStickers,
	KeyOpenAIBaseURL,
	KeyOpenAIKey,
	KeyOpenAIModel,
	KeyTelegramBotToken,
}

func Defaults() Config {
	return Config{
		RolePrompt:       "You are a helpful assistant.",
		StartMessage:     "Hi! How can I help you?",
		NameVariants:     []string{"gpt"},
		Stickers:         []string{},
		OpenAIBaseURL:    "https://api.openai.com/v1",
		OpenAIKey:        "YOUR_OPENAI_API_KEY",
		OpenAIModel:      "gpt-4o-mini",
		TelegramBotToken: "YOUR_TELEGRAM_BOT_TOKEN",
	}
}
