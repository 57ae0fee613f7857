package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

var jsonNull = []byte("null")

// Load reads the JSON configuration at path. It never fails: an absent or
// malformed file yields Defaults, and every key missing from a readable file
// falls back to its default individually. Provided values are coerced to the
// field type; a value that cannot be coerced keeps the default.
func Load(path string, logger log.FieldLogger) Config {
	defaults := Defaults()
	logger = logger.WithField("path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warnln("configuration file not found, using default configuration")
			return defaults
		}
		logger.WithError(err).Errorln("configuration file is not readable, using default configuration")
		return defaults
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		logger.WithError(err).Errorln("configuration file is not a valid JSON object, using default configuration")
		return defaults
	}
	fields, err := rawFields(raw)
	if err != nil {
		logger.WithError(err).Errorln("configuration file is not a valid JSON object, using default configuration")
		return defaults
	}

	cfg := defaults
	for _, key := range Keys {
		keyLogger := logger.WithField("key", key)
		value, ok := fields[strings.ToLower(key)]
		switch {
		case !ok:
			keyLogger.Errorln("missing key in configuration file, using default value")
		case bytes.Equal(bytes.TrimSpace(value), jsonNull):
			keyLogger.Errorln("null value in configuration file, using default value")
		default:
			if err := assign(&cfg, v, key); err != nil {
				keyLogger.WithError(err).Errorln("invalid value in configuration file, using default value")
			}
		}
	}
	logger.WithField("model", cfg.OpenAIModel).Debugln("configuration loaded")
	return cfg
}

// rawFields indexes the top-level members by lowercased name, matching the
// case-insensitive lookup viper does.
func rawFields(raw []byte) (map[string]json.RawMessage, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage, len(doc))
	for name, value := range doc {
		fields[strings.ToLower(name)] = value
	}
	return fields, nil
}

func assign(cfg *Config, v *viper.Viper, key string) error {
	var target *string
	switch key {
	case KeyNameVariants, KeyStickers:
		list, err := cast.ToStringSliceE(v.Get(key))
		if err != nil {
			return err
		}
		if key == KeyNameVariants {
			cfg.NameVariants = list
		} else {
			cfg.Stickers = list
		}
		return nil
	case KeyRolePrompt:
		target = &cfg.RolePrompt
	case KeyStartMessage:
		target = &cfg.StartMessage
	case KeyOpenAIBaseURL:
		target = &cfg.OpenAIBaseURL
	case KeyOpenAIKey:
		target = &cfg.OpenAIKey
	case KeyOpenAIModel:
		target = &cfg.OpenAIModel
	case KeyTelegramBotToken:
		target = &cfg.TelegramBotToken
	default:
		return nil
	}
	s, err := cast.ToStringE(v.Get(key))
	if err != nil {
		return err
	}
	*target = s
	return nil
}
