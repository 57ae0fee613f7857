package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mr-linch/go-tg"
	"github.com/mr-linch/go-tg/tgb"
	"github.com/sethvargo/go-envconfig"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iamwavecut/telegram-persona-bot/internal/completion"
	"github.com/iamwavecut/telegram-persona-bot/internal/config"
	"github.com/iamwavecut/telegram-persona-bot/internal/engage"
	"github.com/iamwavecut/telegram-persona-bot/internal/handlers"
	"github.com/iamwavecut/telegram-persona-bot/internal/history"
	"github.com/iamwavecut/telegram-persona-bot/internal/i18n"
	"github.com/iamwavecut/telegram-persona-bot/internal/infra"
	"github.com/iamwavecut/telegram-persona-bot/resources/consts"
)

var errExecutableModified = errors.New("executable file was modified")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.SetFormatter(&config.LineFormatter{})

	env, err := config.LoadEnv(ctx, envconfig.OsLookuper())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	level, err := log.ParseLevel(env.LogLevel)
	if err != nil {
		log.WithError(err).Warnln("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if !i18n.IsAvailable(env.DefaultLanguage) {
		log.WithField("language", env.DefaultLanguage).Warnln("unsupported default language, using en")
		env.DefaultLanguage = "en"
	}

	err = run(ctx, env)
	switch {
	case errors.Is(err, errExecutableModified):
		log.Errorln(err)
		os.Exit(0)
	case err != nil && !errors.Is(err, context.Canceled):
		log.WithError(err).Errorln("bot stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, env config.Env) error {
	logger := log.StandardLogger()
	cfg := config.Load(env.ConfigPath, logger)

	client := tg.New(cfg.TelegramBotToken)
	me, err := client.GetMe().Do(ctx)
	if err != nil {
		return fmt.Errorf("get bot identity: %w", err)
	}
	logger.WithField("username", string(me.Username)).Infoln("starting")

	responder := &handlers.Responder{
		Transcript: history.New(cfg.RolePrompt),
		Completer:  completion.New(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.OpenAIModel),
		Out:        handlers.Telegram{Client: client},
		Policy: engage.Policy{
			BotID:    int64(me.ID),
			Names:    cfg.NameVariants,
			Stickers: cfg.Stickers,
			Source:   engage.DefaultSource,
		},
		Pause:           consts.DurationParagraphPause,
		TypingInterval:  consts.DurationTyping,
		DefaultLanguage: env.DefaultLanguage,
		Logger:          logger,
	}

	router := handlers.NewRouter(cfg.StartMessage, responder, logger)

	changed, err := infra.WatchExecutable(ctx, consts.DurationExecutableCheck)
	if err != nil {
		return fmt.Errorf("watch executable: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tgb.NewPoller(
			router,
			client,
			tgb.WithPollerRetryAfter(consts.DurationPollerRetryAfter),
		).Run(gCtx)
	})
	g.Go(func() error {
		select {
		case <-changed:
			return errExecutableModified
		case <-gCtx.Done():
			return nil
		}
	})
	return g.Wait()
}
