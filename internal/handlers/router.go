package handlers

import (
	"github.com/mr-linch/go-tg/tgb"
	log "github.com/sirupsen/logrus"
)

// NewRouter answers /start with greeting and sends every other text message
// through the responder. Updates without text are dropped.
func NewRouter(greeting string, r *Responder, logger log.FieldLogger) *tgb.Router {
	return tgb.NewRouter().
		Message(Start(greeting), tgb.Command("start")).
		Message(Chat(r), HasText).
		Error(Errors(logger))
}
