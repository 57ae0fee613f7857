package consts

import (
	"time"
)

const (
	// DurationParagraphPause separates consecutive paragraphs of one reply.
	DurationParagraphPause = 500 * time.Millisecond

	// DurationTyping is how often the typing indicator is refreshed while
	// a completion is in flight; Telegram drops it after about 5 seconds.
	DurationTyping = 4 * time.Second

	DurationExecutableCheck = 5 * time.Second

	DurationPollerRetryAfter = time.Minute
)
