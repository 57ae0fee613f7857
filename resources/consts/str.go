package consts

const (
	StrNoAnswer     = "Sorry, I don't have an answer."
	StrRequestError = "Unfortunately, there was an error during the request. " +
		"Please try again later."
)
