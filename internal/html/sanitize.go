package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/iamwavecut/tool"
	"golang.org/x/net/html"
)

// TelegramTags are the tags Telegram accepts with the HTML parse mode.
var TelegramTags = []string{"b", "i", "u", "s", "code", "pre", "a", "tg-spoiler"}

// Sanitize escapes every tag not in allowedTags so the text can be sent with
// the HTML parse mode. Line break tags become newlines, comments are dropped.
func Sanitize(input string, allowedTags []string) (string, error) {
	var output strings.Builder

	tokenizer := html.NewTokenizer(strings.NewReader(input))
	for {
		tokenType := tokenizer.Next()
		token := tokenizer.Token()

		switch tokenType {
		case html.ErrorToken: // end of the document
			if tokenizer.Err() != io.EOF {
				return output.String(), tokenizer.Err()
			}
			return output.String(), nil
		case html.TextToken:
			output.WriteString(html.EscapeString(token.Data))
		case html.SelfClosingTagToken:
			if token.Data == "br" {
				output.WriteString("\n")
				continue
			}
			output.WriteString(fmt.Sprintf("&lt;%s/&gt;", token.Data))
		case html.StartTagToken, html.EndTagToken:
			switch {
			case token.Data == "br":
				output.WriteString("\n")
			case tool.In(token.Data, allowedTags):
				// attribute values come back escaped already
				output.WriteString(token.String())
			default:
				tag := token.Data
				if tokenType == html.EndTagToken {
					tag = "/" + tag
				}
				output.WriteString(fmt.Sprintf("&lt;%s&gt;", tag))
			}
		}
	}
}
