package history

import (
	"regexp"
	"strings"

	t "github.com/alexsergivan/transliterator"
)

const maxNameLen = 64

var nameDisallowed = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SpeakerName turns a display name into something the completion API accepts
// as a message name: transliterated, lowercased, [a-zA-Z0-9_-] only, at most
// 64 bytes. The result may be empty.
func SpeakerName(name string) string {
	name = t.NewTransliterator(nil).Transliterate(strings.ToLower(name), "en")
	name = strings.ReplaceAll(name, " ", "_")
	name = nameDisallowed.ReplaceAllString(name, "")
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name
}

// FullName joins first and last name, falling back to the @username and then
// to the numeric id.
func FullName(firstName, lastName, username, id string) string {
	name := strings.TrimSpace(firstName + " " + lastName)
	if name == "" && username != "" {
		name = "@" + username
	}
	if name == "" {
		name = id
	}
	return name
}
