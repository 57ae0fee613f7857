package i18n

import (
	"sort"
	"strings"
	"sync"

	"github.com/iamwavecut/tool"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/iamwavecut/telegram-persona-bot/resources"
)

const baseLanguage = "en"

var state = struct {
	translations       map[string]map[string]string // [key][LANG]translation
	availableLanguages []string
}{
	translations:       map[string]map[string]string{},
	availableLanguages: []string{baseLanguage},
}

var initialize sync.Once

func load() {
	initialize.Do(func() {
		raw, err := resources.FS.ReadFile("i18n.yaml")
		if err != nil {
			log.WithError(err).Errorln("cant load translations")
			return
		}
		if err := yaml.Unmarshal(raw, &state.translations); err != nil {
			log.WithError(err).Errorln("cant unmarshal translations")
			return
		}
		languages := map[string]struct{}{}
		for _, langs := range state.translations {
			for lang := range langs {
				languages[strings.ToLower(lang)] = struct{}{}
			}
		}
		for lang := range languages {
			if lang != baseLanguage {
				state.availableLanguages = append(state.availableLanguages, lang)
			}
		}
		sort.Strings(state.availableLanguages)
		log.Traceln("languages count:", len(state.availableLanguages))
	})
}

func GetLanguagesList() []string {
	load()
	return append([]string(nil), state.availableLanguages...)
}

// Normalize lowercases lang and drops a region suffix such as "-br".
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx > 0 {
		lang = lang[:idx]
	}
	return lang
}

// IsAvailable reports whether fallback strings exist for lang.
func IsAvailable(lang string) bool {
	return tool.In(Normalize(lang), GetLanguagesList())
}

// Get translates key, an English source string, into lang. Region suffixes
// are ignored. Unknown pairs fall back to the key itself.
func Get(key, lang string) string {
	load()

	lang = Normalize(lang)
	if lang == "" || lang == baseLanguage {
		return key
	}
	if res, ok := state.translations[key][strings.ToUpper(lang)]; ok {
		return res
	}
	log.Traceln(`no "` + lang + `" translation for key "` + key + `"`)
	return key
}
