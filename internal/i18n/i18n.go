// Package i18n translates the handful of timer labels shown in the UI.
package i18n

import (
	"log"
	"strings"

	"github.com/jeandeaual/go-locale"
)

const DefaultLang = "en"

var translations = map[string]map[string]string{
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
	},
	"Resume": {
		"pt": "Continuar",
		"es": "Reanudar",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
	},
	"Done": {
		"pt": "Concluído",
		"es": "Terminado",
	},
	"Time's up!": {
		"pt": "Acabou o tempo!",
		"es": "¡Se acabó el tiempo!",
	},
	"Nothing to archive": {
		"pt": "Nada para arquivar",
		"es": "Nada que archivar",
	},
}

var supported = []string{"pt", "es", "en"}

type Translator struct {
	lang string
}

func New(lang string) *Translator {
	return &Translator{lang: Normalize(lang)}
}

// Detect picks the language from override when set, otherwise from the
// system locale.
func Detect(override string) string {
	if forced := strings.TrimSpace(override); forced != "" {
		return Normalize(forced)
	}
	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Printf("i18n: could not get user locale, defaulting to %s: %v", DefaultLang, err)
		return DefaultLang
	}
	if len(userLocales) == 0 {
		return DefaultLang
	}
	return Normalize(userLocales[0])
}

// Normalize maps a locale tag such as "pt-BR" or "es_MX.UTF-8" onto a
// supported language.
func Normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, l := range supported {
		if strings.HasPrefix(tag, l) {
			return l
		}
	}
	return DefaultLang
}

func (t *Translator) T(key string) string {
	if t == nil {
		return key
	}
	if translated, ok := translations[key][t.lang]; ok {
		return translated
	}
	return key
}

func (t *Translator) Lang() string {
	if t == nil {
		return DefaultLang
	}
	return t.lang
}
