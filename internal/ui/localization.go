package ui

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/ytget/comic-reader/internal/loader"
	"github.com/ytget/comic-reader/internal/slider"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle      = "app_title"
	KeyOpen          = "open"
	KeySettings      = "settings"
	KeyFile          = "file"
	KeyLanguage      = "language"
	KeyPrevious      = "previous"
	KeyNext          = "next"
	KeySpread        = "spread"
	KeyTopToBottom   = "top_to_bottom"
	KeyCDNBaseURL    = "cdn_base_url"
	KeyMaxParallel   = "max_parallel"
	KeyFetchTimeout  = "fetch_timeout"
	KeyEvictAll      = "evict_all"
	KeyUseWorker     = "use_worker"
	KeySave          = "save"
	KeyCancel        = "cancel"
	KeySettingsSaved = "settings_saved"
	KeyPageOf        = "page_of"
	KeyOpenFailed    = "open_failed"
	KeyNextChapter   = "next_chapter"

	// Shared with the loading pipeline and the slider
	KeyLoading     = loader.KeyLoading
	KeyError       = loader.KeyError
	KeyEndOfSeries = slider.KeyEndOfSeries
)

// Languages with translations, in matching preference order
var supportedLanguages = []string{"en", "ru", "pt"}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Russian,
	language.Portuguese,
})

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = SystemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// SystemLanguage matches the locale of the environment against the
// supported languages. It falls back to English.
func SystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		// en_US.UTF-8 -> en-US
		value, _, _ = strings.Cut(value, ".")
		value = strings.ReplaceAll(value, "_", "-")
		if value == "C" || value == "POSIX" {
			continue
		}

		tag, err := language.Parse(value)
		if err != nil {
			continue
		}
		_, index, confidence := languageMatcher.Match(tag)
		if confidence == language.No {
			return "en"
		}
		return supportedLanguages[index]
	}
	return "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:      "Comic Reader",
		KeyOpen:          "Open",
		KeySettings:      "Settings",
		KeyFile:          "File",
		KeyLanguage:      "Language",
		KeyPrevious:      "Previous",
		KeyNext:          "Next",
		KeySpread:        "Spread",
		KeyTopToBottom:   "Top to bottom",
		KeyCDNBaseURL:    "CDN Base URL",
		KeyMaxParallel:   "Max Parallel Fetches",
		KeyFetchTimeout:  "Fetch Timeout (seconds)",
		KeyEvictAll:      "Release all off-screen pages on mobile",
		KeyUseWorker:     "Fetch pages in the background",
		KeySave:          "Save",
		KeyCancel:        "Cancel",
		KeySettingsSaved: "Settings saved successfully!",
		KeyPageOf:        "%d / %d",
		KeyOpenFailed:    "Failed to open publication",
		KeyNextChapter:   "Opening next chapter",
		KeyLoading:       "Loading...",
		KeyError:         "Error!",
		KeyEndOfSeries:   "You've reached the end of this series!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:      "Читалка комиксов",
		KeyOpen:          "Открыть",
		KeySettings:      "Настройки",
		KeyFile:          "Файл",
		KeyLanguage:      "Язык",
		KeyPrevious:      "Назад",
		KeyNext:          "Вперёд",
		KeySpread:        "Разворот",
		KeyTopToBottom:   "Сверху вниз",
		KeyCDNBaseURL:    "Базовый URL CDN",
		KeyMaxParallel:   "Макс. параллельных загрузок",
		KeyFetchTimeout:  "Тайм-аут загрузки (секунды)",
		KeyEvictAll:      "Выгружать все невидимые страницы на мобильных",
		KeyUseWorker:     "Загружать страницы в фоне",
		KeySave:          "Сохранить",
		KeyCancel:        "Отмена",
		KeySettingsSaved: "Настройки успешно сохранены!",
		KeyPageOf:        "%d / %d",
		KeyOpenFailed:    "Не удалось открыть публикацию",
		KeyNextChapter:   "Открываем следующую главу",
		KeyLoading:       "Загрузка...",
		KeyError:         "Ошибка!",
		KeyEndOfSeries:   "Вы дочитали серию до конца!",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:      "Leitor de Quadrinhos",
		KeyOpen:          "Abrir",
		KeySettings:      "Configurações",
		KeyFile:          "Arquivo",
		KeyLanguage:      "Idioma",
		KeyPrevious:      "Anterior",
		KeyNext:          "Próxima",
		KeySpread:        "Página dupla",
		KeyTopToBottom:   "De cima para baixo",
		KeyCDNBaseURL:    "URL Base do CDN",
		KeyMaxParallel:   "Máx. Downloads Paralelos",
		KeyFetchTimeout:  "Tempo Limite (segundos)",
		KeyEvictAll:      "Liberar todas as páginas fora da tela no celular",
		KeyUseWorker:     "Baixar páginas em segundo plano",
		KeySave:          "Salvar",
		KeyCancel:        "Cancelar",
		KeySettingsSaved: "Configurações salvas com sucesso!",
		KeyPageOf:        "%d / %d",
		KeyOpenFailed:    "Falha ao abrir a publicação",
		KeyNextChapter:   "Abrindo o próximo capítulo",
		KeyLoading:       "Carregando...",
		KeyError:         "Erro!",
		KeyEndOfSeries:   "Você chegou ao fim desta série!",
	}
}
