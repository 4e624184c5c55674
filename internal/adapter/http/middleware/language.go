package middleware

import (
	"strings"

	"taskboard/pkg/translator"

	"github.com/gin-gonic/gin"
)

const langKey = "lang"

// LanguageMiddleware resolves the response language from the Accept-Language header.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, normalizeLang(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// normalizeLang keeps only the primary subtag of the first listed language,
// so "fr-FR,fr;q=0.9" resolves to "fr".
func normalizeLang(header string) string {
	lang := header
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	if i := strings.Index(lang, "-"); i >= 0 {
		lang = lang[:i]
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return translator.LanguageEn
	}
	return lang
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
