package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ciaopet-backend/internal/infrastructure/i18n"
)

const (
	// LanguageContextKey é a chave usada para armazenar o idioma no contexto do Gin
	LanguageContextKey = "language"
	// I18nServiceContextKey é a chave usada para armazenar o serviço i18n no contexto
	I18nServiceContextKey = "i18n_service"

	// FallbackLanguage é usado quando nenhum serviço i18n foi configurado na requisição
	FallbackLanguage = "pt-BR"
)

// I18nMiddleware gerencia a detecção de idioma nas requisições
type I18nMiddleware struct {
	i18nService *i18n.Service
}

// NewI18nMiddleware cria um novo middleware de i18n
func NewI18nMiddleware(i18nService *i18n.Service) *I18nMiddleware {
	return &I18nMiddleware{
		i18nService: i18nService,
	}
}

// DetectLanguage detecta e configura o idioma da requisição
// Prioridade:
// 1. Query parameter ?lang=pt-BR (override explícito)
// 2. Accept-Language header (preferência do cliente)
// 3. Idioma padrão (pt-BR)
func (m *I18nMiddleware) DetectLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := m.resolve(c.Query("lang"))

		if lang == "" {
			lang = m.parseAcceptLanguage(c.GetHeader("Accept-Language"))
		}

		if lang == "" {
			lang = m.i18nService.GetDefaultLanguage()
		}

		c.Set(LanguageContextKey, lang)
		c.Set(I18nServiceContextKey, m.i18nService)
		c.Header("Content-Language", lang)

		c.Next()
	}
}

// parseAcceptLanguage analisa o header Accept-Language e retorna o melhor idioma suportado
// Exemplo: "pt,en-US;q=0.8,en;q=0.7" -> "pt-BR"
func (m *I18nMiddleware) parseAcceptLanguage(acceptLang string) string {
	if acceptLang == "" {
		return ""
	}

	for _, tag := range strings.Split(acceptLang, ",") {
		if idx := strings.Index(tag, ";"); idx != -1 {
			tag = tag[:idx]
		}

		if lang := m.resolve(tag); lang != "" {
			return lang
		}
	}

	return ""
}

// resolve encontra o idioma suportado para uma tag, nesta ordem:
// correspondência exata, sem diferenciar maiúsculas, idioma base (en-US -> en)
// e variante regional (pt -> pt-BR)
func (m *I18nMiddleware) resolve(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return ""
	}

	if m.i18nService.IsLanguageSupported(tag) {
		return tag
	}

	base, _, hasRegion := strings.Cut(tag, "-")
	supported := m.i18nService.GetSupportedLanguages()

	for _, lang := range supported {
		if strings.EqualFold(lang, tag) {
			return lang
		}
	}

	if hasRegion {
		for _, lang := range supported {
			if strings.EqualFold(lang, base) {
				return lang
			}
		}
	}

	for _, lang := range supported {
		if strings.HasPrefix(strings.ToLower(lang), strings.ToLower(base)+"-") {
			return lang
		}
	}

	return ""
}

// Translate traduz uma chave no idioma detectado para a requisição.
// Sem serviço i18n no contexto, devolve a própria chave.
func Translate(c *gin.Context, key string, params ...map[string]any) string {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}

	return service.T(Language(c), key, params...)
}

// Language retorna o idioma configurado no contexto da requisição
func Language(c *gin.Context) string {
	if lang := c.GetString(LanguageContextKey); lang != "" {
		return lang
	}
	return FallbackLanguage
}
