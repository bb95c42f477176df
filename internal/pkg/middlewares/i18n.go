package middlewares

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"exusiai.dev/roster-backend/internal/util/i18n"
)

func InjectI18n() func(c *fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		set := func(trans ut.Translator) error {
			c.Locals("T", trans)
			return c.Next()
		}

		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err != nil || len(tags) == 0 {
			return set(i18n.UT.GetFallback())
		}

		var langs []string

		for _, tag := range tags {
			sanitized := strings.ReplaceAll(strings.ToLower(tag.String()), "-", "_")
			langs = append(langs, sanitized)
			// ja_jp and en_us are served by their base language
			if base, _, found := strings.Cut(sanitized, "_"); found {
				langs = append(langs, base)
			}
		}

		trans, _ := i18n.UT.FindTranslator(langs...)

		return set(trans)
	}
}
