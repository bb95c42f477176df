package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/rs/zerolog/log"

	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

// UT falls back to Japanese, the language the roster tools were first published in.
var UT = ut.New(ja.New(), ja.New(), en.New())

var messages = map[string]map[string]string{
	"ja": {
		apierr.TransNoData:           "データが提供されていません",
		apierr.TransNoValidRecords:   "有効なキャラクターデータがありません",
		apierr.TransIDRequired:       "IDパラメータが必要です",
		apierr.TransNotFound:         "データが見つかりませんでした",
		apierr.TransInternal:         "サーバー内部でエラーが発生しました",
		apierr.TransMethodNotAllowed: "許可されていないメソッドです",
		apierr.TransInvalidRequest:   "リクエストのパラメータが不正です",
		apierr.TransTooManyRequests:  "リクエストが多すぎます。しばらくしてから再度お試しください",
	},
	"en": {
		apierr.TransNoData:           "no data was provided",
		apierr.TransNoValidRecords:   "no valid character data",
		apierr.TransIDRequired:       "an id parameter is required",
		apierr.TransNotFound:         "data not found",
		apierr.TransInternal:         "internal server error",
		apierr.TransMethodNotAllowed: "Method Not Allowed",
		apierr.TransInvalidRequest:   "invalid request: some or all request parameters are invalid",
		apierr.TransTooManyRequests:  "too many requests, please retry later",
	},
}

func init() {
	for locale, m := range messages {
		trans, found := UT.GetTranslator(locale)
		if !found {
			log.Warn().Str("locale", locale).Msg("translator not found")
			continue
		}
		for key, text := range m {
			if err := trans.Add(key, text, false); err != nil {
				log.Warn().Err(err).Str("locale", locale).Str("key", key).Msg("could not register translation")
			}
		}
	}
}

// T returns the message registered for key in trans, or fallback when there is none.
func T(trans ut.Translator, key string, fallback string) string {
	if trans == nil || key == "" {
		return fallback
	}
	s, err := trans.T(key)
	if err != nil || s == "" {
		return fallback
	}
	return s
}
