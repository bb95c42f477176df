package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exusiai.dev/roster-backend/internal/pkg/apierr"
)

func TestT(t *testing.T) {
	ja, _ := UT.GetTranslator("ja")
	en, _ := UT.GetTranslator("en")

	assert.Equal(t, "データが見つかりませんでした", T(ja, apierr.TransNotFound, "fallback"))
	assert.Equal(t, "data not found", T(en, apierr.TransNotFound, "fallback"))
	assert.Equal(t, "fallback", T(en, "err.unknown", "fallback"))
	assert.Equal(t, "fallback", T(nil, apierr.TransNotFound, "fallback"))
	assert.Equal(t, "fallback", T(en, "", "fallback"))
}

func TestFallbackIsJapanese(t *testing.T) {
	assert.Equal(t, "ja", UT.GetFallback().Locale())
}
