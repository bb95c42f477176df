package snapshot_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"exusiai.dev/roster-backend/internal/pkg/testentry"
)

type response struct {
	status int
	body   gjson.Result
}

func do(t *testing.T, app *fiber.App, method, target, body string, headers ...string) response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{status: resp.StatusCode, body: gjson.ParseBytes(b)}
}

func newApp(t *testing.T) *fiber.App {
	var app *fiber.App
	testentry.Populate(t, &app)
	return app
}

func TestHTTPSaveAndGet(t *testing.T) {
	app := newApp(t)

	t.Run("BarePayload", func(t *testing.T) {
		saved := do(t, app, http.MethodPost, "/save", `[{"Code":"char_002_amiya","Potential":"6","CurrentLevel":{"Elite":"2","Level":"80"}}]`)
		require.Equal(t, http.StatusOK, saved.status, saved.body.Raw)
		id := saved.body.Get("id").String()
		assert.Len(t, id, 6)

		got := do(t, app, http.MethodGet, "/get?id="+id, "")
		require.Equal(t, http.StatusOK, got.status, got.body.Raw)
		assert.Equal(t, "char_002_amiya", got.body.Get("characters.0.code").String())
		assert.Equal(t, int64(6), got.body.Get("characters.0.potential").Int())
		assert.Equal(t, int64(2), got.body.Get("characters.0.elite").Int())
		assert.Equal(t, int64(80), got.body.Get("characters.0.level").Int())
		assert.Equal(t, int64(7), got.body.Get("characters.0.skill").Int())
		assert.True(t, got.body.Get("createdAt").Exists())
		assert.True(t, got.body.Get("expiresAt").Exists())
		assert.False(t, got.body.Get("updatedAt").Exists())
		assert.False(t, got.body.Get("id").Exists(), "the identifier is the storage key, not part of the document")
	})

	t.Run("WrappedPayloadUpdatesInPlace", func(t *testing.T) {
		first := do(t, app, http.MethodPost, "/save", `{"data":{"Code":"A"}}`)
		require.Equal(t, http.StatusOK, first.status, first.body.Raw)
		id := first.body.Get("id").String()

		second := do(t, app, http.MethodPost, "/save", `{"id":"`+id+`","data":[{"code":"B"},{"code":"C"}]}`)
		require.Equal(t, http.StatusOK, second.status, second.body.Raw)
		assert.Equal(t, id, second.body.Get("id").String())

		got := do(t, app, http.MethodGet, "/get?id="+id, "")
		require.Equal(t, http.StatusOK, got.status)
		assert.Equal(t, int64(2), got.body.Get("characters.#").Int())
		assert.Equal(t, "B", got.body.Get("characters.0.code").String())
		assert.True(t, got.body.Get("updatedAt").Exists())
	})

	t.Run("UnknownIDIsReissued", func(t *testing.T) {
		saved := do(t, app, http.MethodPost, "/save", `{"id":"nonexistent","data":{"Code":"A"}}`)
		require.Equal(t, http.StatusOK, saved.status)
		assert.NotEqual(t, "nonexistent", saved.body.Get("id").String())
	})
}

func TestSaveReissuesOverlongID(t *testing.T) {
	app := newApp(t)
	overlong := strings.Repeat("x", 300)

	resp := do(t, app, http.MethodPost, "/save", `{"id":"`+overlong+`","data":{"Code":"A"}}`)
	require.Equal(t, http.StatusOK, resp.status, resp.body.Raw)
	assert.Len(t, resp.body.Get("id").String(), 6)

	callable := do(t, app, http.MethodPost, "/saveCharacterData", `{"data":{"id":"`+overlong+`","data":{"Code":"A"}}}`)
	require.Equal(t, http.StatusOK, callable.status, callable.body.Raw)
	assert.Len(t, callable.body.Get("result.id").String(), 6)
}

func TestHTTPErrors(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"EmptyBody", http.MethodPost, "/save", "", http.StatusBadRequest},
		{"NullData", http.MethodPost, "/save", `{"data":null}`, http.StatusBadRequest},
		{"EmptyArray", http.MethodPost, "/save", `[]`, http.StatusBadRequest},
		{"NoValidRecords", http.MethodPost, "/save", `[{"code":""},null]`, http.StatusBadRequest},
		{"MalformedJSON", http.MethodPost, "/save", `{"data":`, http.StatusBadRequest},
		{"SaveWrongMethod", http.MethodGet, "/save", "", http.StatusMethodNotAllowed},
		{"SavePut", http.MethodPut, "/save", `{"Code":"A"}`, http.StatusMethodNotAllowed},
		{"MissingID", http.MethodGet, "/get", "", http.StatusBadRequest},
		{"UnknownID", http.MethodGet, "/get?id=ZZZZZZ", "", http.StatusNotFound},
		{"GetWrongMethod", http.MethodPost, "/get?id=ZZZZZZ", "", http.StatusMethodNotAllowed},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := do(t, app, test.method, test.target, test.body)
			assert.Equal(t, test.status, resp.status, resp.body.Raw)
			assert.NotEmpty(t, resp.body.Get("error").String(), resp.body.Raw)
			assert.False(t, resp.body.Get("code").Exists(), "plain HTTP errors carry no kind")
		})
	}
}

func TestHTTPErrorLocalization(t *testing.T) {
	app := newApp(t)

	ja := do(t, app, http.MethodGet, "/get?id=ZZZZZZ", "")
	assert.Equal(t, "データが見つかりませんでした", ja.body.Get("error").String())

	en := do(t, app, http.MethodGet, "/get?id=ZZZZZZ", "", fiber.HeaderAcceptLanguage, "en-US,en;q=0.9")
	assert.Equal(t, "data not found", en.body.Get("error").String())

	noData := do(t, app, http.MethodPost, "/save", "")
	assert.Equal(t, "データが提供されていません", noData.body.Get("error").String())

	noRecords := do(t, app, http.MethodPost, "/save", `[]`)
	assert.Equal(t, "有効なキャラクターデータがありません", noRecords.body.Get("error").String())

	noID := do(t, app, http.MethodGet, "/get", "")
	assert.Equal(t, "IDパラメータが必要です", noID.body.Get("error").String())
}

func TestCallable(t *testing.T) {
	app := newApp(t)

	saved := do(t, app, http.MethodPost, "/saveCharacterData", `{"data":{"data":[{"Code":"char_103_angel","CurrentLevel":{"Skill":"7"}}]}}`)
	require.Equal(t, http.StatusOK, saved.status, saved.body.Raw)
	id := saved.body.Get("result.id").String()
	require.Len(t, id, 6)

	got := do(t, app, http.MethodPost, "/getCharacterData", `{"data":{"id":"`+id+`"}}`)
	require.Equal(t, http.StatusOK, got.status, got.body.Raw)
	assert.Equal(t, "char_103_angel", got.body.Get("result.characters.0.code").String())

	updated := do(t, app, http.MethodPost, "/saveCharacterData", `{"data":{"id":"`+id+`","data":{"code":"char_002_amiya"}}}`)
	require.Equal(t, http.StatusOK, updated.status, updated.body.Raw)
	assert.Equal(t, id, updated.body.Get("result.id").String())
}

func TestCallableErrors(t *testing.T) {
	app := newApp(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"SaveNoEnvelope", "/saveCharacterData", `{}`, http.StatusBadRequest, "invalid-argument"},
		{"SaveNoData", "/saveCharacterData", `{"data":{"id":"abc"}}`, http.StatusBadRequest, "invalid-argument"},
		{"SaveNoRecords", "/saveCharacterData", `{"data":{"data":[{"Potential":3}]}}`, http.StatusBadRequest, "invalid-argument"},
		{"GetNoID", "/getCharacterData", `{"data":{}}`, http.StatusBadRequest, "invalid-argument"},
		{"GetUnknown", "/getCharacterData", `{"data":{"id":"ZZZZZZ"}}`, http.StatusNotFound, "not-found"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, test.target, test.body)
			assert.Equal(t, test.status, resp.status, resp.body.Raw)
			assert.Equal(t, test.code, resp.body.Get("code").String(), resp.body.Raw)
			assert.NotEmpty(t, resp.body.Get("error").String())
		})
	}

	t.Run("WrongMethod", func(t *testing.T) {
		resp := do(t, app, http.MethodGet, "/getCharacterData", "")
		assert.Equal(t, http.StatusMethodNotAllowed, resp.status)
	})
}

func TestSaveRateLimit(t *testing.T) {
	conf := testentry.Config()
	conf.SaveRateLimit = 2

	var app *fiber.App
	testentry.PopulateWith(t, conf, &app)

	for i := 0; i < 2; i++ {
		resp := do(t, app, http.MethodPost, "/save", `{"Code":"A"}`)
		require.Equal(t, http.StatusOK, resp.status, resp.body.Raw)
	}

	limited := do(t, app, http.MethodPost, "/save", `{"Code":"A"}`)
	assert.Equal(t, http.StatusTooManyRequests, limited.status)
	assert.Positive(t, limited.body.Get("retryAfter").Int())

	// both transports share one quota
	callable := do(t, app, http.MethodPost, "/saveCharacterData", `{"data":{"data":{"Code":"A"}}}`)
	assert.Equal(t, http.StatusTooManyRequests, callable.status)
	assert.Equal(t, "resource-exhausted", callable.body.Get("code").String())

	// reads are not limited
	read := do(t, app, http.MethodGet, "/get?id=ZZZZZZ", "")
	assert.Equal(t, http.StatusNotFound, read.status)
}

func TestHTTPConditionalGet(t *testing.T) {
	app := newApp(t)

	saved := do(t, app, http.MethodPost, "/save", `{"Code":"char_002_amiya"}`)
	require.Equal(t, http.StatusOK, saved.status, saved.body.Raw)
	target := "/get?id=" + saved.body.Get("id").String()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache", resp.Header.Get(fiber.HeaderCacheControl))
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderLastModified))
	tag := resp.Header.Get(fiber.HeaderETag)
	require.NotEmpty(t, tag)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, tag)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)

	// an update changes the representation
	updated := do(t, app, http.MethodPost, "/save", `{"id":"`+saved.body.Get("id").String()+`","data":{"Code":"char_003_kalts"}}`)
	require.Equal(t, http.StatusOK, updated.status, updated.body.Raw)

	req = httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(fiber.HeaderIfNoneMatch, tag)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, tag, resp.Header.Get(fiber.HeaderETag))
}
