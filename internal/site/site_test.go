package site_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/internal/site"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/environment"
)

func testConfig() site.Config {
	return site.Config{
		Env:            environment.Development,
		ResetDelay:     time.Millisecond,
		DatastarScript: "/static/datastar.js",
		PaymentPayload: "https://pay.test/event",
		PaymentQRSize:  128,
	}
}

func newRouter(t *testing.T, cfg site.Config) http.Handler {
	t.Helper()
	s, err := site.New(cfg, nil)
	require.NoError(t, err)
	return s.Router()
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func datastarPost(t *testing.T, target string, signals map[string]any) *http.Request {
	t.Helper()
	body, err := json.Marshal(signals)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set(binder.DatastarRequestHeader, "true")
	return r
}

func formPost(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("built-in forms", func(t *testing.T) {
		t.Parallel()
		_, err := site.New(testConfig(), nil)
		require.NoError(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"forms/README": {Data: []byte("nothing here")}}
		_, err := site.New(testConfig(), nil, site.WithForms(fsys, "forms"))
		assert.ErrorIs(t, err, site.ErrNoForms)
	})

	t.Run("broken definition", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{"forms/bad.yaml": {Data: []byte("slug: bad\nfields: [")}}
		_, err := site.New(testConfig(), nil, site.WithForms(fsys, "forms"))
		assert.Error(t, err)
	})
}

func TestSite_Pages(t *testing.T) {
	t.Parallel()
	h := newRouter(t, testConfig())

	t.Run("landing lists forms", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `href="/forms/contact"`)
		assert.Contains(t, body, `href="/forms/membership"`)
		assert.Contains(t, body, `href="/forms/registration"`)
		assert.Contains(t, body, `/static/datastar.js`)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("contact form", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/contact", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()

		for _, id := range []string{"contactForm", "nameGroup", "emailGroup", "subjectGroup", "messageGroup", "charCount", "successMessage", "alerts"} {
			assert.Contains(t, body, `id="`+id+`"`, id)
		}
		assert.Contains(t, body, `data-bind="email"`)
		assert.Contains(t, body, `data-on:blur="@post(&#39;/forms/contact/fields/email/blur&#39;)"`)
		assert.Contains(t, body, `data-on:input__debounce.250ms="@post(&#39;/forms/contact/fields/message/input&#39;)"`)
		assert.Contains(t, body, `data-on:submit__prevent="@post(&#39;/forms/contact/submit&#39;)"`)
		assert.Contains(t, body, `action="/forms/contact/submit"`)
		assert.Contains(t, body, `data-signals=`)
		assert.Contains(t, body, `>500</span>`)
	})

	t.Run("registration form", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/registration", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()

		assert.Contains(t, body, `enctype="multipart/form-data"`)
		assert.Contains(t, body, `id="qrSection" class="toggle-section"`)
		assert.Contains(t, body, `src="/forms/registration/payment-qr.png"`)
		assert.Contains(t, body, `data-bind="paymentMethod"`)
		assert.Contains(t, body, `$receiptName = el.files[0]?.name ?? &#39;&#39;`)
		assert.Contains(t, body, "Choose file or drag here")
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "The page you are looking for does not exist.")
	})

	t.Run("unknown route", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		w := serve(h, httptest.NewRequest(http.MethodDelete, "/forms/contact", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestSite_FieldEvents(t *testing.T) {
	t.Parallel()
	h := newRouter(t, testConfig())

	t.Run("invalid email on blur", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/email/blur", map[string]any{"email": "a@b"}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "event: datastar-patch-elements")
		assert.Contains(t, body, `id="emailGroup" class="form-group error"`)
		assert.Contains(t, body, "Please enter a valid email address")
	})

	t.Run("valid name on blur", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/name/blur", map[string]any{"name": "Nur Aisyah"}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="nameGroup" class="form-group success"`)
	})

	t.Run("counter turns red", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/message/input", map[string]any{
			"message": strings.Repeat("a", 450),
		}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="charCount" style="color: #e74c3c">50</span>`)
	})

	t.Run("cleared message resets the counter", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/message/input", map[string]any{"message": ""}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="charCount" style="color: #7f8c8d">500</span>`)
	})

	t.Run("cash payment hides the section", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/paymentMethod/change", map[string]any{
			"paymentMethod": "cash",
		}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="qrSection" class="toggle-section" style="display: none">`)
	})

	t.Run("cleared receipt shows the prompt", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/receipt/change", map[string]any{
			"receiptName": "",
			"receiptSize": 0,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="fileName" class="file-name" style="color: #2c3e50">Choose file or drag here</span>`)
	})

	t.Run("unrelated event leaves the programme alone", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/nama/blur", map[string]any{
			"nama":      "Nur Aisyah",
			"faculty":   "FSKM",
			"programme": "Bachelor of Science (Statistics)",
		}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `id="namaGroup" class="form-group success"`)
		assert.NotContains(t, body, `id="programme"`)
	})

	t.Run("faculty selects programmes", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/faculty/change", map[string]any{
			"faculty":   "FSKM",
			"programme": "",
		}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `id="programme"`)
		assert.Contains(t, body, "Bachelor of Computer Science (Mobile Computing)")
		assert.NotContains(t, body, "Bachelor of Marine Science")
	})

	t.Run("qr payment shows the section", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/paymentMethod/change", map[string]any{
			"paymentMethod": "qr",
		}))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `id="qrSection" class="toggle-section"><img`)
	})

	t.Run("oversized receipt is rejected", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/receipt/change", map[string]any{
			"receiptName": "scan.pdf",
			"receiptSize": 6 << 20,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "File too large (max 5MB)")
		assert.Contains(t, body, "event: datastar-patch-signals")
		assert.Contains(t, body, `"receiptName":""`)
		assert.Contains(t, body, `"receiptSize":0`)
	})

	t.Run("chosen receipt", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/registration/fields/receipt/change", map[string]any{
			"receiptName": "scan.pdf",
			"receiptSize": 2048,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `style="color: #2ecc71">scan.pdf</span>`)
		assert.Contains(t, body, `"receiptName":"scan.pdf"`)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/nope/blur", map[string]any{}))
		body := w.Body.String()
		assert.Contains(t, body, "selector #alerts")
		assert.Contains(t, body, "mode append")
		assert.Contains(t, body, "The page you are looking for does not exist.")
	})

	t.Run("unknown event", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/fields/email/hover", map[string]any{}))
		assert.Contains(t, w.Body.String(), "The page you are looking for does not exist.")
	})
}

func validContact() map[string]any {
	return map[string]any{
		"name":    "Nur Aisyah",
		"email":   "aisyah@example.com",
		"subject": "membership",
		"message": "How do I join the society?",
	}
}

func TestSite_SubmitDatastar(t *testing.T) {
	t.Parallel()
	h := newRouter(t, testConfig())

	t.Run("invalid form marks every field", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/submit", map[string]any{}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		for _, id := range []string{"nameGroup", "emailGroup", "subjectGroup", "messageGroup"} {
			assert.Contains(t, body, `id="`+id+`" class="form-group error"`, id)
		}
		assert.NotContains(t, body, "success-message show")
		assert.NotContains(t, body, "datastar-patch-signals")
	})

	t.Run("valid form shows success then resets", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/contact/submit", validContact()))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()

		success := strings.Index(body, `class="success-message show"`)
		signals := strings.Index(body, "event: datastar-patch-signals")
		require.NotEqual(t, -1, success)
		require.NotEqual(t, -1, signals)
		assert.Less(t, success, signals)

		reset := body[success:]
		assert.Contains(t, reset, `id="charCount" style="color: #7f8c8d">500</span>`)
		assert.Contains(t, body[signals:], `"name":""`)
		assert.Contains(t, body[signals:], `"message":""`)
	})

	t.Run("terms must be accepted", func(t *testing.T) {
		t.Parallel()
		w := serve(h, datastarPost(t, "/forms/membership/submit", map[string]any{
			"fullName":   "Nur Aisyah",
			"email":      "aisyah@example.com",
			"phone":      "012-345 6789",
			"program":    "undergraduate",
			"motivation": "I want to help organise community events.",
			"terms":      false,
		}))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "selector #alerts")
		assert.Contains(t, body, "Please agree to the terms and conditions")
		assert.NotContains(t, body, "success-message show")
	})
}

func TestSite_SubmitPlain(t *testing.T) {
	t.Parallel()
	h := newRouter(t, testConfig())

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		w := serve(h, formPost("/forms/contact/submit", url.Values{"email": {"aisyah@example.com"}}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `id="emailGroup" class="form-group success"`)
		assert.Contains(t, body, `id="nameGroup" class="form-group error"`)
		assert.Contains(t, body, `value="aisyah@example.com"`)
		assert.Contains(t, body, `<div class="form-summary"><p>Please correct the following:</p><ul><li>Name is required</li>`)
		assert.NotContains(t, body, `<li>Please enter a valid email address</li>`)
	})

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		values := url.Values{}
		for k, v := range validContact() {
			values.Set(k, v.(string))
		}
		w := serve(h, formPost("/forms/contact/submit", values))
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `class="success-message show"`)
		assert.NotContains(t, body, `value="aisyah@example.com"`)
		assert.NotContains(t, body, `class="form-summary"`)
	})

	t.Run("membership without terms renders the alert", func(t *testing.T) {
		t.Parallel()
		w := serve(h, formPost("/forms/membership/submit", url.Values{"fullName": {"Nur Aisyah"}}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Please agree to the terms and conditions")
	})

	t.Run("multipart keeps the chosen file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("nama", "Nur Aisyah"))
		fw, err := mw.CreateFormFile("receipt", "receipt.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/forms/registration/submit", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		w := serve(h, r)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `style="color: #2ecc71">receipt.pdf</span>`)
	})
}

func TestSite_PaymentQR(t *testing.T) {
	t.Parallel()

	t.Run("development", func(t *testing.T) {
		t.Parallel()
		h := newRouter(t, testConfig())
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/registration/payment-qr.png", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Header().Get("Cache-Control"))

		img, err := png.Decode(w.Body)
		require.NoError(t, err)
		assert.Equal(t, 128, img.Bounds().Dx())
	})

	t.Run("production is cached", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig()
		cfg.Env = environment.Production
		h := newRouter(t, cfg)
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/registration/payment-qr.png", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	})

	t.Run("unknown form", func(t *testing.T) {
		t.Parallel()
		h := newRouter(t, testConfig())
		w := serve(h, httptest.NewRequest(http.MethodGet, "/forms/nope/payment-qr.png", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSite_Health(t *testing.T) {
	t.Parallel()
	h := newRouter(t, testConfig())

	w := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ALIVE", w.Body.String())

	w = serve(h, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}
