package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type browser struct {
	t      *testing.T
	server *Server
	cookie *http.Cookie
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.server.Handler().ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "hb_session" {
			b.cookie = c
		}
	}
	return w
}

func TestIndexStartsAtHome(t *testing.T) {
	b := &browser{t: t, server: newTestServer(t, &fakeModel{})}

	w := b.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Periksa sekarang")
	require.NotNil(t, b.cookie)
	assert.True(t, b.cookie.HttpOnly)
}

func TestNavigationIsPersistedPerSession(t *testing.T) {
	server := newTestServer(t, &fakeModel{})
	alice := &browser{t: t, server: server}
	bob := &browser{t: t, server: server}
	alice.do(http.MethodGet, "/", nil)
	bob.do(http.MethodGet, "/", nil)

	w := alice.do(http.MethodPost, "/navigate", url.Values{"action": {"check_now"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	assert.Contains(t, alice.do(http.MethodGet, "/", nil).Body.String(), "SCAN PREDICTION TEST")
	assert.Contains(t, bob.do(http.MethodGet, "/", nil).Body.String(), "Periksa sekarang")

	bob.do(http.MethodPost, "/navigate", url.Values{"action": {"select"}, "target": {"contact"}})
	assert.Contains(t, bob.do(http.MethodGet, "/", nil).Body.String(), "CONTACT PAGE")

	alice.do(http.MethodPost, "/navigate", url.Values{"action": {"back"}})
	assert.Contains(t, alice.do(http.MethodGet, "/", nil).Body.String(), "Periksa sekarang")
}

func TestNavigateIgnoresUnknownTarget(t *testing.T) {
	b := &browser{t: t, server: newTestServer(t, &fakeModel{})}
	b.do(http.MethodPost, "/navigate", url.Values{"action": {"select"}, "target": {"scan"}})
	b.do(http.MethodPost, "/navigate", url.Values{"action": {"select"}, "target": {"admin"}})

	assert.Contains(t, b.do(http.MethodGet, "/", nil).Body.String(), "SCAN PREDICTION TEST")
}

func TestScanSuccess(t *testing.T) {
	model := &fakeModel{label: 1}
	b := &browser{t: t, server: newTestServer(t, model)}

	w := b.do(http.MethodPost, "/scan", referenceForm())
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Pasien terindikasi terkena penyakit jantung.")
	assert.Contains(t, body, `value="63"`)
	assert.Contains(t, body, `<option value="Laki-laki" selected>`)
	assert.Equal(t, 1, model.calls)

	assert.Contains(t, b.do(http.MethodGet, "/", nil).Body.String(), "SCAN PREDICTION TEST")
}

func TestScanNoDisease(t *testing.T) {
	b := &browser{t: t, server: newTestServer(t, &fakeModel{label: 0})}

	w := b.do(http.MethodPost, "/scan", referenceForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pasien tidak terindikasi penyakit jantung.")
}

func TestScanIncompleteNeverCallsClassifier(t *testing.T) {
	model := &fakeModel{label: 1}
	b := &browser{t: t, server: newTestServer(t, model)}

	form := referenceForm()
	form.Set("sex", "Pilih")
	w := b.do(http.MethodPost, "/scan", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all fields.")
	assert.Contains(t, w.Body.String(), "Jenis kelamin")
	assert.Zero(t, model.calls)
}

func TestScanNumericFormat(t *testing.T) {
	model := &fakeModel{label: 1}
	b := &browser{t: t, server: newTestServer(t, model)}

	form := referenceForm()
	form.Set("chol", "abc")
	w := b.do(http.MethodPost, "/scan", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Serum kolestrol")
	assert.Contains(t, w.Body.String(), "must be a number")
	assert.Zero(t, model.calls)
}

func TestScanClassifierFailureIsRendered(t *testing.T) {
	b := &browser{t: t, server: newTestServer(t, &fakeModel{err: errors.New("bad shape")})}

	w := b.do(http.MethodPost, "/scan", referenceForm())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Prediction failed.")

	// the next submission is unaffected
	b.server = newTestServer(t, &fakeModel{label: 0})
	w = b.do(http.MethodPost, "/scan", referenceForm())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestContactForm(t *testing.T) {
	b := &browser{t: t, server: newTestServer(t, &fakeModel{})}

	w := b.do(http.MethodPost, "/contact", url.Values{"name": {"Budi"}, "email": {"budi@example.com"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please fill in all fields.")

	w = b.do(http.MethodPost, "/contact", url.Values{
		"name":    {"Budi"},
		"email":   {"budi@example.com"},
		"message": {"Halo"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you, Budi! Your message has been submitted.")
	assert.Contains(t, w.Body.String(), "petikmanggafm@gmail.com")
}

func TestSessionStoreEviction(t *testing.T) {
	store, err := NewSessionStore(1, "hb_session")
	require.NoError(t, err)

	store.Save("a", "Contact")
	store.Save("b", "Scan Prediction Test")
	assert.Equal(t, 1, store.Len())

	_, err = NewSessionStore(0, "hb_session")
	assert.Error(t, err)
}
