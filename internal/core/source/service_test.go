package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"recipe-parser/internal/core/cache"
	"recipe-parser/internal/core/recipe"
	"recipe-parser/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cakePage = `<html><head><script type="application/ld+json">
{"@type":"Recipe","name":"Sponge Cake",
 "recipeIngredient":["2 cups flour","3 large eggs, beaten"],
 "recipeInstructions":[{"@type":"HowToStep","text":"Preheat the oven to 350 F. Whisk the eggs in a bowl."},
                       {"@type":"HowToStep","text":"Bake for 30 minutes."}]}
</script></head><body></body></html>`

func fetchConfig() *config.FetchConfig {
	return &config.FetchConfig{
		Timeout:      5 * time.Second,
		UserAgent:    "recipe-parser-test",
		MaxAttempts:  1,
		MaxBodyBytes: 1 << 20,
	}
}

func TestFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cake":
			assert.Equal(t, "recipe-parser-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(cakePage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(fetchConfig())

	body, err := f.Fetch(context.Background(), srv.URL+"/cake")
	require.NoError(t, err)
	assert.Contains(t, string(body), "Sponge Cake")

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcherRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(cakePage))
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.MaxAttempts = 2
	body, err := NewFetcher(cfg).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Sponge Cake")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetcherBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(cakePage))
	}))
	defer srv.Close()

	cfg := fetchConfig()
	cfg.MaxBodyBytes = 16
	_, err := NewFetcher(cfg).Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://www.allrecipes.com/recipe/1"))
	assert.NoError(t, ValidateURL("http://localhost:8080/x"))
	assert.ErrorIs(t, ValidateURL("ftp://example.com/x"), ErrInvalidURL)
	assert.ErrorIs(t, ValidateURL("/relative"), ErrInvalidURL)
	assert.ErrorIs(t, ValidateURL("https://"), ErrInvalidURL)
}

type stubFetcher struct {
	pages map[string]string
	calls int32
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	atomic.AddInt32(&s.calls, 1)
	p, ok := s.pages[url]
	if !ok {
		return nil, ErrFetch
	}
	return []byte(p), nil
}

func TestServiceLoad(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{"https://example.com/cake": cakePage}}
	store := cache.NewManager(&config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: 10, TTL: time.Hour})
	defer store.Close()

	svc := NewService(fetcher, nil, store)

	got, err := svc.Load(context.Background(), "https://example.com/cake")
	require.NoError(t, err)
	assert.Equal(t, "Sponge Cake", got.Title)
	assert.Equal(t, "https://example.com/cake", got.URL)
	require.Len(t, got.Ingredients, 2)
	assert.Equal(t, "eggs", got.Ingredients[1].Name)
	assert.Equal(t, "beaten", got.Ingredients[1].Preparation)
	require.Len(t, got.Steps, 3)
	assert.Equal(t, "350 F", got.Steps[2].Context.OvenTemperature)
	assert.Equal(t, "30 minutes", got.Steps[2].Time.Duration)

	// 第二次從快取取得
	again, err := svc.Load(context.Background(), "https://example.com/cake")
	require.NoError(t, err)
	assert.Equal(t, got.Title, again.Title)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetcher.calls))
}

func TestServiceLoadErrors(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://example.com/news": `<html><body>news</body></html>`,
		"https://example.com/bad":  `<script type="application/ld+json">{"@type":"Recipe","recipeIngredient":["salt", 2]}</script>`,
	}}
	svc := NewService(fetcher, recipe.NewParser(nil), nil)

	_, err := svc.Load(context.Background(), "mailto:someone")
	assert.ErrorIs(t, err, ErrInvalidURL)

	_, err = svc.Load(context.Background(), "https://example.com/gone")
	assert.ErrorIs(t, err, ErrFetch)

	_, err = svc.Load(context.Background(), "https://example.com/news")
	assert.ErrorIs(t, err, ErrNoRecipe)

	_, err = svc.Load(context.Background(), "https://example.com/bad")
	require.ErrorIs(t, err, recipe.ErrInvalidInput)
	var inputErr *recipe.InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, recipe.FieldIngredients, inputErr.Field)
	assert.Equal(t, 1, inputErr.Index)
}
