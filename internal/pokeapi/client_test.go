package pokeapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ivysaurJSON = `{
  "id": 2,
  "name": "ivysaur",
  "base_experience": 142,
  "types": [
    {"slot": 2, "type": {"name": "poison", "url": "https://pokeapi.co/api/v2/type/4/"}},
    {"slot": 1, "type": {"name": "grass", "url": "https://pokeapi.co/api/v2/type/12/"}}
  ],
  "stats": [
    {"base_stat": 60, "effort": 0, "stat": {"name": "hp"}},
    {"base_stat": 62, "effort": 0, "stat": {"name": "attack"}},
    {"base_stat": 63, "effort": 0, "stat": {"name": "defense"}},
    {"base_stat": 80, "effort": 1, "stat": {"name": "special-attack"}},
    {"base_stat": 80, "effort": 1, "stat": {"name": "special-defense"}},
    {"base_stat": 60, "effort": 0, "stat": {"name": "speed"}}
  ],
  "sprites": {
    "front_default": "https://img.example/2.png",
    "front_shiny": "https://img.example/shiny/2.png",
    "back_default": null
  }
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(ClientOptions{BaseURL: srv.URL + "/api/v2/pokemon", Timeout: 5 * time.Second})
	require.NoError(t, err)

	return c
}

func TestClient_FetchPokemon(t *testing.T) {
	var gotPath string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ivysaurJSON))
	}))

	p, err := c.FetchPokemon(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/pokemon/2", gotPath)
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, "ivysaur", p.Name)
	assert.Equal(t, []string{"grass", "poison"}, p.Types)
	assert.Equal(t, 60, p.HP)
	assert.Equal(t, 62, p.Attack)
	assert.Equal(t, 63, p.Defense)
	assert.Equal(t, 80, p.SpecialAttack)
	assert.Equal(t, 80, p.SpecialDefense)
	assert.Equal(t, 60, p.Speed)
	assert.Equal(t, "https://img.example/2.png", p.SpriteURL)
	assert.Equal(t, "https://img.example/shiny/2.png", p.ShinyURL)
	assert.False(t, p.Favorite)
	assert.Nil(t, p.Sprite)
}

func TestClient_FetchPokemon_BadResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "created is not ok", status: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(ivysaurJSON))
			}))

			_, err := c.FetchPokemon(context.Background(), 2)
			require.Error(t, err)

			var badResp *BadResponseError
			require.True(t, errors.As(err, &badResp), "expected BadResponseError, got %T", err)
			assert.Equal(t, tt.status, badResp.StatusCode)
		})
	}
}

func TestClient_FetchPokemon_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "<html>oops</html>"},
		{name: "wrong type for id", body: `{"id": "two", "name": "ivysaur"}`},
		{name: "missing id", body: `{"name": "ivysaur"}`},
		{name: "missing name", body: `{"id": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := c.FetchPokemon(context.Background(), 2)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %v", err)
		})
	}
}

func TestClient_FetchPokemon_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	c, err := NewClient(ClientOptions{BaseURL: baseURL, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.FetchPokemon(context.Background(), 1)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestClient_FetchImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sprites/1.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = w.Write(png)
	}))

	base := c.BaseURL()[:len(c.BaseURL())-len("/api/v2/pokemon")]

	data, err := c.FetchImage(context.Background(), base+"/sprites/1.png")
	require.NoError(t, err)
	assert.Equal(t, png, data)

	_, err = c.FetchImage(context.Background(), base+"/sprites/missing.png")

	var badResp *BadResponseError
	require.True(t, errors.As(err, &badResp))
	assert.Equal(t, http.StatusNotFound, badResp.StatusCode)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ivysaurJSON))
	}))

	limited, err := NewClient(ClientOptions{BaseURL: c.BaseURL(), RateLimit: 0.001})
	require.NoError(t, err)

	// The first call consumes the single burst token.
	_, err = limited.FetchPokemon(context.Background(), 2)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = limited.FetchPokemon(ctx, 2)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "expected TransportError, got %v", err)
}

func TestClient_PokemonURL(t *testing.T) {
	c, err := NewClient(ClientOptions{BaseURL: "https://pokeapi.co/api/v2/pokemon/"})
	require.NoError(t, err)

	got, err := c.PokemonURL(25)
	require.NoError(t, err)
	assert.Equal(t, "https://pokeapi.co/api/v2/pokemon/25", got)
}
