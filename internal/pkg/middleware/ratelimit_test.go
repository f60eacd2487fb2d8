package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit_EnforcesPerCallerLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limited, err := RateLimit(client, "2-M")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ping", limited, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	caller := "11111111-1111-1111-1111-111111111111"
	hit := func(sharer string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(SharerHeader, sharer)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit(caller))
	assert.Equal(t, http.StatusOK, hit(caller))
	assert.Equal(t, http.StatusTooManyRequests, hit(caller))

	// A different caller has its own budget.
	assert.Equal(t, http.StatusOK, hit("22222222-2222-2222-2222-222222222222"))
}

func TestRateLimit_RejectsInvalidRate(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	_, err := RateLimit(client, "banana")
	require.Error(t, err)
}
