package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("catalog", "/catalog")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	NewRouter(engine).Register(group).Setup()

	w := perform(engine, "GET", "/api/v1/catalog/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Router-Middleware", "applied")
		c.Next()
	})

	group := NewDomainGroup("reports", "/reports")
	group.GET("/summary", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.Register(group).Setup()

	w := perform(engine, "GET", "/api/v1/reports/summary")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", w.Header().Get("X-Router-Middleware"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("catalog", "/catalog")
		assert.Equal(t, "catalog", g.Name())
		assert.Equal(t, "/catalog", g.Prefix())
	})

	t.Run("registers routes for each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("catalog", "/catalog")
		g.GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			POST("/products", func(c *gin.Context) { c.String(http.StatusCreated, "created") }).
			PUT("/products/:id", func(c *gin.Context) { c.String(http.StatusOK, "updated") }).
			DELETE("/products/:id", func(c *gin.Context) { c.String(http.StatusNoContent, "") })

		g.RegisterRoutes(engine.Group("/api/v1"))

		cases := []struct {
			method string
			path   string
			want   int
		}{
			{"GET", "/api/v1/catalog/products", http.StatusOK},
			{"POST", "/api/v1/catalog/products", http.StatusCreated},
			{"PUT", "/api/v1/catalog/products/123", http.StatusOK},
			{"DELETE", "/api/v1/catalog/products/123", http.StatusNoContent},
		}
		for _, tc := range cases {
			w := perform(engine, tc.method, tc.path)
			assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("auth", "/auth")

		g.Use(func(c *gin.Context) {
			c.Header("X-Group-Middleware", "applied")
			c.Next()
		})
		g.POST("/login", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		g.RegisterRoutes(engine.Group("/api/v1"))

		w := perform(engine, "POST", "/api/v1/auth/login")
		assert.Equal(t, "applied", w.Header().Get("X-Group-Middleware"))
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()

	catalog := NewDomainGroup("catalog", "/catalog")
	catalog.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, "products")
	})

	reports := NewDomainGroup("report", "/reports")
	reports.GET("/deleted-percentage", func(c *gin.Context) {
		c.String(http.StatusOK, "reports")
	})

	NewRouter(engine).Register(catalog).Register(reports).Setup()

	w := perform(engine, "GET", "/api/v1/catalog/products")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "products", w.Body.String())

	w = perform(engine, "GET", "/api/v1/reports/deleted-percentage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "reports", w.Body.String())
}
