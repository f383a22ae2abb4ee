package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	modelText := `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`
	m, err := model.NewModelFromString(modelText)
	require.NoError(t, err)
	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)
	return e
}

func TestCasbinMW_Enforce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		setupEnforcer  func(t *testing.T) *casbin.Enforcer
		setupContext   func(c *gin.Context)
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "no authenticated role on context",
			setupEnforcer:  newTestEnforcer,
			setupContext:   func(c *gin.Context) {},
			method:         "GET",
			path:           "/api/admin/verifications",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "no policy for role",
			setupEnforcer: newTestEnforcer,
			setupContext: func(c *gin.Context) {
				c.Set(CtxUserRole, "patient")
			},
			method:         "GET",
			path:           "/api/admin/verifications",
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "wildcard policy grants admin routes",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := newTestEnforcer(t)
				_, err := e.AddPolicy("role_hospital_admin", "/api/admin/*", "(GET|POST)")
				require.NoError(t, err)
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set(CtxUserRole, "hospital_admin")
			},
			method:         "GET",
			path:           "/api/admin/verifications",
			expectedStatus: http.StatusOK,
		},
		{
			name: "wildcard policy covers review actions",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := newTestEnforcer(t)
				_, err := e.AddPolicy("role_hospital_admin", "/api/admin/*", "(GET|POST)")
				require.NoError(t, err)
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set(CtxUserRole, "hospital_admin")
			},
			method:         "POST",
			path:           "/api/admin/verifications/ver-1/approve",
			expectedStatus: http.StatusOK,
		},
		{
			name: "method outside policy action set",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := newTestEnforcer(t)
				_, err := e.AddPolicy("role_hospital_admin", "/api/admin/*", "(GET|POST)")
				require.NoError(t, err)
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set(CtxUserRole, "hospital_admin")
			},
			method:         "DELETE",
			path:           "/api/admin/verifications",
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "policy for another role does not leak",
			setupEnforcer: func(t *testing.T) *casbin.Enforcer {
				e := newTestEnforcer(t)
				_, err := e.AddPolicy("role_hospital_admin", "/api/admin/*", "(GET|POST)")
				require.NoError(t, err)
				return e
			},
			setupContext: func(c *gin.Context) {
				c.Set(CtxUserRole, "doctor")
			},
			method:         "GET",
			path:           "/api/admin/verifications",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewCasbinMW(tt.setupEnforcer(t))

			router := gin.New()
			router.Use(func(c *gin.Context) {
				tt.setupContext(c)
				c.Next()
			})
			router.Use(mw.Enforce())
			handle := func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "success"})
			}
			router.GET("/api/admin/verifications", handle)
			router.POST("/api/admin/verifications/:id/approve", handle)
			router.DELETE("/api/admin/verifications", handle)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
