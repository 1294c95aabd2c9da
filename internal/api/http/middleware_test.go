package http

import (
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/shop-service/internal/observability"
	apperrors "github.com/spec-kit/shop-service/pkg/util/errorutil"
)

func TestErrorMiddleware_LogsDetails(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := newInstrumentedApp(t, zap.New(core), observability.NewMetrics(), nil)

	status, _ := do(t, app, nethttp.MethodPost, "/users/signup", "", map[string]string{"email": "not-an-email", "password": "x"})
	require.Equal(t, nethttp.StatusBadRequest, status)

	rejected := logs.FilterMessage("request rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.WarnLevel, rejected[0].Level)

	fields := rejected[0].ContextMap()
	assert.Equal(t, apperrors.CodeInvalidArgument, fields["code"])
	assert.Equal(t, map[string]any{"email": "email"}, fields["details"])
}

func TestErrorMiddleware_NoDetailsNoWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := newInstrumentedApp(t, zap.New(core), observability.NewMetrics(), nil)

	status, _ := do(t, app, nethttp.MethodGet, "/api/product", "", nil)
	require.Equal(t, nethttp.StatusUnauthorized, status)
	assert.Zero(t, logs.FilterMessage("request rejected").Len())
}

func TestErrorMiddleware_MetricsKeyedByRoute(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newInstrumentedApp(t, zap.NewNop(), metrics, nil)
	token := signupAndSignin(t, app, "metrics@example.com")

	status, _ := do(t, app, nethttp.MethodPost, "/api/product", token, map[string]any{"material": "Steel"})
	require.Equal(t, nethttp.StatusBadRequest, status)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.Errors["/api/product|POST|"+apperrors.CodeInvalidArgument])
	assert.Equal(t, int64(1), snap.Requests["/api/product|POST|400"])
}
