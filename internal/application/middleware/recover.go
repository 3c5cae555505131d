package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"lindas-hydro/pkg/log"
	"lindas-hydro/pkg/msg"
)

// SetupRecover turns handler panics into 500 responses and logs the stack.
func SetupRecover(e *echo.Echo) {
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error(msg.GetMessage("app.req-panic", c.Request().Method, c.Request().URL.Path, err),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.ByteString("stack", stack),
			)
			return err
		},
	}))
}
