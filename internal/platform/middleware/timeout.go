package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

// RequestTimeout sets a deadline on each request context. When it expires
// before the handler returns, the client gets a 504 with a FHIR
// OperationOutcome.
//
// The handler runs in its own goroutine and still holds c after the 504 is
// written, so the middleware waits for it to return before handing c back
// to echo's pool. Handlers must stop on ctx.Done() without writing a
// response; the terminology handlers never block, and synthesis checks the
// context before building output.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))

			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				var err error
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					if !c.Response().Committed {
						err = c.JSON(http.StatusGatewayTimeout, fhir.TimeoutOutcome())
					}
				} else {
					// client went away
					err = ctx.Err()
				}
				<-done
				return err
			}
		}
	}
}
