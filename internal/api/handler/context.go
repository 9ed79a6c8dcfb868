package handler

import "github.com/labstack/echo/v4"

// ctxUserID extracts the user id injected by the Auth middleware. It returns
// an empty string when the request carried no token, which is a valid state:
// guest checkout places orders without an account.
func ctxUserID(c echo.Context) string {
	userID, _ := c.Get("user_id").(string)
	return userID
}
