package serverutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseEnvelopes(t *testing.T) {
	ok := SuccessResponse("done", map[string]int{"count": 3})
	assert.True(t, ok.Success)
	assert.Equal(t, "done", ok.Message)
	assert.Equal(t, 3, ok.Data["count"])

	bad := ErrorResponse(404, "not found")
	assert.False(t, bad.Success)
	assert.Equal(t, 404, bad.Code)
	assert.Nil(t, bad.Data)
}

func TestValidateRequest(t *testing.T) {
	type extendReq struct {
		ExtensionDays int    `validate:"required,gt=0"`
		Reason        string `validate:"required,min=3"`
	}

	assert.NoError(t, ValidateRequest(&extendReq{ExtensionDays: 30, Reason: "customer requested"}))

	err := ValidateRequest(&extendReq{ExtensionDays: -1, Reason: "ok"})
	require.Error(t, err)
	ferr, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, ferr.Code)
	assert.Contains(t, ferr.Message, "validation failed")
}

func TestRequireAdmin(t *testing.T) {
	app := fiber.New()
	app.Get("/admin-only", func(c *fiber.Ctx) error {
		c.Locals("role", c.Get("X-Test-Role"))
		return c.Next()
	}, RequireAdmin, func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse[any]("in", nil))
	})

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-Test-Role", "member")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("X-Test-Role", "admin")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body BaseResponse[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
}
