package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postMultipartFile(t *testing.T, app *fiber.App, field string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestFormFiles_ReadsNamedField(t *testing.T) {
	cases := []struct {
		name      string
		sentField string
		readField string
		want      int
	}{
		{"create reads images", "images", "images", 1},
		{"update reads newImages", "newImages", "newImages", 1},
		{"update ignores images field", "images", "newImages", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got int
			app := fiber.New()
			app.Post("/upload", func(c *fiber.Ctx) error {
				got = len(formFiles(c, tc.readField))
				return c.SendStatus(fiber.StatusOK)
			})

			postMultipartFile(t, app, tc.sentField)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormFiles_NoMultipartBody(t *testing.T) {
	var got []*multipart.FileHeader
	app := fiber.New()
	app.Post("/upload", func(c *fiber.Ctx) error {
		got = formFiles(c, "newImages")
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/upload", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Nil(t, got)
}
