package utils

import (
	"errors"
	"net/url"
	"os"

	"github.com/gofiber/fiber/v2"

	"grade-analytics/app/analysis"
	"grade-analytics/app/loader"
	repoPg "grade-analytics/app/repository/postgresql"
)

// StatusFor memetakan jenis error domain ke HTTP status code.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case analysis.IsNotFound(err), errors.Is(err, repoPg.ErrDatasetNotFound), errors.Is(err, os.ErrNotExist):
		return fiber.StatusNotFound
	case errors.Is(err, analysis.ErrEmptyDataset), errors.Is(err, loader.ErrNoValidRows):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, loader.ErrMissingColumn), errors.Is(err, loader.ErrMalformedCSV):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail menulis error dengan format yang sama di semua service.
func Fail(c *fiber.Ctx, err error) error {
	return c.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}

// PathParam returns the unescaped route parameter, so "Base%20de%20donn%C3%A9es" matches the stored subject.
func PathParam(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
