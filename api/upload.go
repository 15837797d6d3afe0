// ABOUTME: Multipart tour creation with an inline image attachment
// ABOUTME: Scalar fields travel as form values alongside the binary part
package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/tablevine/tablevine/models"
)

// CreateTourWithImage posts a tour draft as a multipart form, attaching the
// image bytes under the "image" part. Returns the server-canonical tour.
func (c *Client) CreateTourWithImage(ctx context.Context, draft models.Tour, image []byte, filename string) (models.Tour, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"partner_id":  draft.PartnerID.String(),
		"title":       draft.Title,
		"description": draft.Description,
		"price":       strconv.FormatInt(draft.Price, 10),
		"currency":    draft.Currency,
		"capacity":    strconv.Itoa(draft.Capacity),
		"status":      draft.Status,
	}
	if !draft.Date.IsZero() {
		fields["date"] = draft.Date.Format(time.RFC3339)
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return models.Tour{}, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	if len(image) > 0 {
		if filename == "" {
			filename = "tour.jpg"
		}
		part, err := w.CreateFormFile("image", filename)
		if err != nil {
			return models.Tour{}, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(image); err != nil {
			return models.Tour{}, fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return models.Tour{}, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tours", &buf)
	if err != nil {
		return models.Tour{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return models.Tour{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var created models.Tour
	if err := c.decode(resp, &created); err != nil {
		return models.Tour{}, err
	}
	return created, nil
}
