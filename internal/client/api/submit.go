package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"newsdesk/internal/client/models"
)

// SubmitStep pairs one endpoint descriptor with a payload transform. Later
// steps in a pipeline carry progressively simpler payloads, so a backend
// that chokes on the rich shape still gets a chance to accept the core
// fields.
type SubmitStep struct {
	Descriptor Descriptor

	// Build produces the request body and its content type. It runs once
	// per attempt so the body reader is always fresh.
	Build func() (io.Reader, string, error)

	// Extended switches the attempt to the upload timeout budget; set for
	// steps whose payload includes a binary attachment.
	Extended bool
}

// Submit runs a submission pipeline with the same short-circuit-on-success
// semantics as the fetch chain. On full exhaustion every attempt's failure
// is aggregated into one composite error; there is no cached fallback for
// writes.
func (c *Client) Submit(ctx context.Context, op Op, steps []SubmitStep) error {
	token, err := c.resolveToken(ctx, op)
	if err != nil {
		return err
	}
	corr := uuid.NewString()

	chain := make([]chainStep, 0, len(steps))
	for _, s := range steps {
		s := s
		timeout := c.attemptTimeout
		if s.Extended {
			timeout = c.uploadAttemptTimeout
		}
		chain = append(chain, chainStep{
			name:    s.Descriptor.Name,
			timeout: timeout,
			run: func(actx context.Context) error {
				body, contentType, err := s.Build()
				if err != nil {
					return fmt.Errorf("building payload: %w", err)
				}
				_, err = c.doRequest(actx, s.Descriptor, corr, token, body, contentType)
				return err
			},
		})
	}

	return c.runChain(ctx, op, corr, chain)
}

// NewSubmissionSteps zips the descriptor chain with progressively
// simplifying payload transforms for a create/update draft:
//
//  1. the full payload, as multipart form data when an attachment exists
//  2. the full JSON payload with the attachment stripped
//  3. a minimal JSON payload (title, body, category only)
//
// With more descriptors than transforms, trailing descriptors reuse the
// minimal shape.
func NewSubmissionSteps(descs []Descriptor, draft models.Draft) []SubmitStep {
	builders := []func() (io.Reader, string, error){
		fullBuilder(draft),
		jsonBuilder(draft),
		minimalBuilder(draft),
	}

	steps := make([]SubmitStep, 0, len(descs))
	for i, d := range descs {
		bi := i
		if bi >= len(builders) {
			bi = len(builders) - 1
		}
		steps = append(steps, SubmitStep{
			Descriptor: d,
			Build:      builders[bi],
			Extended:   bi == 0 && draft.HasAttachment(),
		})
	}
	return steps
}

// NewUpdateSteps builds the pipeline for a field-level update. The first
// descriptors carry the full changed-field set; trailing descriptors fall
// back to just the core editorial fields.
func NewUpdateSteps(descs []Descriptor, fields models.Partial) []SubmitStep {
	core := models.Partial{
		ID:         fields.ID,
		Title:      fields.Title,
		BodyHTML:   fields.BodyHTML,
		IsFeatured: fields.IsFeatured,
	}

	steps := make([]SubmitStep, 0, len(descs))
	for i, d := range descs {
		payload := fields
		if i >= len(descs)/2 && len(descs) > 1 {
			payload = core
		}
		steps = append(steps, SubmitStep{
			Descriptor: d,
			Build: func() (io.Reader, string, error) {
				encoded, err := json.Marshal(payload)
				if err != nil {
					return nil, "", err
				}
				return bytes.NewReader(encoded), "application/json", nil
			},
		})
	}
	return steps
}

func fullBuilder(draft models.Draft) func() (io.Reader, string, error) {
	if !draft.HasAttachment() {
		return jsonBuilder(draft)
	}
	return func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		fields := map[string]string{
			"title":    draft.Title,
			"bodyHtml": draft.BodyHTML,
			"category": draft.Category,
			"state":    draft.State,
			"district": draft.District,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := w.WriteField(name, value); err != nil {
				return nil, "", err
			}
		}

		name := draft.AttachmentName
		if name == "" {
			name = "featured-image"
		}
		part, err := w.CreateFormFile("featuredImage", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(draft.Attachment); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}

		return bytes.NewReader(buf.Bytes()), w.FormDataContentType(), nil
	}
}

func jsonBuilder(draft models.Draft) func() (io.Reader, string, error) {
	return func() (io.Reader, string, error) {
		encoded, err := json.Marshal(draft)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(encoded), "application/json", nil
	}
}

func minimalBuilder(draft models.Draft) func() (io.Reader, string, error) {
	minimal := models.Draft{
		ID:       draft.ID,
		Title:    draft.Title,
		BodyHTML: draft.BodyHTML,
		Category: draft.Category,
	}
	return func() (io.Reader, string, error) {
		encoded, err := json.Marshal(minimal)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(encoded), "application/json", nil
	}
}
