package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"newsdesk/internal/client/models"
)

// Edit prompts for new field values (empty input keeps the current value)
// and applies them. The edit is written locally first, so it survives a
// backend outage and keeps winning in every list until confirmed remotely.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.begin(id) {
		fmt.Println("request in progress")
		return nil
	}
	defer a.end(id)

	var fields models.Partial

	title, err := getSimpleText(a.reader, "New title (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if title != "" {
		fields.Title = &title
	}

	body, err := GetMultiline(a.reader, "New body (empty to keep):", os.Stdout)
	if err != nil {
		return err
	}
	if body != "" {
		fields.BodyHTML = &body
	}

	category, err := getSimpleText(a.reader, "New category (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if category != "" {
		fields.Category = &category
	}

	if fields.Title == nil && fields.BodyHTML == nil && fields.Category == nil {
		fmt.Println("Nothing to change.")
		return nil
	}

	if err := a.content.Edit(ctx, id, fields); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Saved.")
	return nil
}

// Feature toggles the featured flag on an item. Repeating a confirmed
// feature-on is a no-op and does not hit the backend.
func (a *App) Feature(ctx context.Context, id string, on bool) error {
	if !a.begin(id) {
		fmt.Println("request in progress")
		return nil
	}
	defer a.end(id)

	if err := a.content.SetFeatured(ctx, id, on); err != nil {
		log.Println(err.Error())
		return err
	}
	if on {
		fmt.Println("Featured.")
	} else {
		fmt.Println("Unfeatured.")
	}
	return nil
}

// Delete removes an item after backend confirmation. Without confirmation
// nothing is hidden locally, so the item cannot silently diverge.
func (a *App) Delete(ctx context.Context, id string) error {
	if !a.begin(id) {
		fmt.Println("request in progress")
		return nil
	}
	defer a.end(id)

	if err := a.content.Delete(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

// Create collects a new draft and submits it through the fallback pipeline.
// An attachment path is optional; the file is read up front so the pipeline
// can retry without re-reading it.
func (a *App) Create(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Enter body:", os.Stdout)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category", os.Stdout)
	if err != nil {
		return err
	}
	state, err := getSimpleText(a.reader, "Enter state (optional)", os.Stdout)
	if err != nil {
		return err
	}
	district, err := getSimpleText(a.reader, "Enter district (optional)", os.Stdout)
	if err != nil {
		return err
	}
	imagePath, err := getSimpleText(a.reader, "Featured image path (optional)", os.Stdout)
	if err != nil {
		return err
	}

	draft := models.Draft{
		Title:    title,
		BodyHTML: body,
		Category: category,
		State:    state,
		District: district,
	}

	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			log.Printf("error reading attachment: %v", err)
			return err
		}
		draft.AttachmentName = filepath.Base(imagePath)
		draft.Attachment = data
	}

	if err := a.content.Create(ctx, draft); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Submitted.")
	return nil
}
