package cli

import (
	"context"
	"fmt"
	"log"

	"newsdesk/internal/client/models"
	"newsdesk/internal/client/services"
)

// List prints public items in the given category.
func (a *App) List(ctx context.Context, category string) error {
	res, err := a.content.ListByCategory(ctx, category)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printList(res)
	return nil
}

// Approved prints the user's approved items, newest approval first.
func (a *App) Approved(ctx context.Context) error {
	res, err := a.content.Approved(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printList(res)
	return nil
}

// Pending prints the user's pending items in server order.
func (a *App) Pending(ctx context.Context) error {
	res, err := a.content.Pending(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	printList(res)
	return nil
}

// Show fetches and displays a single item.
func (a *App) Show(ctx context.Context, id string) error {
	item, err := a.content.Get(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("%s  %s\n", item.ID, item.Title)
	fmt.Printf("Category: %s  Status: %s  Featured: %v\n", item.Category, item.Status, item.IsFeatured)
	if item.State != "" || item.District != "" {
		fmt.Printf("Region: %s / %s\n", item.State, item.District)
	}
	if item.SubmittedAt != nil {
		fmt.Printf("Submitted: %s\n", item.SubmittedAt.Format("2006-01-02 15:04"))
	}
	if item.ApprovedAt != nil {
		fmt.Printf("Approved: %s\n", item.ApprovedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(item.BodyHTML)
	return nil
}

// Refresh re-pulls both personal lists.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.content.RefreshAll(ctx); err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Println("Lists refreshed.")
	return nil
}

func printList(res *services.ListResult) {
	if res.Degraded {
		if res.Placeholder {
			fmt.Println("-- backend unreachable, showing sample content --")
		} else {
			fmt.Println("-- backend unreachable, showing last saved copy --")
		}
	}
	for _, item := range res.Items {
		fmt.Println(formatRow(item))
	}
	if len(res.Items) == 0 {
		fmt.Println("(no items)")
	}
}

func formatRow(item models.Item) string {
	marker := " "
	if item.IsFeatured {
		marker = "*"
	}
	return fmt.Sprintf("%s %-12s %-10s %s", marker, item.ID, item.Status, item.Title)
}
