package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var sizePrinter = message.NewPrinter(language.English)

// formatSize renders a byte count with thousands separators.
func formatSize(n int64) string {
	return sizePrinter.Sprintf("%d bytes", n)
}

func formatExpiry(t *time.Time) string {
	if t == nil {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatViews(count int, limit *int) string {
	if limit == nil {
		return fmt.Sprintf("%d", count)
	}
	return fmt.Sprintf("%d/%d", count, *limit)
}

// List prints own items of kind ("files", "notes" or "urls"); all asks for
// every user's items, which only admins get.
func (a *App) List(ctx context.Context, kind string, all bool) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	if kind == "urls" {
		urls, err := a.api.ListShortURLs(ctx, all)
		if err != nil {
			return err
		}
		fmt.Fprintln(tw, "CODE\tTARGET\tVISITS\tOWNER\tSHORT URL")
		for _, u := range urls {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", u.Code, u.TargetURL, u.VisitCount, u.OwnerName, u.ShortURL)
		}
		return tw.Flush()
	}

	items, err := a.api.List(ctx, kind, all)
	if err != nil {
		return err
	}
	if kind == "notes" {
		fmt.Fprintln(tw, "ID\tTITLE\tVIEWS\tEXPIRES\tOWNER")
		for _, n := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, n.Title, formatViews(n.ViewCount, n.ViewLimit), formatExpiry(n.ExpiresAt), n.OwnerName)
		}
	} else {
		fmt.Fprintln(tw, "ID\tNAME\tSIZE\tVIEWS\tEXPIRES\tOWNER")
		for _, f := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", f.ID, f.FileName, formatSize(f.SizeBytes), formatViews(f.ViewCount, f.ViewLimit), formatExpiry(f.ExpiresAt), f.OwnerName)
		}
	}
	return tw.Flush()
}
