package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/netx"
	pb "github.com/dmitrijs2005/transkeeper/internal/proto"
)

// download is a seam for netx.DownloadPresignedURL.
var download = netx.DownloadPresignedURL

func printEntries(w io.Writer, entries []*pb.HistoryEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "[%s] %s -> %s: %s => %s\n", e.Time, e.From, e.To, e.Input, e.Output)
	}
}

// History prints the newest limit entries; 0 uses the server page size.
func (a *App) History(ctx context.Context, limit int) error {
	entries, err := a.client.History(ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No history yet")
		return nil
	}
	printEntries(a.out, entries)
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Clear your whole history? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !isYes(answer) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.client.ClearHistory(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "History cleared")
	return nil
}

// Export asks the server to publish the history and downloads the result.
func (a *App) Export(ctx context.Context) error {
	resp, err := a.client.ExportHistory(ctx)
	if err != nil {
		return err
	}

	data, err := download(ctx, resp.URL)
	if err != nil {
		return fmt.Errorf("error downloading export: %w", err)
	}

	path, err := a.saveFile(exportFileName(a.now()), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d entries to %s\n", resp.Entries, path)
	return nil
}

// exportFileName names a downloaded history export.
func exportFileName(t time.Time) string {
	return fmt.Sprintf("history_%s.json", t.Format("20060102_150405"))
}
