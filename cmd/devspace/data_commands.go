package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/devspace-tui/devspace/internal/widget/data"
)

// exportData writes the export document to out, or stdout when out is empty.
func exportData(ctx context.Context, out string) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	doc, err := data.Export(ctx, e.store)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	doc = append(doc, '\n')

	if out == "" {
		_, err = os.Stdout.Write(doc)
		return err
	}
	if err := os.WriteFile(out, doc, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	e.logger.Info("exported", "file", out)
	return nil
}

// importData replaces every collection with the document at path ("-" for
// stdin).
func importData(ctx context.Context, path string) error {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		// #nosec G304 - the user names the file to import
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	if err := data.Import(ctx, e.store, raw); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	_, counts, err := data.Load(ctx, e.store)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d notes, %d todos, %d requests, %d passwords.\n",
		counts.DailyNotes, counts.Todos, counts.HTTPRequests, counts.Passwords)
	return nil
}

// clearData removes every collection after confirmation.
func clearData(ctx context.Context, yes bool) error {
	e, err := setup(false)
	if err != nil {
		return err
	}
	defer e.close()

	if !yes {
		_, counts, err := data.Load(ctx, e.store)
		if err != nil {
			return err
		}
		fmt.Printf("This will delete %d items.\n", counts.Total())
		if !confirm("Are you sure you want to delete all data?") {
			fmt.Println("Clear cancelled.")
			return nil
		}
	}
	if err := data.Clear(ctx, e.store); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}
	fmt.Println("All data deleted.")
	return nil
}
