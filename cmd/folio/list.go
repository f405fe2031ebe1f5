package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goliatone/go-folio"
)

func runList(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("folio list", flag.ContinueOnError)
	var opts moduleOptions
	opts.register(fs)
	collection := fs.String("collection", "posts", "Collection to list")
	limit := fs.Int("limit", -1, "Maximum number of entries (negative lists everything)")
	asJSON := fs.Bool("json", false, "Print metadata as JSON")
	idsOnly := fs.Bool("ids", false, "Print identifiers in store order without reading documents")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := moduleBuilder(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	if *idsOnly {
		ids, err := m.Identifiers(ctx, *collection)
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(out, id)
		}
		return nil
	}

	listOpts := folio.ListOptions{}
	if *limit >= 0 {
		listOpts.Limit = limit
	} else if m.Config.Listing.DefaultLimit > 0 {
		n := m.Config.Listing.DefaultLimit
		listOpts.Limit = &n
	}

	items, err := m.List(ctx, *collection, listOpts)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "IDENTIFIER\tDATE\tTITLE")
	for _, item := range items {
		date := "-"
		if item.PublicationDate != nil {
			date = *item.PublicationDate
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Identifier, date, item.TitleOr(item.Identifier))
	}
	return w.Flush()
}

func runShow(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("folio show", flag.ContinueOnError)
	var opts moduleOptions
	opts.register(fs)
	collection := fs.String("collection", "posts", "Collection holding the document")
	id := fs.String("id", "", "Document identifier (file name without extension)")
	raw := fs.Bool("raw", false, "Print the unrendered body instead of HTML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("show: -id is required")
	}

	m, err := moduleBuilder(opts)
	if err != nil {
		return err
	}
	defer m.Close()

	doc, ok, err := m.Get(ctx, *collection, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("show: %s/%s not found", *collection, *id)
	}

	meta, err := json.MarshalIndent(doc.Metadata, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n\n", meta)
	if *raw {
		_, err = out.Write(doc.Body)
		return err
	}
	html, err := m.RenderDocument(ctx, doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, html)
	return err
}
