package catalog_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/docsmith/docsmith/catalog"
	"github.com/docsmith/docsmith/docx"
)

func ExampleCatalog() {
	root, err := os.MkdirTemp("", "catalog-example")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(root) }()

	d := docx.New()
	d.Properties().Title = "Plan"
	d.AddParagraph("Deployment runbook for the staging cluster.")
	if err := d.Save(filepath.Join(root, "plan.docx")); err != nil {
		log.Fatal(err)
	}

	c := catalog.New(root, catalog.Options{})
	if err := c.Scan(); err != nil {
		log.Fatal(err)
	}
	for _, s := range c.List() {
		fmt.Println(s.Name, s.Title, s.WordCount)
	}
	// Output:
	// plan.docx Plan 6
}

func ExampleCatalog_OnChange() {
	root, err := os.MkdirTemp("", "catalog-example")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = os.RemoveAll(root) }()

	c := catalog.New(root, catalog.Options{})
	unsubscribe := c.OnChange(func(evt catalog.ChangeEvent) {
		fmt.Println(evt.Type, evt.Name)
	})
	defer unsubscribe()

	if err := docx.New().Save(filepath.Join(root, "notes.docx")); err != nil {
		log.Fatal(err)
	}
	if err := c.Touch("notes.docx"); err != nil {
		log.Fatal(err)
	}
	// Output:
	// added notes.docx
}
