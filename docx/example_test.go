package docx_test

import (
	"fmt"

	"github.com/docsmith/docsmith/docx"
)

func ExampleNew() {
	d := docx.New()
	d.AddHeading("Project Plan", 1)
	d.AddParagraph("Kickoff is in March.")

	fmt.Println(d.Text())
	// Output:
	// Project Plan
	// Kickoff is in March.
}

func ExampleDocument_ReplaceAll() {
	d := docx.New()
	d.AddParagraph("The staging cluster mirrors the production cluster.")

	changed := d.ReplaceAll("cluster", "region")
	fmt.Println(changed)
	fmt.Println(d.Text())
	// Output:
	// 1
	// The staging region mirrors the production region.
}

func ExampleDocument_FormattedText() {
	d := docx.New()
	p := d.AddParagraph("")
	p.AddRun("Status: ")
	p.AddRun("on track").SetBold(true)

	fmt.Print(d.FormattedText())
	// Output:
	// [PARAGRAPH style="Normal" align=""]
	// Status: [bold]on track[/]
	// [/PARAGRAPH]
}

func ExampleNormalizePath() {
	fmt.Println(docx.NormalizePath("report"))
	fmt.Println(docx.NormalizePath("report.docx"))
	// Output:
	// report.docx
	// report.docx
}
