package registry

import "github.com/modelcontextprotocol/go-sdk/mcp"

// registerTools wires every tool onto the MCP server. Input schemas are
// inferred from the handler input structs.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_document",
		Description: "Create a new Word document with optional title and author metadata.",
	}, s.createDocument)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "copy_document",
		Description: "Create a copy of a Word document.",
	}, s.copyDocument)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_heading",
		Description: "Add a heading to a Word document. Levels outside 1-9 are clamped to the nearest valid level.",
	}, s.addHeading)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_paragraph",
		Description: "Add a paragraph to a Word document.",
	}, s.addParagraph)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_table",
		Description: "Add a table to a Word document, optionally filled with data.",
	}, s.addTable)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_picture",
		Description: "Add an image to a Word document with proportional scaling.",
	}, s.addPicture)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "add_page_break",
		Description: "Add a page break to the document.",
	}, s.addPageBreak)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_paragraph",
		Description: "Delete a paragraph from a document.",
	}, s.deleteParagraph)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_and_replace",
		Description: "Search for text and replace all occurrences.",
	}, s.searchAndReplace)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "format_text",
		Description: "Format a specific range of text within a paragraph.",
	}, s.formatText)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "create_custom_style",
		Description: "Create a custom paragraph style in the document.",
	}, s.createCustomStyle)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "format_table",
		Description: "Format a table with borders, shading, and header structure.",
	}, s.formatTable)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "set_paragraph_alignment",
		Description: "Set the alignment for a paragraph.",
	}, s.setParagraphAlignment)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_document_info",
		Description: "Get metadata and statistics about a Word document.",
	}, s.getDocumentInfo)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_document_text",
		Description: "Extract the text content of a Word document.",
	}, s.getDocumentText)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_document_outline",
		Description: "Get the structure of a Word document.",
	}, s.getDocumentOutline)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_document_styles",
		Description: "Get information about all styles in a document.",
	}, s.getDocumentStyles)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_available_documents",
		Description: "List all .docx files in a directory.",
	}, s.listAvailableDocuments)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_headers_and_footers",
		Description: "Get header and footer content for each section.",
	}, s.getHeadersAndFooters)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_footnotes_and_endnotes",
		Description: "Get footnotes and endnotes from a document.",
	}, s.getFootnotesAndEndnotes)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_documents",
		Description: "Full-text search across the documents in the working directory.",
	}, s.searchDocuments)
}
