package domain

import "sort"

// RelatedTool links one tool page to another
type RelatedTool struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

var relatedTools = map[string][]RelatedTool{
	"merge-pdf": {
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
		{Name: "Extract Pages", URL: "/extract-pages.html", Description: "Select specific pages to extract from PDF"},
	},
	"split-pdf": {
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Extract Pages", URL: "/extract-pages.html", Description: "Select specific pages to extract from PDF"},
		{Name: "Remove Pages", URL: "/remove-pages.html", Description: "Delete specific pages from PDF files"},
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
	},
	"compress-pdf": {
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Remove Metadata", URL: "/remove-metadata.html", Description: "Strip all metadata from PDF files for privacy"},
		{Name: "Remove Pages", URL: "/remove-pages.html", Description: "Delete specific pages from PDF files"},
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
	},
	"extract-pages": {
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
		{Name: "Remove Pages", URL: "/remove-pages.html", Description: "Delete specific pages from PDF files"},
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"remove-pages": {
		{Name: "Extract Pages", URL: "/extract-pages.html", Description: "Select specific pages to extract from PDF"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
	},
	"sort-pages": {
		{Name: "Extract Pages", URL: "/extract-pages.html", Description: "Select specific pages to extract from PDF"},
		{Name: "Remove Pages", URL: "/remove-pages.html", Description: "Delete specific pages from PDF files"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"rotate-pdf": {
		{Name: "Sort Pages", URL: "/sort-pages.html", Description: "Swap & sort PDF pages in anyway you want"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
	},
	"remove-metadata": {
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
		{Name: "Remove Password", URL: "/remove-password.html", Description: "Remove the password of a PDF file"},
		{Name: "Remove Pages", URL: "/remove-pages.html", Description: "Delete specific pages from PDF files"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"remove-password": {
		{Name: "Remove Metadata", URL: "/remove-metadata.html", Description: "Strip all metadata from PDF files for privacy"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
	},
	"add-password": {
		{Name: "Remove Password", URL: "/remove-password.html", Description: "Unlock a PDF with its current password"},
		{Name: "Remove Metadata", URL: "/remove-metadata.html", Description: "Strip all metadata from PDF files for privacy"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"pdf-to-png": {
		{Name: "PNG to PDF", URL: "/png-to-pdf.html", Description: "Convert PNG images to PDF documents"},
		{Name: "PDF to JPEG", URL: "/pdf-to-jpeg.html", Description: "Convert PDF pages to JPEG images"},
		{Name: "JPEG to PDF", URL: "/jpeg-to-pdf.html", Description: "Convert JPEG images to PDF documents"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
	},
	"pdf-to-jpeg": {
		{Name: "JPEG to PDF", URL: "/jpeg-to-pdf.html", Description: "Convert JPEG images to PDF documents"},
		{Name: "PDF to PNG", URL: "/pdf-to-png.html", Description: "Convert PDF pages to high-quality PNG images"},
		{Name: "PNG to PDF", URL: "/png-to-pdf.html", Description: "Convert PNG images to PDF documents"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
	},
	"png-to-pdf": {
		{Name: "PDF to PNG", URL: "/pdf-to-png.html", Description: "Convert PDF pages to high-quality PNG images"},
		{Name: "JPEG to PDF", URL: "/jpeg-to-pdf.html", Description: "Convert JPEG images to PDF documents"},
		{Name: "PDF to JPEG", URL: "/pdf-to-jpeg.html", Description: "Convert PDF pages to JPEG images"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"jpeg-to-pdf": {
		{Name: "PDF to JPEG", URL: "/pdf-to-jpeg.html", Description: "Convert PDF pages to JPEG images"},
		{Name: "PNG to PDF", URL: "/png-to-pdf.html", Description: "Convert PNG images to PDF documents"},
		{Name: "PDF to PNG", URL: "/pdf-to-png.html", Description: "Convert PDF pages to high-quality PNG images"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"pdf-to-txt": {
		{Name: "TXT to PDF", URL: "/txt-to-pdf.html", Description: "Convert text files to PDF documents"},
		{Name: "PDF to PNG", URL: "/pdf-to-png.html", Description: "Convert PDF pages to high-quality PNG images"},
		{Name: "PDF to JPEG", URL: "/pdf-to-jpeg.html", Description: "Convert PDF pages to JPEG images"},
		{Name: "Split PDF", URL: "/split-pdf.html", Description: "Split PDF into separate pages or ranges"},
	},
	"txt-to-pdf": {
		{Name: "PDF to TXT", URL: "/pdf-to-txt.html", Description: "Extract text content from PDF files"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
		{Name: "PNG to PDF", URL: "/png-to-pdf.html", Description: "Convert PNG images to PDF documents"},
	},
	"heif-to-pdf": {
		{Name: "JPEG to PDF", URL: "/jpeg-to-pdf.html", Description: "Convert JPEG images to PDF documents"},
		{Name: "PNG to PDF", URL: "/png-to-pdf.html", Description: "Convert PNG images to PDF documents"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
	},
	"html-to-pdf": {
		{Name: "PDF to TXT", URL: "/pdf-to-txt.html", Description: "Extract text content from PDF files"},
		{Name: "TXT to PDF", URL: "/txt-to-pdf.html", Description: "Convert text files to PDF documents"},
		{Name: "Merge PDF", URL: "/merge-pdf.html", Description: "Combine multiple PDF files into one"},
		{Name: "Compress PDF", URL: "/compress-pdf.html", Description: "Reduce PDF file size while maintaining quality"},
	},
}

// RelatedTools returns the tools suggested next to the given tool
func RelatedTools(tool string) ([]RelatedTool, error) {
	tools, ok := relatedTools[tool]
	if !ok {
		return nil, ErrUnknownTool
	}
	out := make([]RelatedTool, len(tools))
	copy(out, tools)
	return out, nil
}

// ToolSlugs lists every tool with a related tools entry
func ToolSlugs() []string {
	slugs := make([]string, 0, len(relatedTools))
	for slug := range relatedTools {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
