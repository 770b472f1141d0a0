package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	DocxAnalyzeFileDescription = `Detect the fillable form fields inside a docx document's tables.

**When to use:** Before filling a form, to see which fields were recognized, their labels, and which cells would receive values.

**Why it's useful:** Chinese form documents rarely carry interactive form fields; the labels live in table cells. This tool classifies every table (vertical, horizontal, or mixed layout) and maps each recognized label to the cell that should hold its value.

**Examples:**
• Inspect an application form: "Analyze application.docx to list its fillable fields"
• Verify recognition: "Check which labels in contract.docx were matched before filling"
• Debug a fill: "See why the phone field was not filled in form.docx"

**Common workflows:**
1. Form Filling: Analyze file → review field identifiers → fill with matching data keys
2. Template Audit: Analyze template → confirm expected fields are recognized → fix labels that are missed

**Best practices:** Run this before docx_fill_file; the field identifiers in the result are exactly the data keys the fill accepts.`

	DocxFillFileDescription = `Fill a docx form with data and save the result as a new file.

**When to use:** After docx_analyze_file has shown which fields the document exposes and you have values for them.

**Why it's useful:** Writes each value into the cell its label was bound to, following the table's detected layout. The original file is never modified; a filled copy is written.

**Examples:**
• Fill an application: "Fill application.docx with name=张三 and phone=13800138000"
• Batch preparation: "Fill the leave-request template for each employee record"

**Common workflows:**
1. Single Form: Analyze → fill with data object → open the filled copy
2. Bulk Filling: Search directory → analyze each → fill with per-record data

**Best practices:** Data keys are base field identifiers (name, phone, email, ...); unknown keys are ignored and missing fields stay blank, so one data object can serve many templates.`

	DocxValidateFileDescription = `Verify a file is a readable docx document before processing.

**When to use:** Before attempting to analyze or fill any docx file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors by catching non-docx files, office lock files (~$...), oversized files, and corrupted containers early.

**Examples:**
• Upload verification: "Check user-uploaded contract.docx is valid before processing"
• Batch safety: "Validate all files in /forms/ before bulk filling"

**Common workflows:**
1. Automated Processing: Validate → process if valid → handle errors gracefully
2. Quality Check: Validate → report issues → fix or reject bad files

**Best practices:** Always run this first in automated workflows handling unknown files.`

	DocxSearchDirectoryDescription = `Discover and filter docx files across directories with intelligent search.

**When to use:** Need to find specific documents by name patterns, explore unknown directories, or build file inventories.

**Why it's useful:** Quickly locates relevant documents without manual browsing, supports fuzzy matching for partial names, and filters out office lock files automatically.

**Examples:**
• Find applications: "Search /documents/ for files containing 'application'"
• Inventory building: "List all docx files in /archive/ to understand content scope"

**Common workflows:**
1. Targeted Processing: Search for specific patterns → validate each → fill in sequence
2. Content Discovery: Explore directory → identify form templates → plan filling strategy

**Best practices:** Use fuzzy search for partial matches; combine with docx_validate_file before processing.`

	DocxExportMappingDescription = `Export a document's detected field mapping to a JSON or XLSX file for review.

**When to use:** A human needs to inspect or sign off on the detected mapping before forms are filled, or the mapping feeds another system.

**Why it's useful:** Produces a reviewable artifact listing every detected field, its label, its layout, and the exact cells a fill would write.

**Examples:**
• Review workflow: "Export the mapping of application.docx as a spreadsheet for the operations team"
• Integration: "Export form.docx's mapping as JSON to drive a data-entry UI"

**Common workflows:**
1. Sign-off: Export XLSX → review in spreadsheet → approve → fill
2. Automation: Export JSON → map upstream record fields → construct fill data

**Best practices:** The XLSX format is easier for human review; JSON is better for programmatic consumers.`

	DocxServerInfoDescription = `Get real-time server status, supported field identifiers, and system capabilities.

**When to use:** Starting work with the form server, troubleshooting issues, or checking available functionality.

**Why it's useful:** Lists every field identifier the pattern dictionary recognizes, the available tools, and the docx files in the default directory.

**Examples:**
• System check: "Verify the server is ready and see which fields it can detect"
• Capability discovery: "List the supported field identifiers before preparing fill data"

**Common workflows:**
1. Session Startup: Check server info → verify capabilities → plan processing approach
2. Debugging: Review server status → check directory paths → verify tool availability

**Best practices:** Run at the start of sessions; the supported_fields list is the vocabulary for fill data keys.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"docx_analyze_file":     DocxAnalyzeFileDescription,
	"docx_fill_file":        DocxFillFileDescription,
	"docx_validate_file":    DocxValidateFileDescription,
	"docx_search_directory": DocxSearchDirectoryDescription,
	"docx_export_mapping":   DocxExportMappingDescription,
	"docx_server_info":      DocxServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
