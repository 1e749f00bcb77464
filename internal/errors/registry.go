package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {Category: CategoryConfig, Message: "Configuration file not found"},
	"E101": {Category: CategoryConfig, Message: "Invalid configuration file"},
	"E102": {Category: CategoryConfig, Message: "Invalid port"},
	"E103": {Category: CategoryConfig, Message: "Invalid log setting"},
	"E104": {Category: CategoryConfig, Message: "Invalid asset manifest"},

	// ============================================
	// Route Errors (E200-E299)
	// ============================================

	"E200": {Category: CategoryRoute, Message: "Invalid route pattern"},
	"E201": {Category: CategoryRoute, Message: "Misplaced catch-all route"},
	"E202": {Category: CategoryRoute, Message: "Duplicate route parameter"},
	"E203": {Category: CategoryRoute, Message: "Missing route parameter"},
	"E204": {Category: CategoryRoute, Message: "Unknown view"},
	"E210": {Category: CategoryRoute, Message: "No history entry"},

	// ============================================
	// Store Errors (E300-E399)
	// ============================================

	"E300": {Category: CategoryStore, Message: "Word not found"},
	"E301": {Category: CategoryStore, Message: "Invalid word"},
	"E302": {Category: CategoryStore, Message: "Database failure"},
	"E303": {Category: CategoryStore, Message: "Backup failed"},

	// ============================================
	// CLI Errors (E400-E499)
	// ============================================

	"E400": {Category: CategoryCLI, Message: "Invalid argument"},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
