package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeEndpointMissing     = "ENDPOINT_MISSING"
	CodeEndpointPlaceholder = "ENDPOINT_PLACEHOLDER"
	CodeFetchFailed         = "FETCH_FAILED"
	CodeDecodeFailed        = "DECODE_FAILED"
	CodeShellInvalid        = "SHELL_INVALID"
	CodeElementMissing      = "ELEMENT_MISSING"
)

// enUSCatalog is used when the embedded bundle carries no errors namespace.
var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		CodeEndpointMissing:     "You need to paste your Apps Script Web App URL into {{.Variable}}.",
		CodeEndpointPlaceholder: "You need to paste your Apps Script Web App URL into {{.Variable}}.",
		CodeFetchFailed:         "Could not load data from Google Sheet. Check your Web App URL + permissions.",
		CodeDecodeFailed:        "Could not load data from Google Sheet. Check your Web App URL + permissions.",
		CodeShellInvalid:        "The page template could not be loaded.",
		CodeElementMissing:      "The page template is missing #{{.Element}}.",
	},
}
