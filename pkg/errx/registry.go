package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Error codes follow a stable 5-digit scheme where the first two digits are the
// domain and the last three digits are reserved for subcodes.
const (
	CodeUncaught   = "70000"
	CodeRethrow    = "71000"
	CodeAllocation = "72000"
	CodeTerminate  = "73000"
	CodeScenario   = "74000"
	CodeCLI        = "75000"
	CodeConfig     = "79000"
)

const (
	DescUncaught   = "Uncaught exception"
	DescRethrow    = "Invalid throw or rethrow"
	DescAllocation = "Exception allocation failure"
	DescTerminate  = "Terminate handler error"
	DescScenario   = "Scenario error"
	DescCLI        = "CLI/argument validation error"
	DescConfig     = "Configuration error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeUncaught, Description: DescUncaught},
	{Code: CodeRethrow, Description: DescRethrow},
	{Code: CodeAllocation, Description: DescAllocation},
	{Code: CodeTerminate, Description: DescTerminate},
	{Code: CodeScenario, Description: DescScenario},
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeConfig, Description: DescConfig},
}

var registryMap = func() map[string]string {
	m := make(map[string]string, len(registryEntries))
	for _, entry := range registryEntries {
		m[entry.Code] = entry.Description
	}
	return m
}()

// ErrorRegistry returns the registered codes in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
