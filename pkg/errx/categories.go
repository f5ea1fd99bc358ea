package errx

// CreateByCode creates an Error, wrapping cause when it is non-nil.
func CreateByCode(code, description, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, description, message, cause)
	}
	return New(code, description, message)
}

// FromSentinel creates an Error whose category is looked up from sentinel.
// Unknown sentinels fall back to the CLI category.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if code == "" {
		code = CodeCLI
		desc = DescCLI
	}
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// Uncaught reports an exception that reached an empty scope stack.
func Uncaught(message string) *Error {
	return New(CodeUncaught, DescUncaught, message)
}

// Rethrow reports a rethrow issued while no exception was active, or a
// throw without an exception record.
func Rethrow(message string) *Error {
	return New(CodeRethrow, DescRethrow, message)
}

// Allocation reports that storage for an exception could not be reserved.
func Allocation(message string) *Error {
	return New(CodeAllocation, DescAllocation, message)
}

// WrapAllocation wraps an allocator failure.
func WrapAllocation(message string, cause error) *Error {
	return Wrap(CodeAllocation, DescAllocation, message, cause)
}

// Terminate reports a terminate handler that returned control.
func Terminate(message string) *Error {
	return New(CodeTerminate, DescTerminate, message)
}

// Scenario creates a scenario error.
func Scenario(message string) *Error {
	return New(CodeScenario, DescScenario, message)
}

// WrapScenario wraps a cause with a scenario error.
func WrapScenario(message string, cause error) *Error {
	return Wrap(CodeScenario, DescScenario, message, cause)
}

// CLI creates a CLI/argument validation error.
func CLI(message string) *Error {
	return New(CodeCLI, DescCLI, message)
}

// WrapCLI wraps a cause with a CLI/argument validation error.
func WrapCLI(message string, cause error) *Error {
	return Wrap(CodeCLI, DescCLI, message, cause)
}

// Config creates a configuration error.
func Config(message string) *Error {
	return New(CodeConfig, DescConfig, message)
}

// WrapConfig wraps a cause with a configuration error.
func WrapConfig(message string, cause error) *Error {
	return Wrap(CodeConfig, DescConfig, message, cause)
}
