package errors

// Sentinel errors. Use WithCause / WithMessagef to attach context;
// compare with errors.Is against these definitions.
var (
	// ErrEmptyQuery means the search query normalized to nothing.
	ErrEmptyQuery = &Error{
		Code:       "ERR_100_EMPTY_QUERY",
		Category:   CategoryInput,
		Severity:   SeverityWarning,
		Message:    "query is empty after normalization",
		Suggestion: "provide at least one letter or ideograph",
	}

	// ErrInvalidRepo means the repository identifier is missing or unknown.
	ErrInvalidRepo = &Error{
		Code:       "ERR_101_INVALID_REPO",
		Category:   CategoryInput,
		Severity:   SeverityError,
		Message:    "repository identifier is missing or unknown",
		Suggestion: "check the repo name against the configuration",
	}

	// ErrStoreIO covers read/write failures in the record store.
	ErrStoreIO = &Error{
		Code:      "ERR_200_STORE_IO",
		Category:  CategoryStore,
		Severity:  SeverityError,
		Message:   "record store operation failed",
		Retryable: true,
	}

	// ErrStoreClosed means an operation ran against a closed store.
	ErrStoreClosed = &Error{
		Code:     "ERR_201_STORE_CLOSED",
		Category: CategoryStore,
		Severity: SeverityError,
		Message:  "record store is closed",
	}

	// ErrIndexIO covers full-text index read/write failures.
	ErrIndexIO = &Error{
		Code:      "ERR_300_INDEX_IO",
		Category:  CategoryIndex,
		Severity:  SeverityError,
		Message:   "full-text index operation failed",
		Retryable: true,
	}

	// ErrIndexClosed means an operation ran against a closed index.
	ErrIndexClosed = &Error{
		Code:     "ERR_301_INDEX_CLOSED",
		Category: CategoryIndex,
		Severity: SeverityError,
		Message:  "full-text index is closed",
	}

	// ErrBackendTimeout means an external search backend did not
	// respond within its per-fetch deadline.
	ErrBackendTimeout = &Error{
		Code:      "ERR_400_BACKEND_TIMEOUT",
		Category:  CategoryExternal,
		Severity:  SeverityWarning,
		Message:   "external backend timed out",
		Retryable: true,
	}

	// ErrBackendUnavailable means no external backend produced a
	// usable response within the total deadline.
	ErrBackendUnavailable = &Error{
		Code:       "ERR_401_BACKEND_UNAVAILABLE",
		Category:   CategoryExternal,
		Severity:   SeverityWarning,
		Message:    "no external backend available",
		Suggestion: "search continues with local results only",
		Retryable:  true,
	}

	// ErrMalformedPayload means a backend returned a response that
	// could not be parsed.
	ErrMalformedPayload = &Error{
		Code:     "ERR_402_MALFORMED_PAYLOAD",
		Category: CategoryExternal,
		Severity: SeverityWarning,
		Message:  "external backend returned a malformed payload",
	}

	// ErrConfigLoad covers configuration file read/parse failures.
	ErrConfigLoad = &Error{
		Code:       "ERR_500_CONFIG_LOAD",
		Category:   CategoryConfig,
		Severity:   SeverityFatal,
		Message:    "failed to load configuration",
		Suggestion: "check the config file path and YAML syntax",
	}

	// ErrDictionaryLoad covers name dictionary load failures.
	ErrDictionaryLoad = &Error{
		Code:       "ERR_501_DICTIONARY_LOAD",
		Category:   CategoryConfig,
		Severity:   SeverityError,
		Message:    "failed to load name dictionary",
		Suggestion: "check the dictionary path and TSV format",
		Retryable:  true,
	}
)
