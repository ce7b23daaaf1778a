package apperr

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// DataLoadError reports a results or ground-truth source that could not be read or decoded.
// Source is a file path or a descriptive locator such as "postgres:run_results/bm25".
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return "load " + e.Source + ": " + e.Err.Error()
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func NewDataLoad(source string, err error) *DataLoadError {
	return &DataLoadError{Source: source, Err: err}
}
