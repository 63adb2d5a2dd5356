package errors

import "fmt"

// ErrorCode identifies an application error class in responses and logs.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General errors
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Upload / validation errors
	ErrorCode_UNSUPPORTED_FILE_TYPE ErrorCode = 2000
	ErrorCode_MISSING_AUDIO_FILE    ErrorCode = 2001

	// Configuration errors
	ErrorCode_CONFIG_MISSING_CREDENTIAL ErrorCode = 3000

	// Pipeline errors
	ErrorCode_PROCESSING_FAILED ErrorCode = 4000
	ErrorCode_SAVE_FAILED       ErrorCode = 4001

	// Meeting errors
	ErrorCode_MEETING_NOT_FOUND ErrorCode = 5000
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                   "OK",
	ErrorCode_INTERNAL:                  "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:          "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                 "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:           "INVALID_PAYLOAD",
	ErrorCode_UNSUPPORTED_FILE_TYPE:     "UNSUPPORTED_FILE_TYPE",
	ErrorCode_MISSING_AUDIO_FILE:        "MISSING_AUDIO_FILE",
	ErrorCode_CONFIG_MISSING_CREDENTIAL: "CONFIG_MISSING_CREDENTIAL",
	ErrorCode_PROCESSING_FAILED:         "PROCESSING_FAILED",
	ErrorCode_SAVE_FAILED:               "SAVE_FAILED",
	ErrorCode_MEETING_NOT_FOUND:         "MEETING_NOT_FOUND",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(c))
}
