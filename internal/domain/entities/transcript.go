package entities

import "unicode/utf8"

// FallbackMarker is embedded in a transcript when real transcription did not
// succeed. Stored rows and previews stay recognizably degraded even outside
// this process.
const FallbackMarker = "[FALLBACK]"

// fallbackTranscript is returned in place of real output when the
// transcription service is unavailable or errors out.
const fallbackTranscript = FallbackMarker + " This is a sample transcript. AssemblyAI transcription failed. Please check the logs for details."

// TranscriptResult is the tagged output of the transcription gateway.
// Downstream code branches on Fallback instead of sniffing the marker.
type TranscriptResult struct {
	Text     string
	Fallback bool
	Reason   string
}

// RealTranscript wraps text produced by the transcription service.
func RealTranscript(text string) TranscriptResult {
	return TranscriptResult{Text: text}
}

// FallbackTranscript returns the degraded result carrying the failure reason.
func FallbackTranscript(reason string) TranscriptResult {
	return TranscriptResult{
		Text:     fallbackTranscript,
		Fallback: true,
		Reason:   reason,
	}
}

// Length returns the transcript character count, not the byte count, so
// multibyte transcripts report the same length a reader would count.
func (t TranscriptResult) Length() int {
	return utf8.RuneCountInString(t.Text)
}
