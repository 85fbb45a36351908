package handlers

import (
	"net/http"
	"strings"

	"vocamaster/internal/audio"
)

// SpeechHandler serves pronunciation audio for quiz prompts
type SpeechHandler struct {
	tts *audio.TTSService
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(tts *audio.TTSService) *SpeechHandler {
	return &SpeechHandler{tts: tts}
}

// Speak returns an MP3 pronunciation of the text query parameter.
// Files are cached on disk, so repeated prompts cost one upstream fetch.
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		respondWithError(w, http.StatusBadRequest, "Text is required", "", nil)
		return
	}

	path, err := h.tts.AudioFile(text)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Speech generation failed", "Speech generation failed", err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
