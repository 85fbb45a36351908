package audio

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TTSService generates and caches pronunciation audio for quiz prompts
type TTSService struct {
	audioDir string
}

const ttsRequestTimeout = 10 * time.Second

// NewTTSService creates a new TTS service
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
	}
}

// AudioFile returns the cached MP3 path for the given text, fetching
// and caching it on first use. Filenames are content-addressed so any
// text, including unicode, maps to a safe path.
func (s *TTSService) AudioFile(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty text")
	}

	sum := sha1.Sum([]byte(strings.ToLower(text)))
	filename := "speech_" + hex.EncodeToString(sum[:]) + ".mp3"
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := s.generateUsingGoogleTTS(text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return path, nil
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
// This is a simple, free option that doesn't require API keys
func (s *TTSService) generateUsingGoogleTTS(text, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// User agent required by Google
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	client := &http.Client{Timeout: ttsRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	_, err = io.Copy(outFile, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// Pregenerate fetches audio for every word in the list, skipping words
// that fail instead of aborting the batch.
func (s *TTSService) Pregenerate(words []string) map[string]error {
	failures := make(map[string]error)
	for _, word := range words {
		if _, err := s.AudioFile(word); err != nil {
			failures[word] = err
		}
	}
	return failures
}

// PruneCache removes every cached MP3 from the audio directory.
func (s *TTSService) PruneCache() error {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return fmt.Errorf("failed to read audio directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".mp3" {
			continue
		}
		if err := os.Remove(filepath.Join(s.audioDir, file.Name())); err != nil {
			return err
		}
	}
	return nil
}
