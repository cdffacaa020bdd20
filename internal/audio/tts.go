// Package audio caches spoken pronunciations for vocabulary words as MP3
// files so students can hear the word they are spelling.
package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

const ttsRequestTimeout = 10 * time.Second

// TTSService fetches pronunciations from the Google Translate text-to-speech
// endpoint (free, no API key) and caches them under the audio directory.
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a new TTS service writing into audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// EnsureWordAudio makes sure a cached pronunciation exists for the word and
// returns its filename. Files are keyed by word ID so renames and duplicate
// texts never collide.
func (s *TTSService) EnsureWordAudio(wordID int64, text string) (string, error) {
	filename := fmt.Sprintf("word_%d.mp3", wordID)
	path := filepath.Join(s.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := s.fetchGoogleTTS(text, path); err != nil {
		return "", fmt.Errorf("failed to generate audio for %q: %w", text, err)
	}
	return filename, nil
}

// fetchGoogleTTS downloads the spoken form of text to outputPath
func (s *TTSService) fetchGoogleTTS(text, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", "en")
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
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

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	return nil
}

// DeleteAudioFile removes a cached pronunciation. Missing files are not an
// error.
func (s *TTSService) DeleteAudioFile(filename string) error {
	path := filepath.Join(s.audioDir, filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// ListAudioFiles returns the names of all cached MP3 files
func (s *TTSService) ListAudioFiles() ([]string, error) {
	files, err := os.ReadDir(s.audioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var audioFiles []string
	for _, file := range files {
		if !file.IsDir() && filepath.Ext(file.Name()) == ".mp3" {
			audioFiles = append(audioFiles, file.Name())
		}
	}
	return audioFiles, nil
}

// CleanupOrphans deletes cached files that no word references any more and
// returns how many were removed.
func (s *TTSService) CleanupOrphans(inUse map[string]bool) (int, error) {
	files, err := s.ListAudioFiles()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range files {
		if inUse[name] {
			continue
		}
		if err := s.DeleteAudioFile(name); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
