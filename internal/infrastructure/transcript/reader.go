// Package transcript reads the session transcript JSONL written by the
// coding assistant and recovers the trailing assistant text when a hook
// input carries no inline output.
package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/doeshing/voicehook/internal/ports"
)

// Reader implements ports.TranscriptReader over a JSONL file.
type Reader struct{}

// NewReader creates a transcript reader.
func NewReader() *Reader {
	return &Reader{}
}

type transcriptEntry struct {
	Type    string             `json:"type"`
	Message *transcriptMessage `json:"message"`
}

type transcriptMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// texts returns the plain-text parts of the message content, which is
// either a bare string or an array of typed blocks. tool_use and
// tool_result blocks are skipped.
func (m *transcriptMessage) texts() []string {
	if len(m.Content) == 0 {
		return nil
	}

	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil {
		return []string{text}
	}

	var blocks []contentBlock
	if err := json.Unmarshal(m.Content, &blocks); err != nil {
		return nil
	}
	var texts []string
	for _, block := range blocks {
		if block.Type == "text" && block.Text != "" {
			texts = append(texts, block.Text)
		}
	}
	return texts
}

// AssistantTail returns the last limit assistant text messages joined
// with newlines. Unparseable lines are skipped, not fatal.
func (r *Reader) AssistantTail(path string, limit int) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open transcript: %w", err)
	}
	defer file.Close()

	var texts []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry transcriptEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if entry.Type != "assistant" || entry.Message == nil || entry.Message.Role != "assistant" {
			continue
		}
		if blockTexts := entry.Message.texts(); len(blockTexts) > 0 {
			texts = append(texts, strings.Join(blockTexts, "\n"))
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	if limit > 0 && len(texts) > limit {
		texts = texts[len(texts)-limit:]
	}
	return strings.Join(texts, "\n"), nil
}

var _ ports.TranscriptReader = (*Reader)(nil)
