package report

import (
	"os"
	"strings"

	"github.com/profvolz/gasspeicher/logger"
	"github.com/profvolz/gasspeicher/projection"
)

const fence = "```"

// UpdateBlock replaces the interior of the first fenced block after heading
// inside doc. It returns the patched document and whether a replacement
// happened; the document is returned unchanged when the heading or either
// fence is missing.
func UpdateBlock(doc, heading, content string) (string, bool) {
	headAt := strings.Index(doc, heading)
	if headAt < 0 {
		return doc, false
	}

	openRel := strings.Index(doc[headAt:], fence)
	if openRel < 0 {
		return doc, false
	}
	openAt := headAt + openRel

	// Interior starts after the opening fence line (the fence may carry a
	// language tag).
	lineEnd := strings.Index(doc[openAt:], "\n")
	if lineEnd < 0 {
		return doc, false
	}
	interiorAt := openAt + lineEnd + 1

	closeRel := strings.Index(doc[interiorAt:], fence)
	if closeRel < 0 {
		return doc, false
	}
	closeAt := interiorAt + closeRel

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return doc[:interiorAt] + content + doc[closeAt:], true
}

// PatchFile rewrites the fenced projection block in the document at path.
// Every failure mode is a warning, never an error: the README update is
// best-effort and must not abort a run whose ledger row is already written.
func PatchFile(path, heading string, rec *projection.Record) bool {
	log := logger.WithComponent("report")

	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warn("README not readable, skipping update")
		return false
	}

	patched, ok := UpdateBlock(string(data), heading, Summary(rec))
	if !ok {
		log.WithField("heading", heading).Warn("README heading or fenced block not found, skipping update")
		return false
	}

	if err := os.WriteFile(path, []byte(patched), 0o644); err != nil {
		log.WithError(err).Warn("README not writable, skipping update")
		return false
	}
	return true
}
