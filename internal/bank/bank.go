// Package bank loads question banks from files and caches them by fingerprint.
package bank

import (
	"fmt"
	"os"
	"time"

	"github.com/zeebo/xxh3"

	"qm/internal/question"
)

// FingerprintMode selects how staleness is detected.
type FingerprintMode string

const (
	// FingerprintStat compares size and modification time only.
	FingerprintStat FingerprintMode = "stat"
	// FingerprintHash also compares an xxh3 hash of the contents.
	FingerprintHash FingerprintMode = "hash"
)

// ParseFingerprintMode validates a configured mode; empty means stat.
func ParseFingerprintMode(value string) (FingerprintMode, error) {
	switch FingerprintMode(value) {
	case "", FingerprintStat:
		return FingerprintStat, nil
	case FingerprintHash:
		return FingerprintHash, nil
	default:
		return "", fmt.Errorf("unsupported fingerprint mode %q (expected stat|hash)", value)
	}
}

// Fingerprint is a cheap identity for one version of a bank file.
type Fingerprint struct {
	Size    int64
	ModTime int64
	Hash    uint64
}

func (fp Fingerprint) String() string {
	if fp.Hash != 0 {
		return fmt.Sprintf("%d@%d#%016x", fp.Size, fp.ModTime, fp.Hash)
	}
	return fmt.Sprintf("%d@%d", fp.Size, fp.ModTime)
}

func statFingerprint(info os.FileInfo) Fingerprint {
	return Fingerprint{Size: info.Size(), ModTime: info.ModTime().UnixNano()}
}

func hashFingerprint(fp Fingerprint, data []byte) Fingerprint {
	fp.Hash = xxh3.Hash(data)
	return fp
}

// Bank is an immutable, validated sequence of questions from one file.
type Bank struct {
	path        string
	fingerprint Fingerprint
	loadedAt    time.Time
	questions   []question.Question
}

// New builds a bank from already validated questions.
func New(path string, fp Fingerprint, questions []question.Question) *Bank {
	copied := make([]question.Question, len(questions))
	for i, q := range questions {
		copied[i] = question.Clone(q)
	}
	return &Bank{path: path, fingerprint: fp, loadedAt: time.Now(), questions: copied}
}

// Path returns the absolute source path.
func (b *Bank) Path() string { return b.path }

// Fingerprint returns the fingerprint of the loaded file version.
func (b *Bank) Fingerprint() Fingerprint { return b.fingerprint }

// LoadedAt reports when the file was parsed.
func (b *Bank) LoadedAt() time.Time { return b.loadedAt }

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// At returns a copy of the question at index i.
func (b *Bank) At(i int) question.Question {
	return question.Clone(b.questions[i])
}

// Questions returns copies of every question in file order.
func (b *Bank) Questions() []question.Question {
	out := make([]question.Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = question.Clone(q)
	}
	return out
}
