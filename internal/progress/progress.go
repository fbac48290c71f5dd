// Package progress tracks the stages of a conversion run and fans events out
// to registered listeners (the CLI log listener and the progress bar).
package progress

import (
	"sync"
	"time"
)

// Stage represents the current stage of a run
type Stage string

const (
	StageInitializing Stage = "initializing"
	StageScanning     Stage = "scanning"
	StageConverting   Stage = "converting"
	StageComplete     Stage = "complete"
	StageError        Stage = "error"
)

// Event represents a progress event
type Event struct {
	Stage       Stage        `json:"stage"`
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	FileDetails *FileDetails `json:"fileDetails,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// FileDetails contains information about the file currently being converted
type FileDetails struct {
	FileNumber     int    `json:"fileNumber"`
	TotalFiles     int    `json:"totalFiles"`
	CurrentFile    string `json:"currentFile"`
	ProcessedFiles int    `json:"processedFiles"`
}

// Tracker manages progress tracking for a single run
type Tracker struct {
	mu          sync.RWMutex
	stage       Stage
	message     string
	fileDetails *FileDetails
	listeners   []func(Event)
}

// NewTracker creates a new Tracker instance
func NewTracker() *Tracker {
	return &Tracker{
		stage:     StageInitializing,
		listeners: make([]func(Event), 0),
	}
}

// AddListener adds a new progress event listener
func (t *Tracker) AddListener(listener func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// SetStage updates the stage and notifies all listeners
func (t *Tracker) SetStage(stage Stage, message string) {
	t.mu.Lock()
	t.stage = stage
	t.message = message
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// UpdateFileProgress updates file-specific progress within the converting stage
func (t *Tracker) UpdateFileProgress(fileNumber, totalFiles, processedFiles int, currentFile string) {
	t.mu.Lock()
	t.fileDetails = &FileDetails{
		FileNumber:     fileNumber,
		TotalFiles:     totalFiles,
		CurrentFile:    currentFile,
		ProcessedFiles: processedFiles,
	}
	details := t.fileDetails
	stage := t.stage
	message := t.message
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:       stage,
		Message:     message,
		Timestamp:   time.Now(),
		FileDetails: details,
	})
}

// SetError sets an error state and notifies all listeners
func (t *Tracker) SetError(err error) {
	t.mu.Lock()
	t.stage = StageError
	t.mu.Unlock()

	t.notifyListeners(Event{
		Stage:     StageError,
		Message:   err.Error(),
		Timestamp: time.Now(),
		Error:     err.Error(),
	})
}

// notifyListeners sends an event to all registered listeners
func (t *Tracker) notifyListeners(event Event) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, listener := range t.listeners {
		listener(event)
	}
}

// CurrentStage returns the current stage
func (t *Tracker) CurrentStage() Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stage
}
