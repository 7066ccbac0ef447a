package models

// Progress steps reported during a transcription call
const (
	StepInitializing   = "initializing"
	StepLoadingModel   = "loading_model"
	StepPreparingAudio = "preparing_audio"
	StepChunkingAudio  = "chunking_audio"
	StepTranscribing   = "transcribing"
	StepProcessing     = "processing"
	StepFormatting     = "formatting"
	StepUploading      = "uploading"
	StepCompleted      = "completed"
)

// ProgressUpdate is one event on a transcription call's progress stream
type ProgressUpdate struct {
	Step     string  `json:"step"`
	Progress float64 `json:"progress"` // 0-100
	Message  string  `json:"message"`
}
