package transcription

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// Create queues the active audio for transcription
// @Summary      Transcribe active audio
// @Description  Queues the active audio artifact for transcription and returns a job handle. Starting a
// @Description  new transcription supersedes any request still in flight; its result is discarded.
// @Description  Track the job with GET /api/v1/transcriptions/{id} or the progress websocket.
// @Tags         transcription
// @Accept       json
// @Produce      json
// @Param        request body types.TranscribeRequest false "Language override; empty uses the stored preference, \"auto\" detects"
// @Success      202 {object} types.JobResponse
// @Failure      400 {object} types.ErrorResponse "No active audio"
// @Router       /api/v1/transcriptions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TranscribeRequest
		if c.Request.ContentLength > 0 && !types.BindJSONOrError(c, &req) {
			return
		}

		job, err := deps.Workspace.Transcribe(c.Request.Context(), req.Language)
		if err != nil {
			types.SendError(c, err)
			return
		}

		log.Printf("[INFO] Queued transcription job %s (language=%s)", job.ID, job.Language)
		c.JSON(http.StatusAccepted, types.JobResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusQueued, Message: "Transcription queued"},
			Job:          job,
		})
	}
}

// Get returns a transcription job
// @Summary      Get transcription job
// @Tags         transcription
// @Produce      json
// @Param        id path string true "Job ID"
// @Success      200 {object} types.JobResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/transcriptions/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, err := deps.Workspace.Jobs().GetJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.JobResponse{
			BaseResponse: types.BaseResponse{Status: string(job.Status)},
			Job:          job,
		})
	}
}

// GetTranscript returns the current transcript with any in-flight progress and the current error
// @Summary      Get current transcript
// @Tags         transcript
// @Produce      json
// @Success      200 {object} types.TranscriptResponse
// @Router       /api/v1/transcript [get]
func GetTranscript(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := deps.Workspace
		types.SendSuccess(c, types.TranscriptResponse{
			BaseResponse: types.OK(""),
			Text:         ws.Store().Transcript(),
			Session:      ws.Store().Current(),
			Progress:     ws.Progress(c.Request.Context()),
			Error:        ws.Error(),
		})
	}
}

// PutTranscript replaces the transcript text
// @Summary      Edit current transcript
// @Description  Replaces the transcript. Edits are committed to the current session after a short
// @Description  debounce, or immediately when save is true.
// @Tags         transcript
// @Accept       json
// @Produce      json
// @Param        request body types.TranscriptUpdateRequest true "New transcript"
// @Success      200 {object} types.TranscriptResponse
// @Failure      400 {object} types.ErrorResponse "Save requested without a current session"
// @Router       /api/v1/transcript [put]
func PutTranscript(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TranscriptUpdateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		ws := deps.Workspace
		ws.UpdateTranscript(req.Text)

		message := "Transcript updated"
		if req.Save {
			if _, err := ws.SaveTranscript(c.Request.Context()); err != nil {
				types.SendError(c, err)
				return
			}
			message = "Transcript saved"
		}

		types.SendSuccess(c, types.TranscriptResponse{
			BaseResponse: types.OK(message),
			Text:         ws.Store().Transcript(),
			Session:      ws.Store().Current(),
		})
	}
}

// ClearError dismisses the current error
// @Summary      Dismiss current error
// @Tags         transcript
// @Produce      json
// @Success      200 {object} types.BaseResponse
// @Router       /api/v1/transcript/error [delete]
func ClearError(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		deps.Workspace.ClearError()
		types.SendSuccess(c, types.OK("Error cleared"))
	}
}
