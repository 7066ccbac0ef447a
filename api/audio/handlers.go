package audio

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
	apperrors "github.com/killallgit/scriptify/pkg/errors"
)

// Upload loads an audio file as the active artifact
// @Summary      Upload audio
// @Description  Replaces the active audio with an uploaded file. The payload is kept as-is; generic
// @Description  content types are resolved by sniffing the bytes.
// @Tags         audio
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Audio file"
// @Success      201 {object} types.AudioResponse
// @Failure      400 {object} types.ErrorResponse "Empty or non-audio payload"
// @Failure      413 {object} types.ErrorResponse "Payload too large"
// @Router       /api/v1/audio [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			types.SendBadRequest(c, "multipart field 'file' is required")
			return
		}
		if deps.MaxUploadBytes > 0 && header.Size > deps.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "audio file exceeds the upload limit",
				Error:   string(apperrors.ErrCodeValidation),
			})
			return
		}

		file, err := header.Open()
		if err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to open upload"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to read upload"))
			return
		}

		ws := deps.Workspace
		if _, err := ws.LoadFile(header.Filename, header.Header.Get("Content-Type"), data); err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.AudioResponse{
			BaseResponse: types.OK("Audio loaded"),
			Capture:      ws.Capture().Status(),
		})
	}
}

// LoadURL downloads remote audio and makes it the active artifact
// @Summary      Load audio from URL
// @Tags         audio
// @Accept       json
// @Produce      json
// @Param        request body types.AudioURLRequest true "Remote audio URL"
// @Success      201 {object} types.AudioResponse
// @Failure      400 {object} types.ErrorResponse "Bad URL, unreachable source or oversize body"
// @Failure      415 {object} types.ErrorResponse "Source is not audio"
// @Failure      503 {object} types.ErrorResponse "Remote audio is disabled"
// @Router       /api/v1/audio/url [post]
func LoadURL(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Downloader == nil {
			types.SendServiceUnavailable(c, "remote audio is disabled")
			return
		}

		var req types.AudioURLRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		remote, err := deps.Downloader.Fetch(c.Request.Context(), req.URL)
		if err != nil {
			types.SendError(c, err)
			return
		}

		ws := deps.Workspace
		if _, err := ws.LoadFile(remote.Filename, remote.AudioType(), remote.Data); err != nil {
			types.SendError(c, err)
			return
		}

		log.Printf("[INFO] Loaded %d bytes of remote audio (%s)", len(remote.Data), remote.Filename)
		types.SendCreated(c, types.AudioResponse{
			BaseResponse: types.OK("Audio loaded"),
			Capture:      ws.Capture().Status(),
		})
	}
}

// Get reports the capture state and the active artifact
// @Summary      Get audio
// @Tags         audio
// @Produce      json
// @Success      200 {object} types.AudioResponse
// @Router       /api/v1/audio [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.AudioResponse{
			BaseResponse: types.OK(""),
			Capture:      deps.Workspace.Capture().Status(),
		})
	}
}

// Delete discards the active audio, its transcript and the in-flight request, and releases the device
// @Summary      Clear audio
// @Tags         audio
// @Produce      json
// @Success      200 {object} types.AudioResponse
// @Router       /api/v1/audio [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := deps.Workspace
		ws.ClearAudio(c.Request.Context())
		types.SendSuccess(c, types.AudioResponse{
			BaseResponse: types.OK("Audio cleared"),
			Capture:      ws.Capture().Status(),
		})
	}
}

// Control drives the microphone capture state machine
// @Summary      Control capture
// @Description  Starts, pauses, resumes or stops microphone capture. Stopping encodes the buffered
// @Description  samples into a WAV artifact.
// @Tags         audio
// @Produce      json
// @Param        action path string true "Capture action" Enums(start, pause, resume, stop)
// @Success      200 {object} types.AudioResponse
// @Failure      400 {object} types.ErrorResponse "Unknown action or nothing recorded"
// @Failure      403 {object} types.ErrorResponse "Microphone unavailable"
// @Router       /api/v1/capture/{action} [post]
func Control(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := deps.Workspace

		var err error
		switch c.Param("action") {
		case "start":
			err = ws.StartCapture()
		case "pause":
			err = ws.PauseCapture()
		case "resume":
			err = ws.ResumeCapture()
		case "stop":
			_, err = ws.StopCapture()
		default:
			types.SendBadRequest(c, "action must be one of start, pause, resume, stop")
			return
		}
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.AudioResponse{
			BaseResponse: types.OK(""),
			Capture:      ws.Capture().Status(),
		})
	}
}
