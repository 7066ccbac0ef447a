package export

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
	"github.com/killallgit/scriptify/internal/services/export"
	"github.com/killallgit/scriptify/internal/services/workspace"
)

// SavedResponse reports an export written to the server's export directory
type SavedResponse struct {
	types.BaseResponse
	Path string         `json:"path"`
	File *export.Output `json:"file"`
}

// Get renders the current transcript in one format
// @Summary      Export transcript
// @Description  Renders the current transcript. srt and vtt require timestamp segments from the last
// @Description  transcription and fail with 422 once the transcript has been edited away from it.
// @Description  With save=true the file is written to the export directory instead of downloaded.
// @Tags         export
// @Produce      octet-stream
// @Param        format query string true "Export format" Enums(txt, docx, pdf, srt, vtt)
// @Param        filename query string false "Base filename"
// @Param        title query string false "Document title"
// @Param        metadata query bool false "Include metadata"
// @Param        save query bool false "Write to the export directory"
// @Success      200 {file} binary
// @Failure      400 {object} types.ErrorResponse "Unsupported format"
// @Failure      422 {object} types.ErrorResponse "Missing segments"
// @Router       /api/v1/export [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		format, err := export.ParseFormat(c.Query("format"))
		if err != nil {
			types.SendError(c, err)
			return
		}

		opts := workspace.ExportOptions{
			Filename:        c.Query("filename"),
			Title:           c.Query("title"),
			IncludeMetadata: queryBool(c, "metadata"),
		}

		out, err := deps.Workspace.Export(format, opts)
		if err != nil {
			types.SendError(c, err)
			return
		}
		respond(c, deps, out, queryBool(c, "save"))
	}
}

// Bundle renders several formats into one zip archive
// @Summary      Export bundle
// @Description  Renders every requested format into <filename>-export.zip. The whole bundle fails if
// @Description  any format fails.
// @Tags         export
// @Accept       json
// @Produce      application/zip
// @Param        request body types.BundleRequest true "Formats and naming"
// @Param        save query bool false "Write to the export directory"
// @Success      200 {file} binary
// @Failure      400 {object} types.ErrorResponse
// @Failure      422 {object} types.ErrorResponse "Missing segments"
// @Router       /api/v1/export/bundle [post]
func Bundle(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.BundleRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		formats := make([]export.Format, 0, len(req.Formats))
		for _, key := range req.Formats {
			format, err := export.ParseFormat(key)
			if err != nil {
				types.SendError(c, err)
				return
			}
			formats = append(formats, format)
		}

		out, err := deps.Workspace.ExportBundle(formats, workspace.ExportOptions{
			Filename:        req.Filename,
			Title:           req.Title,
			IncludeMetadata: req.IncludeMetadata,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}
		respond(c, deps, out, queryBool(c, "save"))
	}
}

func respond(c *gin.Context, deps *types.Dependencies, out *export.Output, save bool) {
	if save {
		path, err := deps.Workspace.SaveExport(c.Request.Context(), out)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, SavedResponse{BaseResponse: types.OK("Export saved"), Path: path, File: out})
		return
	}

	log.Printf("[DEBUG] Serving export %s (%d bytes)", out.Filename, len(out.Data))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
